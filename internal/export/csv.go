// Package export renders settlement reports for download.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/aequitally/internal/calculator"
	"github.com/mmynk/aequitally/internal/models"
)

// NoTransfersMessage replaces the transfer table when everyone is settled.
const NoTransfersMessage = "No transfers needed - all participants are settled"

var (
	unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9\s]`)
	whitespace  = regexp.MustCompile(`\s+`)
)

// WriteSettlementCSV writes the settlement report of t: tally info, the transfers,
// every participant's balance and a summary, separated by blank lines.
func WriteSettlementCSV(w io.Writer, t models.Tally, transfers []models.Transfer, now time.Time) error {
	cw := csv.NewWriter(w)

	records := [][]string{
		{"Tally Name", t.Name},
		{"Description", orNA(t.Description)},
		{"Date", orNA(t.Date)},
		{"Total Participants", strconv.Itoa(len(t.Participants))},
		{"Total Expenses", strconv.Itoa(len(t.Expenses))},
		{"Export Date", now.UTC().Format(time.RFC3339)},
		{},
		{"Settlement Transfers"},
	}

	if len(transfers) == 0 {
		records = append(records, []string{NoTransfersMessage})
	} else {
		records = append(records, []string{"From Participant", "To Participant", "Amount", "Transfer Type"})
		for _, tr := range transfers {
			records = append(records, []string{
				t.ParticipantName(tr.FromParticipantID),
				t.ParticipantName(tr.ToParticipantID),
				money(tr.Amount),
				"Settlement",
			})
		}
	}

	records = append(records,
		[]string{},
		[]string{"Participant Balances"},
		[]string{"Participant Name", "Total Paid", "Total Owed", "Balance", "Status"},
	)
	for _, b := range calculator.CalculateBalances(t) {
		records = append(records, []string{
			t.ParticipantName(b.ParticipantID),
			money(b.TotalPaid),
			money(b.TotalOwed),
			money(b.Balance),
			string(b.Status()),
		})
	}

	summary := calculator.Summarize(t, transfers)
	records = append(records,
		[]string{},
		[]string{"Summary"},
		[]string{"Total Amount in Tally", money(summary.TotalAmount)},
		[]string{"Number of Transfers", strconv.Itoa(summary.TransferCount)},
		[]string{"Largest Transfer", money(summary.LargestTransfer)},
		[]string{"Total to Settle", money(summary.TotalToSettle)},
	)

	if err := cw.WriteAll(records); err != nil {
		return fmt.Errorf("write settlement csv: %w", err)
	}
	return nil
}

// fallbackStem names the report of a tally whose name has no ASCII letters or digits.
const fallbackStem = "tally"

// Filename returns the download name of the report, e.g. "Lisbon-trip-settlements-2026-06-01.csv".
func Filename(t models.Tally, now time.Time) string {
	safe := strings.TrimSpace(unsafeChars.ReplaceAllString(t.Name, ""))
	safe = whitespace.ReplaceAllString(safe, "-")
	if safe == "" {
		safe = fallbackStem
	}
	return fmt.Sprintf("%s-settlements-%s.csv", safe, now.UTC().Format(time.DateOnly))
}

func money(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
