package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/mmynk/aequitally/internal/calculator"
	"github.com/mmynk/aequitally/internal/models"
)

var exportTime = time.Date(2026, 6, 1, 9, 15, 0, 0, time.UTC)

func dinnerTally() models.Tally {
	return models.Tally{
		ID:   "t1",
		Name: "Lisbon, spring",
		Participants: []models.Participant{
			{UserID: "A", Name: "Alice"},
			{UserID: "B", Name: "Bob"},
			{UserID: "C", Name: "Carol"},
		},
		Expenses: []models.Expense{{
			ID: "dinner", Title: "Dinner", Amount: 90, PaidBy: "A", ShareMethod: models.ShareMethodEqual,
			ShareBetween: []models.Share{
				{ParticipantID: "A", Amount: 30},
				{ParticipantID: "B", Amount: 30},
				{ParticipantID: "C", Amount: 30},
			},
		}},
	}
}

func TestWriteSettlementCSV(t *testing.T) {
	tally := dinnerTally()
	transfers := calculator.ComputeSettlements(tally, calculator.DefaultEpsilon)

	var buf bytes.Buffer
	if err := WriteSettlementCSV(&buf, tally, transfers, exportTime); err != nil {
		t.Fatalf("WriteSettlementCSV failed: %v", err)
	}

	want := strings.Join([]string{
		`Tally Name,"Lisbon, spring"`,
		"Description,N/A",
		"Date,N/A",
		"Total Participants,3",
		"Total Expenses,1",
		"Export Date,2026-06-01T09:15:00Z",
		"",
		"Settlement Transfers",
		"From Participant,To Participant,Amount,Transfer Type",
		"Bob,Alice,30.00,Settlement",
		"Carol,Alice,30.00,Settlement",
		"",
		"Participant Balances",
		"Participant Name,Total Paid,Total Owed,Balance,Status",
		"Alice,90.00,30.00,60.00,owed",
		"Bob,0.00,30.00,-30.00,owes",
		"Carol,0.00,30.00,-30.00,owes",
		"",
		"Summary",
		"Total Amount in Tally,90.00",
		"Number of Transfers,2",
		"Largest Transfer,30.00",
		"Total to Settle,60.00",
	}, "\n") + "\n"

	if got := buf.String(); got != want {
		t.Errorf("csv mismatch:\n got:\n%s\nwant:\n%s", got, want)
	}
}

func TestWriteSettlementCSV_AllSettled(t *testing.T) {
	tally := models.Tally{
		Name:         "Empty",
		Description:  "Nothing yet",
		Date:         "2026-05-30",
		Participants: []models.Participant{{UserID: "A", Name: "Alice"}},
	}

	var buf bytes.Buffer
	if err := WriteSettlementCSV(&buf, tally, nil, exportTime); err != nil {
		t.Fatalf("WriteSettlementCSV failed: %v", err)
	}

	out := buf.String()
	for _, line := range []string{
		"Description,Nothing yet",
		"Date,2026-05-30",
		NoTransfersMessage,
		"Alice,0.00,0.00,0.00,settled",
		"Number of Transfers,0",
	} {
		if !strings.Contains(out, line+"\n") {
			t.Errorf("output missing %q:\n%s", line, out)
		}
	}
	if strings.Contains(out, "From Participant") {
		t.Error("transfer header should be omitted when there are no transfers")
	}
}

func TestFilename(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Lisbon trip", "Lisbon-trip-settlements-2026-06-01.csv"},
		{"Café & bar  night!", "Caf-bar-night-settlements-2026-06-01.csv"},
		{"2026", "2026-settlements-2026-06-01.csv"},
		{"  Lisbon trip  ", "Lisbon-trip-settlements-2026-06-01.csv"},
		{"!!!", "tally-settlements-2026-06-01.csv"},
		{"€ ¥", "tally-settlements-2026-06-01.csv"},
		{"", "tally-settlements-2026-06-01.csv"},
	}
	for _, tt := range tests {
		if got := Filename(models.Tally{Name: tt.name}, exportTime); got != tt.want {
			t.Errorf("Filename(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestMoney(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{33.333333, "33.33"},
		{0.005, "0.01"},
		{-30, "-30.00"},
		{0, "0.00"},
	}
	for _, tt := range tests {
		if got := money(tt.in); got != tt.want {
			t.Errorf("money(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
