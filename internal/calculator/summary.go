package calculator

import "github.com/mmynk/aequitally/internal/models"

// SettlementSummary aggregates a tally and its settlement plan for reporting.
type SettlementSummary struct {
	TotalAmount     float64 // Sum of all expense amounts
	TransferCount   int
	LargestTransfer float64
	TotalToSettle   float64 // Sum of all transfer amounts
}

// Summarize computes the summary of t settled by transfers.
func Summarize(t models.Tally, transfers []models.Transfer) SettlementSummary {
	var s SettlementSummary
	for _, exp := range t.Expenses {
		s.TotalAmount += exp.Amount
	}
	s.TransferCount = len(transfers)
	for _, tr := range transfers {
		s.TotalToSettle += tr.Amount
		if tr.Amount > s.LargestTransfer {
			s.LargestTransfer = tr.Amount
		}
	}
	return s
}
