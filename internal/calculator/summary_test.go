package calculator

import (
	"math"
	"testing"
)

func TestSummarize(t *testing.T) {
	tally := testTally(
		[]string{"A", "B", "C"},
		equalExpense("dinner", 90, "A", "A", "B", "C"),
		equalExpense("taxi", 12, "B", "B", "C"),
	)
	transfers := ComputeSettlements(tally, DefaultEpsilon)

	s := Summarize(tally, transfers)
	if math.Abs(s.TotalAmount-102) > 1e-9 {
		t.Errorf("TotalAmount = %v, want 102", s.TotalAmount)
	}
	if s.TransferCount != len(transfers) {
		t.Errorf("TransferCount = %d, want %d", s.TransferCount, len(transfers))
	}
	// A +60, B -24, C -36
	if math.Abs(s.LargestTransfer-36) > 1e-9 {
		t.Errorf("LargestTransfer = %v, want 36", s.LargestTransfer)
	}
	if math.Abs(s.TotalToSettle-60) > 1e-9 {
		t.Errorf("TotalToSettle = %v, want 60", s.TotalToSettle)
	}
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(testTally([]string{"A"}), nil)
	if s != (SettlementSummary{}) {
		t.Errorf("expected zero summary, got %+v", s)
	}
}
