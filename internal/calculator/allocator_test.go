package calculator

import (
	"math"
	"testing"

	"github.com/mmynk/aequitally/internal/models"
)

func sumShares(shares []models.Share) float64 {
	var total float64
	for _, s := range shares {
		total += s.Amount
	}
	return total
}

func TestAllocateShares(t *testing.T) {
	tests := []struct {
		name         string
		input        AllocationInput
		wantAmount   float64
		wantShares   map[string]float64
		validateFunc func(t *testing.T, alloc Allocation)
	}{
		{
			name: "equal split of 100 between three",
			input: AllocationInput{
				Amount:   100,
				Method:   models.ShareMethodEqual,
				Selected: []string{"alice", "bob", "carol"},
			},
			wantAmount: 100,
			wantShares: map[string]float64{"alice": 100.0 / 3, "bob": 100.0 / 3, "carol": 100.0 / 3},
			validateFunc: func(t *testing.T, alloc Allocation) {
				if math.Abs(sumShares(alloc.ShareBetween)-100) > 1e-6 {
					t.Errorf("sum of shares = %v, want 100", sumShares(alloc.ShareBetween))
				}
				for _, s := range alloc.ShareBetween {
					if s.Shares != nil || s.Percentage != nil {
						t.Errorf("%s: equal split should not record shares or percentage", s.ParticipantID)
					}
				}
			},
		},
		{
			name: "equal split with nobody selected",
			input: AllocationInput{
				Amount: 50,
				Method: models.ShareMethodEqual,
			},
			wantAmount: 50,
			wantShares: map[string]float64{},
		},
		{
			name: "duplicate selections count once",
			input: AllocationInput{
				Amount:   30,
				Method:   models.ShareMethodEqual,
				Selected: []string{"alice", "bob", "alice"},
			},
			wantAmount: 30,
			wantShares: map[string]float64{"alice": 15, "bob": 15},
		},
		{
			name: "exact amounts derive the total",
			input: AllocationInput{
				Amount:        999, // ignored
				Method:        models.ShareMethodExactAmounts,
				Selected:      []string{"alice", "bob", "carol"},
				CustomAmounts: map[string]float64{"alice": 12.5, "bob": 7.5},
			},
			wantAmount: 20,
			wantShares: map[string]float64{"alice": 12.5, "bob": 7.5, "carol": 0},
		},
		{
			name: "shares weight the amount",
			input: AllocationInput{
				Amount:       90,
				Method:       models.ShareMethodShares,
				Selected:     []string{"alice", "bob"},
				CustomShares: map[string]float64{"alice": 1, "bob": 2, "carol": 10},
			},
			wantAmount: 90,
			wantShares: map[string]float64{"alice": 30, "bob": 60},
			validateFunc: func(t *testing.T, alloc Allocation) {
				for _, s := range alloc.ShareBetween {
					if s.Shares == nil {
						t.Fatalf("%s: shares value not preserved", s.ParticipantID)
					}
				}
				if *alloc.ShareBetween[1].Shares != 2 {
					t.Errorf("bob shares = %v, want 2", *alloc.ShareBetween[1].Shares)
				}
			},
		},
		{
			name: "zero total shares gives zero amounts",
			input: AllocationInput{
				Amount:   40,
				Method:   models.ShareMethodShares,
				Selected: []string{"alice", "bob"},
			},
			wantAmount: 40,
			wantShares: map[string]float64{"alice": 0, "bob": 0},
		},
		{
			name: "percentages of the amount",
			input: AllocationInput{
				Amount:            50,
				Method:            models.ShareMethodPercentage,
				Selected:          []string{"alice", "bob"},
				CustomPercentages: map[string]float64{"alice": 60, "bob": 40},
			},
			wantAmount: 50,
			wantShares: map[string]float64{"alice": 30, "bob": 20},
			validateFunc: func(t *testing.T, alloc Allocation) {
				if p := alloc.ShareBetween[0].Percentage; p == nil || *p != 60 {
					t.Errorf("alice percentage = %v, want 60", p)
				}
			},
		},
		{
			name: "percentages that do not sum to 100 flow through",
			input: AllocationInput{
				Amount:            100,
				Method:            models.ShareMethodPercentage,
				Selected:          []string{"alice", "bob"},
				CustomPercentages: map[string]float64{"alice": 60, "bob": 30},
			},
			wantAmount: 100,
			wantShares: map[string]float64{"alice": 60, "bob": 30},
		},
		{
			name: "unknown method yields zero amounts",
			input: AllocationInput{
				Amount:   10,
				Method:   models.ShareMethod("itemized"),
				Selected: []string{"alice"},
			},
			wantAmount: 10,
			wantShares: map[string]float64{"alice": 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			alloc := AllocateShares(tt.input)

			if math.Abs(alloc.Amount-tt.wantAmount) > 1e-9 {
				t.Errorf("Amount = %v, want %v", alloc.Amount, tt.wantAmount)
			}
			if len(alloc.ShareBetween) != len(tt.wantShares) {
				t.Fatalf("got %d shares, want %d", len(alloc.ShareBetween), len(tt.wantShares))
			}
			for _, s := range alloc.ShareBetween {
				want, ok := tt.wantShares[s.ParticipantID]
				if !ok {
					t.Errorf("unexpected share for %s", s.ParticipantID)
					continue
				}
				if math.Abs(s.Amount-want) > 1e-6 {
					t.Errorf("%s amount = %v, want %v", s.ParticipantID, s.Amount, want)
				}
			}
			if tt.validateFunc != nil {
				tt.validateFunc(t, alloc)
			}
		})
	}
}

func TestAllocateShares_KeepsSelectionOrder(t *testing.T) {
	alloc := AllocateShares(AllocationInput{
		Amount:   9,
		Method:   models.ShareMethodEqual,
		Selected: []string{"carol", "alice", "bob"},
	})

	want := []string{"carol", "alice", "bob"}
	for i, s := range alloc.ShareBetween {
		if s.ParticipantID != want[i] {
			t.Errorf("share %d = %s, want %s", i, s.ParticipantID, want[i])
		}
	}
}
