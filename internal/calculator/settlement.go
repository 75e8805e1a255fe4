package calculator

import (
	"cmp"
	"math"
	"slices"

	"github.com/mmynk/aequitally/internal/models"
)

// DefaultEpsilon is the amount under which a balance or transfer is treated as zero.
const DefaultEpsilon = 0.01

// RoundToCents rounds to two decimal places.
func RoundToCents(v float64) float64 {
	return math.Round(v*100) / 100
}

// position is a creditor or debtor in the settlement sweep. Amount is always positive.
type position struct {
	participantID string
	amount        float64
}

// ComputeSettlements derives the transfers that settle every participant of t.
// See PlanSettlements.
func ComputeSettlements(t models.Tally, epsilon float64) []models.Transfer {
	return PlanSettlements(CalculateBalances(t), epsilon)
}

// PlanSettlements converts signed balances into a list of debtor -> creditor
// transfers using greedy largest-first matching.
//
// Algorithm:
//   - Round every balance to cents
//   - Creditors: balance > epsilon. Debtors: balance < -epsilon, kept as positive amounts
//   - Sort both by amount descending, ties by participant ID ascending
//   - Sweep: transfer min(debtor, creditor), rounding to cents after every subtraction,
//     advancing whichever side dropped to epsilon or below
//
// The result has at most creditors+debtors-1 transfers. It is near-optimal, not a
// minimum-transaction solution. An epsilon <= 0 uses DefaultEpsilon.
func PlanSettlements(balances []ParticipantBalance, epsilon float64) []models.Transfer {
	if epsilon <= 0 {
		epsilon = DefaultEpsilon
	}

	var creditors, debtors []position
	for _, b := range balances {
		amount := RoundToCents(b.Balance)
		if amount > epsilon {
			creditors = append(creditors, position{participantID: b.ParticipantID, amount: amount})
		} else if amount < -epsilon {
			debtors = append(debtors, position{participantID: b.ParticipantID, amount: -amount})
		}
	}

	byAmountDesc := func(a, b position) int {
		if c := cmp.Compare(b.amount, a.amount); c != 0 {
			return c
		}
		return cmp.Compare(a.participantID, b.participantID)
	}
	slices.SortStableFunc(creditors, byAmountDesc)
	slices.SortStableFunc(debtors, byAmountDesc)

	transfers := []models.Transfer{}
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		amount := RoundToCents(math.Min(debtors[i].amount, creditors[j].amount))
		if amount <= epsilon {
			break
		}

		transfers = append(transfers, models.Transfer{
			FromParticipantID: debtors[i].participantID,
			ToParticipantID:   creditors[j].participantID,
			Amount:            amount,
		})

		debtors[i].amount = RoundToCents(debtors[i].amount - amount)
		creditors[j].amount = RoundToCents(creditors[j].amount - amount)

		if debtors[i].amount <= epsilon {
			i++
		}
		if creditors[j].amount <= epsilon {
			j++
		}
	}

	return transfers
}
