package calculator

import "github.com/mmynk/aequitally/internal/models"

// AllocationInput holds the user-facing inputs for splitting one expense.
type AllocationInput struct {
	// Amount is the expense total. Ignored by the exact-amounts method, which
	// derives the total from the per-participant amounts.
	Amount float64

	Method models.ShareMethod

	// Selected lists the participants sharing the expense. Duplicates are ignored.
	Selected []string

	// Per-participant inputs keyed by participant ID. Missing entries count as 0.
	CustomShares      map[string]float64
	CustomPercentages map[string]float64
	CustomAmounts     map[string]float64
}

// Allocation is the canonical share set computed for an expense.
type Allocation struct {
	// Amount is the expense total to store: the input amount, or for
	// exact-amounts the sum of the per-participant amounts.
	Amount float64

	ShareBetween []models.Share
}

// AllocateShares turns split inputs into the ShareBetween entries of an expense.
//
// Per method:
//   - equal: amount / len(selected)
//   - exact-amounts: customAmounts[id], and the total becomes their sum
//   - shares: customShares[id] * amount / totalShares, 0 when totalShares is 0
//   - percentage: customPercentages[id] / 100 * amount
//
// Nothing is validated here. Out-of-range or non-summing inputs flow through and
// are rejected by validation.ValidateExpense when the expense is written.
func AllocateShares(in AllocationInput) Allocation {
	selected := dedupe(in.Selected)

	total := in.Amount
	if in.Method == models.ShareMethodExactAmounts {
		total = 0
		for _, id := range selected {
			total += in.CustomAmounts[id]
		}
	}

	var totalShares float64
	if in.Method == models.ShareMethodShares {
		for _, id := range selected {
			totalShares += in.CustomShares[id]
		}
	}

	shares := make([]models.Share, 0, len(selected))
	for _, id := range selected {
		share := models.Share{ParticipantID: id}

		switch in.Method {
		case models.ShareMethodEqual:
			share.Amount = total / float64(len(selected))
		case models.ShareMethodExactAmounts:
			share.Amount = in.CustomAmounts[id]
		case models.ShareMethodShares:
			weight := in.CustomShares[id]
			if totalShares > 0 {
				share.Amount = weight * (total / totalShares)
			}
			share.Shares = models.Float(weight)
		case models.ShareMethodPercentage:
			pct := in.CustomPercentages[id]
			share.Amount = (pct / 100) * total
			share.Percentage = models.Float(pct)
		}

		shares = append(shares, share)
	}

	return Allocation{Amount: total, ShareBetween: shares}
}

// dedupe keeps the first occurrence of every ID.
func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
