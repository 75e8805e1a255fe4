package validation

import (
	"fmt"
	"math"

	"github.com/mmynk/aequitally/internal/models"
)

// Epsilon absorbs floating-point drift in sum comparisons.
const Epsilon = 1e-6

// ValidateExpense runs the referential checks and then the share checks.
// participants must be the tally's participant list after any change made in the
// same write.
func ValidateExpense(e models.Expense, participants []models.Participant) error {
	if err := ValidateReferential(e, participants); err != nil {
		return err
	}
	return ValidateShares(e)
}

// ValidateReferential checks that the payer and every sharer belong to the tally,
// and that nobody appears twice in shareBetween.
func ValidateReferential(e models.Expense, participants []models.Participant) error {
	known := make(map[string]bool, len(participants))
	for _, p := range participants {
		known[p.UserID] = true
	}

	if !known[e.PaidBy] {
		return &Error{
			Kind:           ErrUnknownParticipant,
			ExpenseID:      e.ID,
			ParticipantIDs: []string{e.PaidBy},
			Field:          "paidBy",
		}
	}

	seen := make(map[string]bool, len(e.ShareBetween))
	for _, s := range e.ShareBetween {
		if !known[s.ParticipantID] {
			return &Error{
				Kind:           ErrUnknownParticipant,
				ExpenseID:      e.ID,
				ParticipantIDs: []string{s.ParticipantID},
				Field:          "shareBetween",
			}
		}
		if seen[s.ParticipantID] {
			return &Error{
				Kind:           ErrDuplicateShareParticipant,
				ExpenseID:      e.ID,
				ParticipantIDs: []string{s.ParticipantID},
				Field:          "shareBetween",
			}
		}
		seen[s.ParticipantID] = true
	}

	return nil
}

// ValidateShares checks the expense amount, the auxiliary amounts and the
// method-specific rules of shareBetween.
//
// The equal method adds no numeric rule: its amounts are not re-derived here.
func ValidateShares(e models.Expense) error {
	if len(e.ShareBetween) == 0 {
		return &Error{Kind: ErrEmptyShareSet, ExpenseID: e.ID, Field: "shareBetween"}
	}

	// Written as !(x > 0) so NaN is rejected too
	if !(e.Amount > 0) {
		return &Error{
			Kind:      ErrNonPositiveAmount,
			ExpenseID: e.ID,
			Field:     "amount",
			Detail:    fmt.Sprintf("got %v", e.Amount),
		}
	}

	aux := []struct {
		field string
		value *float64
	}{
		{"tax", e.Tax},
		{"tip", e.Tip},
		{"serviceFee", e.ServiceFee},
	}
	for _, a := range aux {
		if a.value != nil && !(*a.value >= 0) {
			return &Error{
				Kind:      ErrNegativeAuxiliaryField,
				ExpenseID: e.ID,
				Field:     a.field,
				Detail:    fmt.Sprintf("got %v", *a.value),
			}
		}
	}

	if !e.ShareMethod.Valid() {
		return &Error{
			Kind:      ErrUnknownShareMethod,
			ExpenseID: e.ID,
			Field:     "shareMethod",
			Detail:    fmt.Sprintf("got %q", e.ShareMethod),
		}
	}

	// equal amounts are whatever the allocator produced
	switch e.ShareMethod {
	case models.ShareMethodExactAmounts:
		return validateExactAmounts(e)
	case models.ShareMethodShares:
		return validateShareWeights(e)
	case models.ShareMethodPercentage:
		return validatePercentages(e)
	}
	return nil
}

func validateExactAmounts(e models.Expense) error {
	var total float64
	for _, s := range e.ShareBetween {
		total += s.Amount
	}
	if math.IsNaN(total) || math.Abs(total-e.Amount) > Epsilon {
		return &Error{
			Kind:      ErrExactAmountsMismatch,
			ExpenseID: e.ID,
			Field:     "shareBetween.amount",
			Detail:    fmt.Sprintf("sum %v, amount %v", total, e.Amount),
		}
	}

	if bad := collect(e.ShareBetween, func(s models.Share) bool { return !(s.Amount >= 0) }); len(bad) > 0 {
		return &Error{
			Kind:           ErrInvalidShareValue,
			ExpenseID:      e.ID,
			ParticipantIDs: bad,
			Field:          "shareBetween.amount",
		}
	}
	return nil
}

func validateShareWeights(e models.Expense) error {
	var total float64
	for _, s := range e.ShareBetween {
		if s.Shares != nil {
			total += *s.Shares
		}
	}
	if !(total > 0) {
		return &Error{
			Kind:      ErrZeroTotalShares,
			ExpenseID: e.ID,
			Field:     "shareBetween.shares",
			Detail:    fmt.Sprintf("total %v", total),
		}
	}

	if bad := collect(e.ShareBetween, func(s models.Share) bool { return s.Shares != nil && !(*s.Shares >= 0) }); len(bad) > 0 {
		return &Error{
			Kind:           ErrInvalidShareValue,
			ExpenseID:      e.ID,
			ParticipantIDs: bad,
			Field:          "shareBetween.shares",
		}
	}
	return nil
}

func validatePercentages(e models.Expense) error {
	var total float64
	for _, s := range e.ShareBetween {
		if s.Percentage != nil {
			total += *s.Percentage
		}
	}
	if math.IsNaN(total) || math.Abs(total-100) > Epsilon {
		return &Error{
			Kind:      ErrPercentageMismatch,
			ExpenseID: e.ID,
			Field:     "shareBetween.percentage",
			Detail:    fmt.Sprintf("sum %v", total),
		}
	}

	outOfRange := func(s models.Share) bool {
		return s.Percentage != nil && !(*s.Percentage >= 0 && *s.Percentage <= 100)
	}
	if bad := collect(e.ShareBetween, outOfRange); len(bad) > 0 {
		return &Error{
			Kind:           ErrPercentageOutOfRange,
			ExpenseID:      e.ID,
			ParticipantIDs: bad,
			Field:          "shareBetween.percentage",
		}
	}
	return nil
}

// collect returns the participant IDs of the shares matching pred.
func collect(shares []models.Share, pred func(models.Share) bool) []string {
	var ids []string
	for _, s := range shares {
		if pred(s) {
			ids = append(ids, s.ParticipantID)
		}
	}
	return ids
}
