package tally

import (
	"time"

	"github.com/mmynk/aequitally/internal/models"
	"github.com/mmynk/aequitally/internal/validation"
)

// AddExpense validates e against the tally's participants and appends it.
// An empty ID is replaced with a generated one.
func AddExpense(t models.Tally, e models.Expense, now time.Time) (models.Tally, models.Expense, error) {
	e = e.Clone()
	if e.ID == "" {
		e.ID = newID()
	}
	if t.ExpenseIndex(e.ID) >= 0 {
		return models.Tally{}, models.Expense{}, ErrExpenseExists
	}
	if err := validation.ValidateExpense(e, t.Participants); err != nil {
		return models.Tally{}, models.Expense{}, err
	}

	out := t.Clone()
	out.Expenses = append(out.Expenses, e)
	out.UpdatedAt = now.Unix()
	return out, e.Clone(), nil
}

// EditExpense overlays update onto the stored expense and validates the result.
//
// Title, Amount, PaidBy, ShareMethod and ShareBetween always replace the stored
// values. The optional fields replace them only when set. The expense ID never
// changes.
func EditExpense(t models.Tally, expenseID string, update models.Expense, now time.Time) (models.Tally, models.Expense, error) {
	idx := t.ExpenseIndex(expenseID)
	if idx < 0 {
		return models.Tally{}, models.Expense{}, ErrExpenseNotFound
	}

	merged := overlay(t.Expenses[idx], update.Clone())
	if err := validation.ValidateExpense(merged, t.Participants); err != nil {
		return models.Tally{}, models.Expense{}, err
	}

	out := t.Clone()
	out.Expenses[idx] = merged
	out.UpdatedAt = now.Unix()
	return out, merged.Clone(), nil
}

// RemoveExpense drops the expense from the tally.
func RemoveExpense(t models.Tally, expenseID string, now time.Time) (models.Tally, error) {
	idx := t.ExpenseIndex(expenseID)
	if idx < 0 {
		return models.Tally{}, ErrExpenseNotFound
	}

	out := t.Clone()
	out.Expenses = append(out.Expenses[:idx], out.Expenses[idx+1:]...)
	out.UpdatedAt = now.Unix()
	return out, nil
}

func overlay(base, u models.Expense) models.Expense {
	out := base.Clone()
	out.Title = u.Title
	out.Amount = u.Amount
	out.PaidBy = u.PaidBy
	out.ShareMethod = u.ShareMethod
	out.ShareBetween = u.ShareBetween

	setString(&out.Description, u.Description)
	setString(&out.Date, u.Date)
	setString(&out.Category, u.Category)
	setString(&out.Merchant, u.Merchant)
	setString(&out.Location, u.Location)
	setString(&out.ReceiptURL, u.ReceiptURL)
	setString(&out.PaymentMethod, u.PaymentMethod)
	setString(&out.Notes, u.Notes)

	if u.Tags != nil {
		out.Tags = u.Tags
	}
	if u.Tax != nil {
		out.Tax = u.Tax
	}
	if u.Tip != nil {
		out.Tip = u.Tip
	}
	if u.ServiceFee != nil {
		out.ServiceFee = u.ServiceFee
	}
	return out
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
