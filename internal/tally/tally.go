// Package tally implements the validated write operations on a tally.
//
// Every function takes a tally value and returns a new one; the input is never
// modified. Callers persist the result as a whole-tally replacement.
package tally

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/aequitally/internal/models"
	"github.com/mmynk/aequitally/internal/validation"
)

var (
	ErrEmptyName            = errors.New("tally name is required")
	ErrEmptyParticipantID   = errors.New("participant user id is required")
	ErrDuplicateParticipant = errors.New("duplicate participant in tally")
	ErrDuplicateExpense     = errors.New("duplicate expense id in tally")
	ErrParticipantExists    = errors.New("participant already exists in this tally")
	ErrParticipantNotFound  = errors.New("participant is not part of this tally")
	ErrLastParticipant      = errors.New("cannot remove the last participant from a tally")
	ErrParticipantIsPayer   = errors.New("participant paid for an expense in this tally")
	ErrNoParticipants       = errors.New("tally must have at least one participant")
	ErrExpenseExists        = errors.New("expense already exists in this tally")
	ErrExpenseNotFound      = errors.New("expense not found")
)

// newID generates expense IDs. Replaced in tests.
var newID = uuid.NewString

// Draft is the input for creating a tally.
type Draft struct {
	Name         string
	Description  string
	Date         string
	Participants []models.Participant
	Expenses     []models.Expense
}

// New builds a tally from a draft, validating every initial expense.
func New(d Draft, now time.Time) (models.Tally, error) {
	if strings.TrimSpace(d.Name) == "" {
		return models.Tally{}, ErrEmptyName
	}
	if err := checkParticipants(d.Participants); err != nil {
		return models.Tally{}, err
	}

	t := models.Tally{
		ID:           uuid.NewString(),
		Name:         d.Name,
		Description:  d.Description,
		Date:         d.Date,
		Participants: append([]models.Participant(nil), d.Participants...),
		CreatedAt:    now.Unix(),
	}

	expenses, err := prepareExpenses(d.Expenses, t.Participants)
	if err != nil {
		return models.Tally{}, err
	}
	t.Expenses = expenses
	return t, nil
}

// Patch lists the tally fields to change. Nil fields are left alone.
type Patch struct {
	Name        *string
	Description *string
	Date        *string

	// Participants, when non-nil, replaces the participant list.
	Participants []models.Participant

	// Expenses, when non-nil, replaces the expense list.
	Expenses []models.Expense
}

// Update applies a patch. Replaced expenses are fully validated against the
// resulting participant list. Replacing only the participants re-checks the
// references of the existing expenses.
func Update(t models.Tally, p Patch, now time.Time) (models.Tally, error) {
	out := t.Clone()

	if p.Name != nil {
		if strings.TrimSpace(*p.Name) == "" {
			return models.Tally{}, ErrEmptyName
		}
		out.Name = *p.Name
	}
	if p.Description != nil {
		out.Description = *p.Description
	}
	if p.Date != nil {
		out.Date = *p.Date
	}

	if p.Participants != nil {
		if err := checkParticipants(p.Participants); err != nil {
			return models.Tally{}, err
		}
		out.Participants = append([]models.Participant(nil), p.Participants...)
	}

	switch {
	case p.Expenses != nil:
		expenses, err := prepareExpenses(p.Expenses, out.Participants)
		if err != nil {
			return models.Tally{}, err
		}
		out.Expenses = expenses
	case p.Participants != nil:
		for _, e := range out.Expenses {
			if err := validation.ValidateReferential(e, out.Participants); err != nil {
				return models.Tally{}, err
			}
		}
	}

	out.UpdatedAt = now.Unix()
	return out, nil
}

func checkParticipants(participants []models.Participant) error {
	if len(participants) == 0 {
		return ErrNoParticipants
	}
	seen := make(map[string]bool, len(participants))
	for _, p := range participants {
		if p.UserID == "" {
			return ErrEmptyParticipantID
		}
		if seen[p.UserID] {
			return fmt.Errorf("%w: %s", ErrDuplicateParticipant, p.UserID)
		}
		seen[p.UserID] = true
	}
	return nil
}

// prepareExpenses assigns missing IDs, rejects duplicate IDs and validates each expense.
func prepareExpenses(expenses []models.Expense, participants []models.Participant) ([]models.Expense, error) {
	out := make([]models.Expense, 0, len(expenses))
	seen := make(map[string]bool, len(expenses))
	for _, e := range expenses {
		e = e.Clone()
		if e.ID == "" {
			e.ID = newID()
		}
		if seen[e.ID] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateExpense, e.ID)
		}
		seen[e.ID] = true

		if err := validation.ValidateExpense(e, participants); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}
