package tally

import (
	"errors"
	"time"

	"github.com/mmynk/aequitally/internal/models"
	"github.com/mmynk/aequitally/internal/validation"
)

// AddParticipant appends p to the tally.
func AddParticipant(t models.Tally, p models.Participant, now time.Time) (models.Tally, error) {
	if p.UserID == "" {
		return models.Tally{}, ErrEmptyParticipantID
	}
	if t.HasParticipant(p.UserID) {
		return models.Tally{}, ErrParticipantExists
	}

	out := t.Clone()
	out.Participants = append(out.Participants, p)
	out.UpdatedAt = now.Unix()
	return out, nil
}

// Removal describes what removing a participant did to the tally's expenses.
type Removal struct {
	// Affected lists expenses that lost a share.
	Affected []string

	// Emptied lists affected expenses left with no shares at all. They no longer
	// count towards anyone's balance except the payer's.
	Emptied []string

	// Inconsistent lists affected expenses whose remaining shares no longer satisfy
	// their share method, e.g. exact amounts that stop summing to the total.
	Inconsistent []string
}

// RemoveParticipant drops the participant and their shares from every expense.
// The shrunk share sets are kept as they are; the Removal report says which
// expenses need attention.
//
// A participant who paid for an expense cannot be removed, since the expense
// would reference a payer outside the tally.
func RemoveParticipant(t models.Tally, userID string, now time.Time) (models.Tally, Removal, error) {
	if !t.HasParticipant(userID) {
		return models.Tally{}, Removal{}, ErrParticipantNotFound
	}
	if len(t.Participants) <= 1 {
		return models.Tally{}, Removal{}, ErrLastParticipant
	}
	for _, e := range t.Expenses {
		if e.PaidBy == userID {
			return models.Tally{}, Removal{}, &PayerError{ParticipantID: userID, ExpenseID: e.ID}
		}
	}

	out := t.Clone()

	participants := out.Participants[:0]
	for _, p := range out.Participants {
		if p.UserID != userID {
			participants = append(participants, p)
		}
	}
	out.Participants = participants

	var report Removal
	for i, e := range out.Expenses {
		if _, ok := e.ShareFor(userID); !ok {
			continue
		}

		shares := make([]models.Share, 0, len(e.ShareBetween)-1)
		for _, s := range e.ShareBetween {
			if s.ParticipantID != userID {
				shares = append(shares, s)
			}
		}
		e.ShareBetween = shares
		out.Expenses[i] = e

		report.Affected = append(report.Affected, e.ID)
		switch err := validation.ValidateShares(e); {
		case errors.Is(err, validation.ErrEmptyShareSet):
			report.Emptied = append(report.Emptied, e.ID)
		case err != nil:
			report.Inconsistent = append(report.Inconsistent, e.ID)
		}
	}

	out.UpdatedAt = now.Unix()
	return out, report, nil
}

// PayerError rejects removing a participant who paid for an expense.
type PayerError struct {
	ParticipantID string
	ExpenseID     string
}

func (e *PayerError) Error() string {
	return ErrParticipantIsPayer.Error() + ": " + e.ParticipantID + " paid for expense " + e.ExpenseID
}

func (e *PayerError) Unwrap() error {
	return ErrParticipantIsPayer
}
