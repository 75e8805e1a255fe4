package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/aequitally/internal/storage"
	"github.com/mmynk/aequitally/internal/tally"
	"github.com/mmynk/aequitally/internal/validation"
)

// Metadata keys attached to validation failures.
const (
	ValidationKindKey         = "Validation-Kind"
	ValidationExpenseKey      = "Validation-Expense"
	ValidationParticipantsKey = "Validation-Participants"
)

var errTallyIDRequired = errors.New("tally_id is required")

// toConnectError maps domain and storage errors onto Connect codes.
func toConnectError(ctx context.Context, op string, err error) error {
	if vErr, ok := validation.AsError(err); ok {
		cErr := connect.NewError(connect.CodeInvalidArgument, err)
		cErr.Meta().Set(ValidationKindKey, vErr.KindName())
		if vErr.ExpenseID != "" {
			cErr.Meta().Set(ValidationExpenseKey, vErr.ExpenseID)
		}
		if len(vErr.ParticipantIDs) > 0 {
			cErr.Meta().Set(ValidationParticipantsKey, strings.Join(vErr.ParticipantIDs, ","))
		}
		return cErr
	}

	switch {
	case errors.Is(err, storage.ErrNotFound),
		errors.Is(err, tally.ErrExpenseNotFound),
		errors.Is(err, tally.ErrParticipantNotFound):
		return connect.NewError(connect.CodeNotFound, err)

	case errors.Is(err, tally.ErrParticipantExists),
		errors.Is(err, tally.ErrExpenseExists),
		errors.Is(err, tally.ErrDuplicateParticipant),
		errors.Is(err, tally.ErrDuplicateExpense):
		return connect.NewError(connect.CodeAlreadyExists, err)

	case errors.Is(err, errTallyIDRequired),
		errors.Is(err, tally.ErrEmptyName),
		errors.Is(err, tally.ErrEmptyParticipantID),
		errors.Is(err, tally.ErrNoParticipants),
		errors.Is(err, tally.ErrLastParticipant),
		errors.Is(err, tally.ErrParticipantIsPayer):
		return connect.NewError(connect.CodeInvalidArgument, err)

	case errors.Is(err, context.Canceled):
		return connect.NewError(connect.CodeCanceled, err)
	case errors.Is(err, context.DeadlineExceeded):
		return connect.NewError(connect.CodeDeadlineExceeded, err)
	}

	slog.ErrorContext(ctx, op+" failed", "error", err)
	return connect.NewError(connect.CodeInternal, errors.New("internal error"))
}
