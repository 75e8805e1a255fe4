// Package validation gates every expense write against the tally's participants
// and the arithmetic rules of the expense's share method.
package validation

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds. Match them with errors.Is against a returned *Error.
var (
	ErrUnknownParticipant        = errors.New("unknown participant")
	ErrDuplicateShareParticipant = errors.New("duplicate participant in shareBetween")
	ErrEmptyShareSet             = errors.New("shareBetween must include at least one participant")
	ErrNonPositiveAmount         = errors.New("expense amount must be > 0")
	ErrNegativeAuxiliaryField    = errors.New("tax, tip and service fee must be >= 0")
	ErrUnknownShareMethod        = errors.New("unknown share method")
	ErrExactAmountsMismatch      = errors.New("sum of exact amounts must equal the expense amount")
	ErrZeroTotalShares           = errors.New("total shares must be > 0 for shares method")
	ErrInvalidShareValue         = errors.New("share values must be >= 0")
	ErrPercentageMismatch        = errors.New("sum of percentages must equal 100")
	ErrPercentageOutOfRange      = errors.New("percentages must be between 0 and 100")
)

// kindNames maps each kind to a stable identifier usable in APIs and metrics.
var kindNames = map[error]string{
	ErrUnknownParticipant:        "UnknownParticipant",
	ErrDuplicateShareParticipant: "DuplicateShareParticipant",
	ErrEmptyShareSet:             "EmptyShareSet",
	ErrNonPositiveAmount:         "NonPositiveAmount",
	ErrNegativeAuxiliaryField:    "NegativeAuxiliaryField",
	ErrUnknownShareMethod:        "UnknownShareMethod",
	ErrExactAmountsMismatch:      "ExactAmountsMismatch",
	ErrZeroTotalShares:           "ZeroTotalShares",
	ErrInvalidShareValue:         "InvalidShareValue",
	ErrPercentageMismatch:        "PercentageMismatch",
	ErrPercentageOutOfRange:      "PercentageOutOfRange",
}

// Error is a rejected expense write. It carries enough context to show a precise message.
type Error struct {
	// Kind is one of the Err* sentinels above.
	Kind error

	ExpenseID      string
	ParticipantIDs []string

	// Field names the offending expense field, if any (e.g. "tip", "shareBetween.percentage").
	Field string

	// Detail is an optional human-readable addition, such as the computed sum.
	Detail string
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.Error())
	if e.Field != "" {
		fmt.Fprintf(&b, " (field %s)", e.Field)
	}
	if len(e.ParticipantIDs) > 0 {
		fmt.Fprintf(&b, " (participants %s)", strings.Join(e.ParticipantIDs, ", "))
	}
	if e.ExpenseID != "" {
		fmt.Fprintf(&b, " (expense %s)", e.ExpenseID)
	}
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Kind
}

// KindName returns the stable identifier of the error's kind, e.g. "PercentageMismatch".
func (e *Error) KindName() string {
	return KindName(e.Kind)
}

// KindName returns the stable identifier of kind, or "Unknown".
func KindName(kind error) string {
	if name, ok := kindNames[kind]; ok {
		return name
	}
	return "Unknown"
}

// AsError extracts a validation error from err's chain.
func AsError(err error) (*Error, bool) {
	var vErr *Error
	if errors.As(err, &vErr) {
		return vErr, true
	}
	return nil, false
}
