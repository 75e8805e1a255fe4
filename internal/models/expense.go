package models

// ShareMethod is the strategy used to divide an expense between participants.
type ShareMethod string

const (
	ShareMethodEqual        ShareMethod = "equal"
	ShareMethodShares       ShareMethod = "shares"
	ShareMethodPercentage   ShareMethod = "percentage"
	ShareMethodExactAmounts ShareMethod = "exact-amounts"
)

// ShareMethods lists every supported method.
var ShareMethods = []ShareMethod{
	ShareMethodEqual,
	ShareMethodShares,
	ShareMethodPercentage,
	ShareMethodExactAmounts,
}

// Valid reports whether m is a supported share method.
func (m ShareMethod) Valid() bool {
	for _, known := range ShareMethods {
		if m == known {
			return true
		}
	}
	return false
}

// Share is one participant's allocation of an expense.
type Share struct {
	// ParticipantID references Participant.UserID. Unique within one expense.
	ParticipantID string

	// Amount is what this participant owes for the expense.
	Amount float64

	// Shares is the weight used by the shares method, nil otherwise.
	Shares *float64

	// Percentage is the 0-100 value used by the percentage method, nil otherwise.
	Percentage *float64
}

// Expense is a payment made by one participant and shared between several.
type Expense struct {
	// ID is unique within the tally (UUID format when generated).
	ID string

	Title string

	// Amount is the total paid. Must be > 0.
	Amount float64

	// PaidBy references the paying Participant.UserID.
	PaidBy string

	// ShareMethod records how ShareBetween was computed.
	ShareMethod ShareMethod

	// ShareBetween is the per-participant allocation. May end up empty after a
	// participant is removed from the tally.
	ShareBetween []Share

	// Descriptive fields below are opaque to the balance engine.
	Description   string
	Date          string
	Category      string
	Tags          []string
	Merchant      string
	Location      string
	ReceiptURL    string
	PaymentMethod string
	Notes         string

	// Tax, Tip and ServiceFee are informational; when set they must be >= 0.
	Tax        *float64
	Tip        *float64
	ServiceFee *float64
}

// ShareFor returns the share entry for participantID.
func (e Expense) ShareFor(participantID string) (Share, bool) {
	for _, s := range e.ShareBetween {
		if s.ParticipantID == participantID {
			return s, true
		}
	}
	return Share{}, false
}

// Clone returns a deep copy of the expense.
func (e Expense) Clone() Expense {
	out := e
	if e.ShareBetween != nil {
		out.ShareBetween = make([]Share, len(e.ShareBetween))
		for i, s := range e.ShareBetween {
			out.ShareBetween[i] = Share{
				ParticipantID: s.ParticipantID,
				Amount:        s.Amount,
				Shares:        cloneFloat(s.Shares),
				Percentage:    cloneFloat(s.Percentage),
			}
		}
	}
	if e.Tags != nil {
		out.Tags = append([]string(nil), e.Tags...)
	}
	out.Tax = cloneFloat(e.Tax)
	out.Tip = cloneFloat(e.Tip)
	out.ServiceFee = cloneFloat(e.ServiceFee)
	return out
}

// Float returns a pointer to v, for optional numeric fields.
func Float(v float64) *float64 {
	return &v
}

func cloneFloat(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
