package models

// Transfer is a suggested payment between tally participants that moves their
// balances toward zero. Transfers are derived on read and never stored.
type Transfer struct {
	// FromParticipantID is the debtor who pays.
	FromParticipantID string

	// ToParticipantID is the creditor who receives.
	ToParticipantID string

	// Amount is rounded to whole cents and always greater than the settlement epsilon.
	Amount float64
}
