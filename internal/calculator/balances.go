package calculator

import "github.com/mmynk/aequitally/internal/models"

// SettledThreshold is the display-level tolerance under which a balance counts
// as settled. It absorbs currency rounding, not computation error.
const SettledThreshold = 0.01

// BalanceStatus describes a participant's net position.
type BalanceStatus string

const (
	StatusOwed    BalanceStatus = "owed"
	StatusOwes    BalanceStatus = "owes"
	StatusSettled BalanceStatus = "settled"
)

// ParticipantBalance is the balance information for one tally participant.
type ParticipantBalance struct {
	ParticipantID string
	TotalPaid     float64 // Sum of expense amounts this participant paid
	TotalOwed     float64 // Sum of this participant's share amounts
	Balance       float64 // Positive = owed money, Negative = owes money
}

// Status classifies the balance using SettledThreshold.
func (b ParticipantBalance) Status() BalanceStatus {
	switch {
	case b.Balance > SettledThreshold:
		return StatusOwed
	case b.Balance < -SettledThreshold:
		return StatusOwes
	default:
		return StatusSettled
	}
}

// CalculateBalance computes paid, owed and net balance for one participant.
// A participant who is not in the tally, or has no activity, gets all zeros.
func CalculateBalance(t models.Tally, participantID string) ParticipantBalance {
	bal := ParticipantBalance{ParticipantID: participantID}

	for _, exp := range t.Expenses {
		if exp.PaidBy == participantID {
			bal.TotalPaid += exp.Amount
		}
		// Expenses left with no shares contribute nothing to anyone's owed total
		if share, ok := exp.ShareFor(participantID); ok {
			bal.TotalOwed += share.Amount
		}
	}

	bal.Balance = bal.TotalPaid - bal.TotalOwed
	return bal
}

// CalculateBalances computes balances for every tally participant, in
// participant order.
//
// Algorithm:
//   - For each expense: payer contributed +amount, each share owes its amount
//   - Aggregate: balance = total_paid - total_owed
//
// Shares and payers that reference someone outside the participant list are
// ignored, matching CalculateBalance over each member.
func CalculateBalances(t models.Tally) []ParticipantBalance {
	index := make(map[string]int, len(t.Participants))
	balances := make([]ParticipantBalance, len(t.Participants))
	for i, p := range t.Participants {
		index[p.UserID] = i
		balances[i] = ParticipantBalance{ParticipantID: p.UserID}
	}

	for _, exp := range t.Expenses {
		if i, ok := index[exp.PaidBy]; ok {
			balances[i].TotalPaid += exp.Amount
		}
		for _, share := range exp.ShareBetween {
			if i, ok := index[share.ParticipantID]; ok {
				balances[i].TotalOwed += share.Amount
			}
		}
	}

	for i := range balances {
		balances[i].Balance = balances[i].TotalPaid - balances[i].TotalOwed
	}

	return balances
}
