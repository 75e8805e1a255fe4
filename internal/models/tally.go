package models

// Participant is a member of a tally.
type Participant struct {
	// UserID identifies the participant. Unique within its tally.
	UserID string

	// Name is the display name.
	Name string
}

// Tally is a group expense-sharing session.
type Tally struct {
	// ID is the unique identifier for the tally (UUID format).
	ID string

	// Name is the display name of the tally (e.g., "Lisbon trip").
	Name string

	// Description is optional free text.
	Description string

	// Date is an optional, caller-formatted date for the tally.
	Date string

	// Participants is the set of members. Order is kept for display only.
	Participants []Participant

	// Expenses is the set of expenses. Order is kept for display only.
	Expenses []Expense

	// CreatedAt is the Unix timestamp when the tally was created.
	CreatedAt int64

	// UpdatedAt is the Unix timestamp of the last mutation, 0 if never updated.
	UpdatedAt int64
}

// TallySummary is the listing view of a tally.
type TallySummary struct {
	ID               string
	Name             string
	ParticipantCount int
	ExpenseCount     int
	CreatedAt        int64
	UpdatedAt        int64
}

// HasParticipant reports whether userID is a member of the tally.
func (t Tally) HasParticipant(userID string) bool {
	_, ok := t.Participant(userID)
	return ok
}

// Participant returns the member with the given user ID.
func (t Tally) Participant(userID string) (Participant, bool) {
	for _, p := range t.Participants {
		if p.UserID == userID {
			return p, true
		}
	}
	return Participant{}, false
}

// ParticipantName returns the display name for userID, or "Unknown".
func (t Tally) ParticipantName(userID string) string {
	if p, ok := t.Participant(userID); ok {
		return p.Name
	}
	return "Unknown"
}

// ExpenseIndex returns the position of the expense with the given ID, or -1.
func (t Tally) ExpenseIndex(expenseID string) int {
	for i, e := range t.Expenses {
		if e.ID == expenseID {
			return i
		}
	}
	return -1
}

// Summary returns the listing view of the tally.
func (t Tally) Summary() TallySummary {
	return TallySummary{
		ID:               t.ID,
		Name:             t.Name,
		ParticipantCount: len(t.Participants),
		ExpenseCount:     len(t.Expenses),
		CreatedAt:        t.CreatedAt,
		UpdatedAt:        t.UpdatedAt,
	}
}

// Clone returns a deep copy that shares no slices or pointers with t.
func (t Tally) Clone() Tally {
	out := t
	if t.Participants != nil {
		out.Participants = append([]Participant(nil), t.Participants...)
	}
	if t.Expenses != nil {
		out.Expenses = make([]Expense, len(t.Expenses))
		for i, e := range t.Expenses {
			out.Expenses[i] = e.Clone()
		}
	}
	return out
}
