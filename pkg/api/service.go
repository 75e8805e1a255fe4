package api

type CreateTallyRequest struct {
	Name         string        `json:"name"`
	Description  string        `json:"description,omitempty"`
	Date         string        `json:"date,omitempty"`
	Participants []Participant `json:"participants"`
	Expenses     []Expense     `json:"expenses,omitempty"`
}

type CreateTallyResponse struct {
	Tally *Tally `json:"tally"`
}

type GetTallyRequest struct {
	TallyID string `json:"tallyId"`
}

type GetTallyResponse struct {
	Tally *Tally `json:"tally"`
}

type ListTalliesRequest struct{}

type ListTalliesResponse struct {
	Tallies []TallySummary `json:"tallies"`
}

// UpdateTallyRequest patches a tally. Absent fields are left unchanged;
// participants and expenses, when present, replace the whole list. An empty
// list is a replace, so these fields are never omitted from the wire.
type UpdateTallyRequest struct {
	TallyID      string        `json:"tallyId"`
	Name         *string       `json:"name,omitempty"`
	Description  *string       `json:"description,omitempty"`
	Date         *string       `json:"date,omitempty"`
	Participants []Participant `json:"participants"`
	Expenses     []Expense     `json:"expenses"`
}

type UpdateTallyResponse struct {
	Tally *Tally `json:"tally"`
}

type DeleteTallyRequest struct {
	TallyID string `json:"tallyId"`
}

type DeleteTallyResponse struct{}

type AddParticipantRequest struct {
	TallyID     string      `json:"tallyId"`
	Participant Participant `json:"participant"`
}

type AddParticipantResponse struct {
	Tally *Tally `json:"tally"`
}

type RemoveParticipantRequest struct {
	TallyID       string `json:"tallyId"`
	ParticipantID string `json:"participantId"`
}

// RemoveParticipantResponse lists the expenses that lost a share so callers can warn.
type RemoveParticipantResponse struct {
	Tally                  *Tally   `json:"tally"`
	AffectedExpenseIDs     []string `json:"affectedExpenseIds,omitempty"`
	EmptiedExpenseIDs      []string `json:"emptiedExpenseIds,omitempty"`
	InconsistentExpenseIDs []string `json:"inconsistentExpenseIds,omitempty"`
}

type AddExpenseRequest struct {
	TallyID string  `json:"tallyId"`
	Expense Expense `json:"expense"`
}

type AddExpenseResponse struct {
	Tally   *Tally   `json:"tally"`
	Expense *Expense `json:"expense"`
}

type EditExpenseRequest struct {
	TallyID   string  `json:"tallyId"`
	ExpenseID string  `json:"expenseId"`
	Expense   Expense `json:"expense"`
}

type EditExpenseResponse struct {
	Tally   *Tally   `json:"tally"`
	Expense *Expense `json:"expense"`
}

type RemoveExpenseRequest struct {
	TallyID   string `json:"tallyId"`
	ExpenseID string `json:"expenseId"`
}

type RemoveExpenseResponse struct {
	Tally *Tally `json:"tally"`
}

// AllocateSharesRequest computes shareBetween for an expense before it is submitted.
type AllocateSharesRequest struct {
	Amount               float64            `json:"amount"`
	ShareMethod          string             `json:"shareMethod"`
	SelectedParticipants []string           `json:"selectedParticipants"`
	CustomShares         map[string]float64 `json:"customShares,omitempty"`
	CustomPercentages    map[string]float64 `json:"customPercentages,omitempty"`
	CustomAmounts        map[string]float64 `json:"customAmounts,omitempty"`
}

type AllocateSharesResponse struct {
	// Amount is the expense total. For exact amounts it is the sum of the custom amounts.
	Amount       float64 `json:"amount"`
	ShareBetween []Share `json:"shareBetween"`
}

// GetBalancesRequest asks for every participant's balance, or for one when
// ParticipantID is set.
type GetBalancesRequest struct {
	TallyID       string `json:"tallyId"`
	ParticipantID string `json:"participantId,omitempty"`
}

type GetBalancesResponse struct {
	Balances []Balance `json:"balances"`
}

type GetSettlementsRequest struct {
	TallyID string `json:"tallyId"`
}

type GetSettlementsResponse struct {
	Transfers []Transfer         `json:"transfers"`
	Balances  []Balance          `json:"balances"`
	Summary   *SettlementSummary `json:"summary"`
}
