// Package api defines the messages of the aequitally.v1 Connect service.
//
// Messages are plain structs encoded as JSON with lowerCamelCase field names,
// the same shape protojson produces.
package api

import (
	"time"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/timestamppb"
)

// Timestamp is a protobuf timestamp that encodes as an RFC 3339 string.
type Timestamp struct {
	*timestamppb.Timestamp
}

// UnixTimestamp converts Unix seconds to a Timestamp. Zero gives nil.
func UnixTimestamp(sec int64) *Timestamp {
	if sec == 0 {
		return nil
	}
	return &Timestamp{Timestamp: timestamppb.New(time.Unix(sec, 0))}
}

// Unix returns the timestamp as Unix seconds, 0 for nil.
func (t *Timestamp) Unix() int64 {
	if t == nil || t.Timestamp == nil {
		return 0
	}
	return t.GetSeconds()
}

func (t *Timestamp) MarshalJSON() ([]byte, error) {
	return protojson.Marshal(t.Timestamp)
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	ts := &timestamppb.Timestamp{}
	if err := protojson.Unmarshal(b, ts); err != nil {
		return err
	}
	t.Timestamp = ts
	return nil
}

type Participant struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
}

type Share struct {
	ParticipantID string   `json:"participantId"`
	Amount        float64  `json:"amount"`
	Shares        *float64 `json:"shares,omitempty"`
	Percentage    *float64 `json:"percentage,omitempty"`
}

type Expense struct {
	ID           string  `json:"id,omitempty"`
	Title        string  `json:"title"`
	Amount       float64 `json:"amount"`
	PaidBy       string  `json:"paidBy"`
	ShareMethod  string  `json:"shareMethod"`
	ShareBetween []Share `json:"shareBetween"`

	Description   string   `json:"description,omitempty"`
	Date          string   `json:"date,omitempty"`
	Category      string   `json:"category,omitempty"`
	Tags          []string `json:"tags"` // null keeps, [] clears on edit
	Merchant      string   `json:"merchant,omitempty"`
	Location      string   `json:"location,omitempty"`
	ReceiptURL    string   `json:"receiptUrl,omitempty"`
	PaymentMethod string   `json:"paymentMethod,omitempty"`
	Notes         string   `json:"notes,omitempty"`
	Tax           *float64 `json:"tax,omitempty"`
	Tip           *float64 `json:"tip,omitempty"`
	ServiceFee    *float64 `json:"serviceFee,omitempty"`
}

type Tally struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Description  string        `json:"description,omitempty"`
	Date         string        `json:"date,omitempty"`
	Participants []Participant `json:"participants"`
	Expenses     []Expense     `json:"expenses"`
	CreatedAt    *Timestamp    `json:"createdAt,omitempty"`
	UpdatedAt    *Timestamp    `json:"updatedAt,omitempty"`
}

type TallySummary struct {
	ID               string     `json:"id"`
	Name             string     `json:"name"`
	ParticipantCount int        `json:"participantCount"`
	ExpenseCount     int        `json:"expenseCount"`
	CreatedAt        *Timestamp `json:"createdAt,omitempty"`
	UpdatedAt        *Timestamp `json:"updatedAt,omitempty"`
}

// Balance is one participant's position. Status is "owed", "owes" or "settled".
type Balance struct {
	UserID    string  `json:"userId"`
	Name      string  `json:"name"`
	TotalPaid float64 `json:"totalPaid"`
	TotalOwed float64 `json:"totalOwed"`
	Balance   float64 `json:"balance"`
	Status    string  `json:"status"`
}

type Transfer struct {
	FromParticipantID string  `json:"fromParticipantId"`
	FromName          string  `json:"fromName,omitempty"`
	ToParticipantID   string  `json:"toParticipantId"`
	ToName            string  `json:"toName,omitempty"`
	Amount            float64 `json:"amount"`
}

type SettlementSummary struct {
	TotalAmount     float64 `json:"totalAmount"`
	TransferCount   int     `json:"transferCount"`
	LargestTransfer float64 `json:"largestTransfer"`
	TotalToSettle   float64 `json:"totalToSettle"`
}
