// Package events announces tally changes to other systems.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// Type names a kind of change. It doubles as the AMQP routing key.
type Type string

const (
	TallyCreated       Type = "tally.created"
	TallyUpdated       Type = "tally.updated"
	TallyDeleted       Type = "tally.deleted"
	ParticipantAdded   Type = "participant.added"
	ParticipantRemoved Type = "participant.removed"
	ExpenseAdded       Type = "expense.added"
	ExpenseEdited      Type = "expense.edited"
	ExpenseRemoved     Type = "expense.removed"
)

// Event is a committed change to a tally.
type Event struct {
	Type          Type      `json:"type"`
	TallyID       string    `json:"tallyId"`
	ExpenseID     string    `json:"expenseId,omitempty"`
	ParticipantID string    `json:"participantId,omitempty"`
	OccurredAt    time.Time `json:"occurredAt"`
}

// ToJSON encodes the event as a message body.
func (e Event) ToJSON() ([]byte, error) {
	b, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("marshal event: %w", err)
	}
	return b, nil
}

// FromJSON decodes a message body. It is the decoder for consumers bound to
// the events exchange; the server itself only publishes.
func FromJSON(data []byte) (Event, error) {
	var e Event
	if err := json.Unmarshal(data, &e); err != nil {
		return Event{}, fmt.Errorf("unmarshal event: %w", err)
	}
	return e, nil
}

// Publisher delivers events. Implementations must be safe for concurrent use.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
	Close() error
}

// NopPublisher drops every event. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }
func (NopPublisher) Close() error                         { return nil }
