// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/aequitally/internal/models"
)

// ErrNotFound is returned when the requested tally does not exist.
var ErrNotFound = errors.New("tally not found")

// MutateFunc changes a tally in place. Returning an error aborts the write.
type MutateFunc func(t *models.Tally) error

// Store defines the interface for tally storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
//
// A tally is always read and written as a whole: participants, expenses and
// shares travel together.
type Store interface {
	// CreateTally persists a new tally. An empty tally.ID is populated by the store.
	CreateTally(ctx context.Context, tally *models.Tally) error

	// GetTally retrieves a tally by its ID. Returns ErrNotFound if it does not exist.
	GetTally(ctx context.Context, tallyID string) (*models.Tally, error)

	// ListTallies returns a summary of every tally, newest first.
	ListTallies(ctx context.Context) ([]models.TallySummary, error)

	// MutateTally reads the tally, applies fn and writes the result back in a
	// single transaction. Concurrent mutations of the same tally never interleave.
	// Returns the stored tally after the write.
	MutateTally(ctx context.Context, tallyID string, fn MutateFunc) (*models.Tally, error)

	// DeleteTally removes a tally and everything it owns.
	DeleteTally(ctx context.Context, tallyID string) error

	// Close releases any resources held by the store.
	Close() error
}
