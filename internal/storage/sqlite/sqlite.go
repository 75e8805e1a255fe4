// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/mmynk/aequitally/internal/models"
	"github.com/mmynk/aequitally/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// queryer is the subset of *sql.DB and *sql.Tx used for reads and writes.
type queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	// Create parent directory if it doesn't exist
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	db, err := sql.Open("sqlite", dsn(dbPath))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// One connection: every transaction is a single writer, so mutations of the
	// same tally are serialized.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func dsn(dbPath string) string {
	return "file:" + dbPath + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// CreateTally persists a new tally with its participants and expenses.
func (s *SQLiteStore) CreateTally(ctx context.Context, tally *models.Tally) error {
	if tally.ID == "" {
		tally.ID = uuid.New().String()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO tallies (id, name, description, date, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		tally.ID, tally.Name, tally.Description, tally.Date, tally.CreatedAt, tally.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert tally: %w", err)
	}

	if err := insertChildren(ctx, tx, tally); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetTally retrieves a tally by ID, including participants, expenses and shares.
func (s *SQLiteStore) GetTally(ctx context.Context, tallyID string) (*models.Tally, error) {
	return loadTally(ctx, s.db, tallyID)
}

// ListTallies returns summaries of all tallies, newest first.
func (s *SQLiteStore) ListTallies(ctx context.Context) ([]models.TallySummary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT t.id, t.name, t.created_at, t.updated_at,
		        (SELECT COUNT(*) FROM participants p WHERE p.tally_id = t.id),
		        (SELECT COUNT(*) FROM expenses e WHERE e.tally_id = t.id)
		 FROM tallies t
		 ORDER BY t.created_at DESC, t.id`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list tallies: %w", err)
	}
	defer rows.Close()

	summaries := []models.TallySummary{}
	for rows.Next() {
		var sum models.TallySummary
		if err := rows.Scan(&sum.ID, &sum.Name, &sum.CreatedAt, &sum.UpdatedAt,
			&sum.ParticipantCount, &sum.ExpenseCount); err != nil {
			return nil, fmt.Errorf("failed to scan tally summary: %w", err)
		}
		summaries = append(summaries, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tallies: %w", err)
	}
	return summaries, nil
}

// MutateTally loads the tally, applies fn and rewrites the tally in one transaction.
func (s *SQLiteStore) MutateTally(ctx context.Context, tallyID string, fn storage.MutateFunc) (*models.Tally, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	tally, err := loadTally(ctx, tx, tallyID)
	if err != nil {
		return nil, err
	}

	if err := fn(tally); err != nil {
		return nil, err
	}
	// The tally's identity is owned by the store
	tally.ID = tallyID

	_, err = tx.ExecContext(ctx,
		"UPDATE tallies SET name = ?, description = ?, date = ?, updated_at = ? WHERE id = ?",
		tally.Name, tally.Description, tally.Date, tally.UpdatedAt, tallyID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update tally: %w", err)
	}

	// Shares go with their expenses via ON DELETE CASCADE
	if _, err := tx.ExecContext(ctx, "DELETE FROM expenses WHERE tally_id = ?", tallyID); err != nil {
		return nil, fmt.Errorf("failed to clear expenses: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM participants WHERE tally_id = ?", tallyID); err != nil {
		return nil, fmt.Errorf("failed to clear participants: %w", err)
	}
	if err := insertChildren(ctx, tx, tally); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return tally, nil
}

// DeleteTally removes a tally. Participants, expenses and shares are removed by cascade.
func (s *SQLiteStore) DeleteTally(ctx context.Context, tallyID string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM tallies WHERE id = ?", tallyID)
	if err != nil {
		return fmt.Errorf("failed to delete tally: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", storage.ErrNotFound, tallyID)
	}
	return nil
}

func loadTally(ctx context.Context, q queryer, tallyID string) (*models.Tally, error) {
	tally := &models.Tally{}
	err := q.QueryRowContext(ctx,
		"SELECT id, name, description, date, created_at, updated_at FROM tallies WHERE id = ?",
		tallyID,
	).Scan(&tally.ID, &tally.Name, &tally.Description, &tally.Date, &tally.CreatedAt, &tally.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", storage.ErrNotFound, tallyID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get tally: %w", err)
	}

	if tally.Participants, err = loadParticipants(ctx, q, tallyID); err != nil {
		return nil, err
	}
	if tally.Expenses, err = loadExpenses(ctx, q, tallyID); err != nil {
		return nil, err
	}
	return tally, nil
}
