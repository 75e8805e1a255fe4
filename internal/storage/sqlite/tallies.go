package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/mmynk/aequitally/internal/models"
)

// insertChildren writes participants, expenses and shares of a tally whose row already exists.
// Rows keep the slice positions so order round-trips.
func insertChildren(ctx context.Context, tx *sql.Tx, tally *models.Tally) error {
	for i, p := range tally.Participants {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO participants (tally_id, user_id, name, position) VALUES (?, ?, ?, ?)",
			tally.ID, p.UserID, p.Name, i,
		)
		if err != nil {
			return fmt.Errorf("failed to insert participant %s: %w", p.UserID, err)
		}
	}

	for i, e := range tally.Expenses {
		tags, err := encodeTags(e.Tags)
		if err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO expenses (tally_id, id, position, title, amount, paid_by, share_method,
			     description, date, category, tags, merchant, location, receipt_url, payment_method,
			     notes, tax, tip, service_fee)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			tally.ID, e.ID, i, e.Title, e.Amount, e.PaidBy, string(e.ShareMethod),
			e.Description, e.Date, e.Category, tags, e.Merchant, e.Location, e.ReceiptURL, e.PaymentMethod,
			e.Notes, nullFloat(e.Tax), nullFloat(e.Tip), nullFloat(e.ServiceFee),
		)
		if err != nil {
			return fmt.Errorf("failed to insert expense %s: %w", e.ID, err)
		}

		for j, s := range e.ShareBetween {
			_, err = tx.ExecContext(ctx,
				`INSERT INTO expense_shares (tally_id, expense_id, participant_id, position, amount, shares, percentage)
				 VALUES (?, ?, ?, ?, ?, ?, ?)`,
				tally.ID, e.ID, s.ParticipantID, j, s.Amount, nullFloat(s.Shares), nullFloat(s.Percentage),
			)
			if err != nil {
				return fmt.Errorf("failed to insert share for %s on expense %s: %w", s.ParticipantID, e.ID, err)
			}
		}
	}

	return nil
}

func loadParticipants(ctx context.Context, q queryer, tallyID string) ([]models.Participant, error) {
	rows, err := q.QueryContext(ctx,
		"SELECT user_id, name FROM participants WHERE tally_id = ? ORDER BY position",
		tallyID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get participants: %w", err)
	}
	defer rows.Close()

	var participants []models.Participant
	for rows.Next() {
		var p models.Participant
		if err := rows.Scan(&p.UserID, &p.Name); err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		participants = append(participants, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate participants: %w", err)
	}
	return participants, nil
}

// loadExpenses reads expenses first and shares second. Both result sets are
// drained before the next query runs, since the pool holds a single connection.
func loadExpenses(ctx context.Context, q queryer, tallyID string) ([]models.Expense, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT id, title, amount, paid_by, share_method, description, date, category, tags,
		        merchant, location, receipt_url, payment_method, notes, tax, tip, service_fee
		 FROM expenses WHERE tally_id = ? ORDER BY position`,
		tallyID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get expenses: %w", err)
	}

	var expenses []models.Expense
	index := make(map[string]int)
	for rows.Next() {
		var (
			e              models.Expense
			method         string
			tags           sql.NullString
			tax, tip, svcF sql.NullFloat64
		)
		if err := rows.Scan(&e.ID, &e.Title, &e.Amount, &e.PaidBy, &method, &e.Description, &e.Date,
			&e.Category, &tags, &e.Merchant, &e.Location, &e.ReceiptURL, &e.PaymentMethod, &e.Notes,
			&tax, &tip, &svcF); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		e.ShareMethod = models.ShareMethod(method)
		if e.Tags, err = decodeTags(tags); err != nil {
			rows.Close()
			return nil, fmt.Errorf("expense %s: %w", e.ID, err)
		}
		e.Tax = floatPtr(tax)
		e.Tip = floatPtr(tip)
		e.ServiceFee = floatPtr(svcF)

		index[e.ID] = len(expenses)
		expenses = append(expenses, e)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	if len(expenses) == 0 {
		return expenses, nil
	}

	shareRows, err := q.QueryContext(ctx,
		`SELECT expense_id, participant_id, amount, shares, percentage
		 FROM expense_shares WHERE tally_id = ? ORDER BY expense_id, position`,
		tallyID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get expense shares: %w", err)
	}
	defer shareRows.Close()

	for shareRows.Next() {
		var (
			expenseID          string
			s                  models.Share
			shares, percentage sql.NullFloat64
		)
		if err := shareRows.Scan(&expenseID, &s.ParticipantID, &s.Amount, &shares, &percentage); err != nil {
			return nil, fmt.Errorf("failed to scan expense share: %w", err)
		}
		s.Shares = floatPtr(shares)
		s.Percentage = floatPtr(percentage)

		i, ok := index[expenseID]
		if !ok {
			continue
		}
		expenses[i].ShareBetween = append(expenses[i].ShareBetween, s)
	}
	if err := shareRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expense shares: %w", err)
	}

	return expenses, nil
}

func encodeTags(tags []string) (any, error) {
	if tags == nil {
		return nil, nil
	}
	b, err := json.Marshal(tags)
	if err != nil {
		return nil, fmt.Errorf("failed to encode tags: %w", err)
	}
	return string(b), nil
}

func decodeTags(raw sql.NullString) ([]string, error) {
	if !raw.Valid {
		return nil, nil
	}
	var tags []string
	if err := json.Unmarshal([]byte(raw.String), &tags); err != nil {
		return nil, fmt.Errorf("failed to decode tags: %w", err)
	}
	return tags, nil
}

func nullFloat(p *float64) any {
	if p == nil {
		return nil
	}
	return *p
}

func floatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	return models.Float(v.Float64)
}
