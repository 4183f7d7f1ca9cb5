package storage

import (
	"context"
	"fmt"

	"finease/internal/core"
)

func (r *SQLiteRepository) CreateAlert(ctx context.Context, a core.Alert) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO alerts (user_id, due_on, amount_cents, description)
		 VALUES (?, ?, ?, ?)`,
		a.UserID, a.DueDate.String(), a.Amount.Cents, a.Description)
	if err != nil {
		return 0, fmt.Errorf("insert alert: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get alert id: %w", err)
	}
	return id, nil
}

// ListAlerts returns a user's alerts ordered by due date, soonest first.
func (r *SQLiteRepository) ListAlerts(ctx context.Context, userID int64) ([]core.Alert, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, due_on, amount_cents, description, notified
		 FROM alerts WHERE user_id = ? ORDER BY due_on ASC, id ASC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("query alerts: %w", err)
	}
	defer rows.Close()

	var alerts []core.Alert
	for rows.Next() {
		var (
			a     core.Alert
			dueOn string
		)
		if err := rows.Scan(&a.ID, &a.UserID, &dueOn, &a.Amount.Cents, &a.Description, &a.Notified); err != nil {
			return nil, fmt.Errorf("scan alert: %w", err)
		}
		if a.DueDate, err = core.ParseDate(dueOn); err != nil {
			return nil, fmt.Errorf("parse alert date %q: %w", dueOn, err)
		}
		alerts = append(alerts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate alerts: %w", err)
	}
	return alerts, nil
}

// ClaimDueAlerts atomically flips the notified flag on every alert due on the
// given day and returns the alerts it claimed. Two concurrent callers never
// receive the same alert: the flip and the read happen in one statement.
func (r *SQLiteRepository) ClaimDueAlerts(ctx context.Context, userID int64, day core.Date) ([]core.Alert, error) {
	rows, err := r.db.QueryContext(ctx,
		`UPDATE alerts SET notified = 1
		 WHERE user_id = ? AND due_on = ? AND notified = 0
		 RETURNING id, user_id, due_on, amount_cents, description, notified`,
		userID, day.String())
	if err != nil {
		return nil, fmt.Errorf("claim due alerts: %w", err)
	}
	defer rows.Close()

	var alerts []core.Alert
	for rows.Next() {
		var (
			a     core.Alert
			dueOn string
		)
		if err := rows.Scan(&a.ID, &a.UserID, &dueOn, &a.Amount.Cents, &a.Description, &a.Notified); err != nil {
			return nil, fmt.Errorf("scan claimed alert: %w", err)
		}
		if a.DueDate, err = core.ParseDate(dueOn); err != nil {
			return nil, fmt.Errorf("parse alert date %q: %w", dueOn, err)
		}
		alerts = append(alerts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate claimed alerts: %w", err)
	}
	return alerts, nil
}

// MarkAlertNotified sets a single alert's notified flag. The flip is
// idempotent: marking an already-notified alert succeeds and changes nothing.
// Unknown alerts, and alerts belonging to another user, return
// core.ErrAlertNotFound.
func (r *SQLiteRepository) MarkAlertNotified(ctx context.Context, userID, alertID int64) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE alerts SET notified = 1 WHERE id = ? AND user_id = ?`,
		alertID, userID)
	if err != nil {
		return fmt.Errorf("mark alert notified: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get affected rows: %w", err)
	}
	if affected == 0 {
		return core.ErrAlertNotFound
	}
	return nil
}
