package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"finease/internal/core"
)

// Export status values for the expenses.export_status column.
const (
	ExportStatusPending  = "pending"
	ExportStatusExported = "exported"
	ExportStatusError    = "error"
)

func (r *SQLiteRepository) CreateExpense(ctx context.Context, e core.Expense) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO expenses (user_id, spent_on, category, amount_cents, description)
		 VALUES (?, ?, ?, ?, ?)`,
		e.UserID, e.Date.String(), e.Category, e.Amount.Cents, e.Description)
	if err != nil {
		return 0, fmt.Errorf("insert expense: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get expense id: %w", err)
	}
	return id, nil
}

func (r *SQLiteRepository) GetExpense(ctx context.Context, id int64) (core.Expense, error) {
	var (
		e       core.Expense
		spentOn string
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, spent_on, category, amount_cents, description
		 FROM expenses WHERE id = ?`,
		id).Scan(&e.ID, &e.UserID, &spentOn, &e.Category, &e.Amount.Cents, &e.Description)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Expense{}, fmt.Errorf("expense %d not found", id)
	}
	if err != nil {
		return core.Expense{}, fmt.Errorf("query expense: %w", err)
	}
	if e.Date, err = core.ParseDate(spentOn); err != nil {
		return core.Expense{}, fmt.Errorf("parse expense date %q: %w", spentOn, err)
	}
	return e, nil
}

// SumExpenses returns the all-time spend of a user. A user with no expenses
// sums to zero, not to an error.
func (r *SQLiteRepository) SumExpenses(ctx context.Context, userID int64) (core.Money, error) {
	var total core.Money
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(amount_cents), 0) FROM expenses WHERE user_id = ?`,
		userID).Scan(&total.Cents)
	if err != nil {
		return core.Money{}, fmt.Errorf("sum expenses: %w", err)
	}
	return total, nil
}

// SumExpensesInRange sums expenses with from <= spent_on < to. Dates are
// stored as ISO strings so lexicographic comparison is chronological.
func (r *SQLiteRepository) SumExpensesInRange(ctx context.Context, userID int64, from, to core.Date) (core.Money, error) {
	var total core.Money
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(amount_cents), 0) FROM expenses
		 WHERE user_id = ? AND spent_on >= ? AND spent_on < ?`,
		userID, from.String(), to.String()).Scan(&total.Cents)
	if err != nil {
		return core.Money{}, fmt.Errorf("sum expenses in range: %w", err)
	}
	return total, nil
}

// CategoryTotals aggregates a user's spend per category label, largest first.
func (r *SQLiteRepository) CategoryTotals(ctx context.Context, userID int64) ([]core.CategoryTotal, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT category, SUM(amount_cents) AS total FROM expenses
		 WHERE user_id = ? GROUP BY category ORDER BY total DESC, category ASC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("query category totals: %w", err)
	}
	defer rows.Close()

	var totals []core.CategoryTotal
	for rows.Next() {
		var ct core.CategoryTotal
		if err := rows.Scan(&ct.Category, &ct.Total.Cents); err != nil {
			return nil, fmt.Errorf("scan category total: %w", err)
		}
		totals = append(totals, ct)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate category totals: %w", err)
	}
	return totals, nil
}

// ListExpenses returns a user's expenses ordered by date, oldest first.
func (r *SQLiteRepository) ListExpenses(ctx context.Context, userID int64) ([]core.Expense, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, spent_on, category, amount_cents, description
		 FROM expenses WHERE user_id = ? ORDER BY spent_on ASC, id ASC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("query expenses: %w", err)
	}
	defer rows.Close()

	return scanExpenses(rows)
}

// GetPendingExportExpenses returns expenses not yet mirrored to the export
// target, capped at limit, oldest insertion first.
func (r *SQLiteRepository) GetPendingExportExpenses(ctx context.Context, limit int) ([]core.Expense, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, spent_on, category, amount_cents, description
		 FROM expenses WHERE export_status = ? ORDER BY id ASC LIMIT ?`,
		ExportStatusPending, limit)
	if err != nil {
		return nil, fmt.Errorf("query pending export expenses: %w", err)
	}
	defer rows.Close()

	return scanExpenses(rows)
}

func scanExpenses(rows *sql.Rows) ([]core.Expense, error) {
	var expenses []core.Expense
	for rows.Next() {
		var (
			e       core.Expense
			spentOn string
		)
		if err := rows.Scan(&e.ID, &e.UserID, &spentOn, &e.Category, &e.Amount.Cents, &e.Description); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		var err error
		if e.Date, err = core.ParseDate(spentOn); err != nil {
			return nil, fmt.Errorf("parse expense date %q: %w", spentOn, err)
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate expenses: %w", err)
	}
	return expenses, nil
}

func (r *SQLiteRepository) MarkExported(ctx context.Context, expenseID int64) error {
	return r.setExportStatus(ctx, expenseID, ExportStatusExported)
}

func (r *SQLiteRepository) MarkExportError(ctx context.Context, expenseID int64) error {
	return r.setExportStatus(ctx, expenseID, ExportStatusError)
}

func (r *SQLiteRepository) setExportStatus(ctx context.Context, expenseID int64, status string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE expenses SET export_status = ? WHERE id = ?`,
		status, expenseID)
	if err != nil {
		return fmt.Errorf("update export status: %w", err)
	}
	return nil
}
