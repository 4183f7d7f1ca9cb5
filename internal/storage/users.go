package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"finease/internal/core"
)

// CreateUser inserts a new user with the default budget and returns its ID.
// A username collision maps to core.ErrDuplicateUsername.
func (r *SQLiteRepository) CreateUser(ctx context.Context, username, passwordHash string) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO users (username, password_hash) VALUES (?, ?)`,
		username, passwordHash)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return 0, core.ErrDuplicateUsername
		}
		return 0, fmt.Errorf("insert user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get user id: %w", err)
	}
	return id, nil
}

// GetUserByUsername returns core.ErrUserNotFound when no such user exists.
func (r *SQLiteRepository) GetUserByUsername(ctx context.Context, username string) (core.User, error) {
	var u core.User
	err := r.db.QueryRowContext(ctx,
		`SELECT id, username, password_hash, budget_cents FROM users WHERE username = ?`,
		username).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Budget.Cents)
	if errors.Is(err, sql.ErrNoRows) {
		return core.User{}, core.ErrUserNotFound
	}
	if err != nil {
		return core.User{}, fmt.Errorf("query user: %w", err)
	}
	return u, nil
}

func (r *SQLiteRepository) GetUser(ctx context.Context, userID int64) (core.User, error) {
	var u core.User
	err := r.db.QueryRowContext(ctx,
		`SELECT id, username, password_hash, budget_cents FROM users WHERE id = ?`,
		userID).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Budget.Cents)
	if errors.Is(err, sql.ErrNoRows) {
		return core.User{}, core.ErrUserNotFound
	}
	if err != nil {
		return core.User{}, fmt.Errorf("query user: %w", err)
	}
	return u, nil
}

func (r *SQLiteRepository) GetBudget(ctx context.Context, userID int64) (core.Money, error) {
	var budget core.Money
	err := r.db.QueryRowContext(ctx,
		`SELECT budget_cents FROM users WHERE id = ?`,
		userID).Scan(&budget.Cents)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Money{}, core.ErrUserNotFound
	}
	if err != nil {
		return core.Money{}, fmt.Errorf("query budget: %w", err)
	}
	return budget, nil
}

func (r *SQLiteRepository) SetBudget(ctx context.Context, userID int64, budget core.Money) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE users SET budget_cents = ? WHERE id = ?`,
		budget.Cents, userID)
	if err != nil {
		return fmt.Errorf("update budget: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get affected rows: %w", err)
	}
	if affected == 0 {
		return core.ErrUserNotFound
	}
	return nil
}
