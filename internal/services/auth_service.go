// Package services orchestrates the application's use cases across storage,
// sessions and the export queue.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"finease/internal/auth"
	"finease/internal/core"
	"finease/internal/session"
	"finease/internal/storage"
)

// AuthService registers users and opens sessions.
type AuthService struct {
	storage  *storage.SQLiteRepository
	tokens   *auth.TokenManager
	sessions *session.Manager
}

func NewAuthService(storage *storage.SQLiteRepository, tokens *auth.TokenManager, sessions *session.Manager) *AuthService {
	return &AuthService{
		storage:  storage,
		tokens:   tokens,
		sessions: sessions,
	}
}

// Register creates a new account with a hashed password and returns its ID.
func (s *AuthService) Register(ctx context.Context, username, password string) (int64, error) {
	if username == "" || password == "" {
		return 0, core.ErrEmptyCredentials
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return 0, fmt.Errorf("hash password: %w", err)
	}

	id, err := s.storage.CreateUser(ctx, username, hash)
	if err != nil {
		return 0, err
	}

	slog.InfoContext(ctx, "User registered", "user_id", id, "username", username)
	return id, nil
}

// Login verifies credentials, replaces the active session and returns a
// signed token. Unknown users and wrong passwords are indistinguishable to
// the caller.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, core.User, error) {
	user, err := s.storage.GetUserByUsername(ctx, username)
	if errors.Is(err, core.ErrUserNotFound) {
		return "", core.User{}, core.ErrInvalidCredentials
	}
	if err != nil {
		return "", core.User{}, fmt.Errorf("look up user: %w", err)
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		return "", core.User{}, core.ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(user.ID, user.Username)
	if err != nil {
		return "", core.User{}, fmt.Errorf("generate token: %w", err)
	}

	s.sessions.Begin(user.ID)
	slog.InfoContext(ctx, "User logged in", "user_id", user.ID, "username", user.Username)

	return token, user, nil
}
