// Package session tracks the authenticated user for ledger operations.
// Logging in replaces whatever session was active before it; there is no
// explicit logout.
package session

import (
	"sync"

	"finease/internal/core"
)

type Manager struct {
	mu     sync.RWMutex
	userID int64
	active bool
}

func NewManager() *Manager {
	return &Manager{}
}

// Begin starts a session for userID, replacing any active one.
func (m *Manager) Begin(userID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.userID = userID
	m.active = true
}

// Current returns the active user's ID, or core.ErrUnauthenticated when no
// session has been started.
func (m *Manager) Current() (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.active {
		return 0, core.ErrUnauthenticated
	}
	return m.userID, nil
}

// Active reports whether any user is logged in.
func (m *Manager) Active() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.active
}
