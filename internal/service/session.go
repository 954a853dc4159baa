package service

import (
	"sync"

	"github.com/google/uuid"

	"github.com/harshitha-dev/event-booking-portal/internal/model"
)

// SessionManager holds the transient authenticated-identity records.
// Sessions live in memory only; restarting the server logs everyone
// out, which is acceptable for this portal.
type SessionManager struct {
	mu       sync.RWMutex
	sessions map[string]model.Session
}

// NewSessionManager returns an empty session manager.
func NewSessionManager() *SessionManager {
	return &SessionManager{sessions: make(map[string]model.Session)}
}

// Create stores the session under a fresh token and returns it.
func (m *SessionManager) Create(session model.Session) *model.Session {
	session.Token = uuid.New().String()

	m.mu.Lock()
	m.sessions[session.Token] = session
	m.mu.Unlock()

	return &session
}

// Get returns the session for a token, if one exists.
func (m *SessionManager) Get(token string) (model.Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	session, ok := m.sessions[token]

	return session, ok
}

// Delete removes the session for a token.
func (m *SessionManager) Delete(token string) {
	m.mu.Lock()
	delete(m.sessions, token)
	m.mu.Unlock()
}
