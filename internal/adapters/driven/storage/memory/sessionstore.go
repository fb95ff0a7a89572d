package memory

import (
	"context"
	"sync"

	"github.com/askdocs-labs/askdoc-cli/internal/core/domain"
	"github.com/askdocs-labs/askdoc-cli/internal/core/ports/driven"
)

// Ensure SessionStore implements the interface.
var _ driven.SessionStore = (*SessionStore)(nil)

// SessionStore is an in-memory implementation of driven.SessionStore.
// Used in tests; the real client persists sessions via the sqlite store.
type SessionStore struct {
	mu      sync.RWMutex
	session *domain.UserSession
}

// NewSessionStore creates an empty session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{}
}

// Save stores the session, replacing any existing one.
func (s *SessionStore) Save(_ context.Context, session domain.UserSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = &session
	return nil
}

// Load retrieves the stored session.
func (s *SessionStore) Load(_ context.Context) (*domain.UserSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return nil, domain.ErrNotFound
	}
	session := *s.session
	return &session, nil
}

// Clear removes the stored session.
func (s *SessionStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = nil
	return nil
}
