package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/askdocs-labs/askdoc-cli/internal/core/domain"
	"github.com/askdocs-labs/askdoc-cli/internal/core/ports/driven"
	"github.com/askdocs-labs/askdoc-cli/internal/core/ports/driving"
	"github.com/askdocs-labs/askdoc-cli/internal/logger"
)

// Ensure SessionService implements the interface.
var _ driving.SessionService = (*SessionService)(nil)

// SessionService owns the credential lifecycle. The session value is
// handed to callers explicitly; no other component reads ambient state.
type SessionService struct {
	store   driven.SessionStore
	gateway driven.Gateway

	mu      sync.RWMutex
	current *domain.UserSession
}

// NewSessionService creates a session service, restoring a persisted
// session if one exists.
func NewSessionService(ctx context.Context, store driven.SessionStore, gateway driven.Gateway) *SessionService {
	s := &SessionService{
		store:   store,
		gateway: gateway,
	}
	if store != nil {
		if session, err := store.Load(ctx); err == nil {
			s.current = session
		}
	}
	return s
}

// Login exchanges credentials for a session and persists it.
func (s *SessionService) Login(ctx context.Context, email, password string) (domain.UserSession, error) {
	if email == "" || password == "" {
		return domain.UserSession{}, fmt.Errorf("%w: email and password required", domain.ErrInvalidInput)
	}

	session, err := s.gateway.Login(ctx, email, password)
	if err != nil {
		return domain.UserSession{}, fmt.Errorf("login: %w", err)
	}

	s.set(ctx, session)
	return session, nil
}

// Register creates an account and persists the resulting session.
func (s *SessionService) Register(ctx context.Context, username, email, password string) (domain.UserSession, error) {
	if username == "" || email == "" || password == "" {
		return domain.UserSession{}, fmt.Errorf("%w: username, email and password required", domain.ErrInvalidInput)
	}

	session, err := s.gateway.Register(ctx, username, email, password)
	if err != nil {
		return domain.UserSession{}, fmt.Errorf("register: %w", err)
	}

	s.set(ctx, session)
	return session, nil
}

// Logout clears the local session. The server call is best-effort and
// never blocks local teardown.
func (s *SessionService) Logout(ctx context.Context) error {
	s.mu.Lock()
	session := s.current
	s.current = nil
	s.mu.Unlock()

	if session == nil {
		return domain.ErrNotLoggedIn
	}

	if err := s.gateway.Logout(ctx, *session); err != nil {
		logger.Warn("server logout: %v", err)
	}
	if s.store != nil {
		if err := s.store.Clear(ctx); err != nil {
			return fmt.Errorf("clear stored session: %w", err)
		}
	}
	return nil
}

// Current returns the active session.
func (s *SessionService) Current() (domain.UserSession, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return domain.UserSession{}, false
	}
	return *s.current, true
}

func (s *SessionService) set(ctx context.Context, session domain.UserSession) {
	s.mu.Lock()
	s.current = &session
	s.mu.Unlock()

	if s.store != nil {
		if err := s.store.Save(ctx, session); err != nil {
			logger.Warn("persist session: %v", err)
		}
	}
}
