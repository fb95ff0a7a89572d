package driven

import (
	"context"

	"github.com/askdocs-labs/askdoc-cli/internal/core/domain"
)

// SessionStore persists the user session across runs.
// Absence of a stored session on startup means the user must log in.
type SessionStore interface {
	// Save stores the session, replacing any existing one.
	Save(ctx context.Context, session domain.UserSession) error

	// Load retrieves the stored session. Returns domain.ErrNotFound
	// when none exists.
	Load(ctx context.Context) (*domain.UserSession, error)

	// Clear removes the stored session.
	Clear(ctx context.Context) error
}
