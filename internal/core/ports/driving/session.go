package driving

import (
	"context"

	"github.com/askdocs-labs/askdoc-cli/internal/core/domain"
)

// SessionService owns the credential lifecycle: set at login, cleared at
// logout. Other services receive the session value explicitly; nothing
// reads it from ambient state.
type SessionService interface {
	// Login exchanges credentials for a session and persists it.
	Login(ctx context.Context, email, password string) (domain.UserSession, error)

	// Register creates an account and persists the resulting session.
	Register(ctx context.Context, username, email, password string) (domain.UserSession, error)

	// Logout tells the server best-effort and clears the local session.
	// Local teardown never fails on a server error.
	Logout(ctx context.Context) error

	// Current returns the active session. ok is false when logged out.
	Current() (session domain.UserSession, ok bool)
}
