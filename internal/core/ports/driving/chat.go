package driving

import (
	"context"

	"github.com/askdocs-labs/askdoc-cli/internal/core/domain"
)

// ChatService manages the request/response exchange of the active
// conversation.
type ChatService interface {
	// Send appends an optimistic user turn and settles the exchange
	// with exactly one assistant or error turn. Empty text and a send
	// while a prior exchange in the same session is unsettled are
	// rejected without touching the log (domain.ErrEmptyQuery,
	// domain.ErrExchangeInFlight).
	Send(ctx context.Context, session domain.UserSession, text string) error

	// LoadSession replaces the chat log wholesale with the stored
	// messages of the given session and marks it active. On failure
	// the log is left untouched.
	LoadSession(ctx context.Context, session domain.UserSession, chatID string) error

	// NewSession clears the log and the active identifier. No network.
	NewSession(ctx context.Context) error

	// Turns returns the transcript of the active conversation in
	// append order.
	Turns(ctx context.Context) ([]domain.MessageTurn, error)

	// History lists saved session summaries.
	History(ctx context.Context, session domain.UserSession) ([]domain.ChatSessionSummary, error)

	// ActiveSession returns the active session identifier, empty for a
	// fresh conversation.
	ActiveSession() string

	// Sending reports whether an exchange in the active session is
	// still in flight. The UI disables submission while true.
	Sending() bool
}
