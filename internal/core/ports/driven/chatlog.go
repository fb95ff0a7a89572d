package driven

import (
	"context"

	"github.com/askdocs-labs/askdoc-cli/internal/core/domain"
)

// ChatLog is the ordered list of message turns for the active
// conversation. Turns are appended, never reordered or removed
// individually; switching sessions replaces the list wholesale.
type ChatLog interface {
	// Append adds a turn at the end of the log.
	Append(ctx context.Context, turn domain.MessageTurn) error

	// Turns returns a snapshot of the log in append order.
	Turns(ctx context.Context) ([]domain.MessageTurn, error)

	// ReplaceAll swaps the entire log in one step.
	ReplaceAll(ctx context.Context, turns []domain.MessageTurn) error

	// Clear empties the log.
	Clear(ctx context.Context) error
}
