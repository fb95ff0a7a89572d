package memory

import (
	"context"
	"sync"

	"github.com/askdocs-labs/askdoc-cli/internal/core/domain"
	"github.com/askdocs-labs/askdoc-cli/internal/core/ports/driven"
)

// Ensure ChatLog implements the interface.
var _ driven.ChatLog = (*ChatLog)(nil)

// ChatLog is an in-memory implementation of driven.ChatLog.
type ChatLog struct {
	mu    sync.RWMutex
	turns []domain.MessageTurn
}

// NewChatLog creates an empty chat log.
func NewChatLog() *ChatLog {
	return &ChatLog{}
}

// Append adds a turn at the end of the log.
func (l *ChatLog) Append(_ context.Context, turn domain.MessageTurn) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.turns = append(l.turns, turn)
	return nil
}

// Turns returns a snapshot of the log in append order.
func (l *ChatLog) Turns(_ context.Context) ([]domain.MessageTurn, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]domain.MessageTurn, len(l.turns))
	copy(out, l.turns)
	return out, nil
}

// ReplaceAll swaps the entire log in one step.
func (l *ChatLog) ReplaceAll(_ context.Context, turns []domain.MessageTurn) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.turns = make([]domain.MessageTurn, len(turns))
	copy(l.turns, turns)
	return nil
}

// Clear empties the log.
func (l *ChatLog) Clear(_ context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.turns = nil
	return nil
}
