package memory

import (
	"context"
	"sync"

	"github.com/askdocs-labs/askdoc-cli/internal/core/domain"
	"github.com/askdocs-labs/askdoc-cli/internal/core/ports/driven"
)

// Ensure StateStore implements the interface.
var _ driven.StateStore = (*StateStore)(nil)

// StateStore is an in-memory implementation of driven.StateStore.
// Used in tests; the real client persists state via the sqlite store.
type StateStore struct {
	mu   sync.RWMutex
	recs []domain.DocumentRecord
}

// NewStateStore creates an empty state store.
func NewStateStore() *StateStore {
	return &StateStore{}
}

// SaveDocuments stores a snapshot of the document list.
func (s *StateStore) SaveDocuments(_ context.Context, recs []domain.DocumentRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recs = make([]domain.DocumentRecord, len(recs))
	copy(s.recs, recs)
	return nil
}

// LoadDocuments retrieves the stored list.
func (s *StateStore) LoadDocuments(_ context.Context) ([]domain.DocumentRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.DocumentRecord, len(s.recs))
	copy(out, s.recs)
	return out, nil
}
