package memory

import (
	"context"
	"sync"

	"github.com/askdocs-labs/askdoc-cli/internal/core/domain"
	"github.com/askdocs-labs/askdoc-cli/internal/core/ports/driven"
)

// Ensure DocumentRegistry implements the interface.
var _ driven.DocumentRegistry = (*DocumentRegistry)(nil)

// DocumentRegistry is an in-memory, insertion-ordered implementation of
// driven.DocumentRegistry. Each method is one atomic step under the lock,
// so interleaved flows (uploads, polls, deletions) never observe partial
// state.
type DocumentRegistry struct {
	mu      sync.RWMutex
	records []domain.DocumentRecord
	index   map[string]int
}

// NewDocumentRegistry creates an empty registry.
func NewDocumentRegistry() *DocumentRegistry {
	return &DocumentRegistry{
		index: make(map[string]int),
	}
}

// Append inserts a new record at the end of the collection.
func (r *DocumentRegistry) Append(_ context.Context, rec domain.DocumentRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.index[rec.ID]; ok {
		return domain.ErrInvalidInput
	}
	r.index[rec.ID] = len(r.records)
	r.records = append(r.records, rec)
	return nil
}

// Get retrieves a record by identifier.
func (r *DocumentRegistry) Get(_ context.Context, id string) (*domain.DocumentRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i, ok := r.index[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	rec := r.records[i]
	return &rec, nil
}

// UpdateProgress sets the progress of a record. Last value wins.
// Mutations targeting a removed record return domain.ErrStateConflict.
func (r *DocumentRegistry) UpdateProgress(_ context.Context, id string, progress int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i, ok := r.index[id]
	if !ok {
		return domain.ErrStateConflict
	}
	r.records[i].Progress = domain.ClampProgress(progress)
	return nil
}

// UpdateStatus transitions a record's status and progress together.
func (r *DocumentRegistry) UpdateStatus(
	_ context.Context, id string, status domain.DocumentStatus, progress int,
) error {
	if !status.IsValid() {
		return domain.ErrInvalidInput
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	i, ok := r.index[id]
	if !ok {
		return domain.ErrStateConflict
	}
	r.records[i].Status = status
	r.records[i].Progress = domain.ClampProgress(progress)
	return nil
}

// Replace atomically swaps the record under oldID for rec, keeping its
// position. The old and new identifiers are never visible together.
func (r *DocumentRegistry) Replace(_ context.Context, oldID string, rec domain.DocumentRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i, ok := r.index[oldID]
	if !ok {
		return domain.ErrStateConflict
	}
	if _, exists := r.index[rec.ID]; exists && rec.ID != oldID {
		return domain.ErrInvalidInput
	}
	delete(r.index, oldID)
	r.index[rec.ID] = i
	r.records[i] = rec
	return nil
}

// Remove deletes a record, preserving the order of the rest.
func (r *DocumentRegistry) Remove(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i, ok := r.index[id]
	if !ok {
		return domain.ErrStateConflict
	}
	delete(r.index, id)
	r.records = append(r.records[:i], r.records[i+1:]...)
	for j := i; j < len(r.records); j++ {
		r.index[r.records[j].ID] = j
	}
	return nil
}

// List returns a snapshot of all records in insertion order.
func (r *DocumentRegistry) List(_ context.Context) ([]domain.DocumentRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.DocumentRecord, len(r.records))
	copy(out, r.records)
	return out, nil
}

// ReplaceAll swaps the entire collection in one step.
func (r *DocumentRegistry) ReplaceAll(_ context.Context, recs []domain.DocumentRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = make([]domain.DocumentRecord, len(recs))
	copy(r.records, recs)
	r.index = make(map[string]int, len(recs))
	for i, rec := range r.records {
		r.index[rec.ID] = i
	}
	return nil
}
