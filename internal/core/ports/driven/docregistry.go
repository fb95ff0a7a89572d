package driven

import (
	"context"

	"github.com/askdocs-labs/askdoc-cli/internal/core/domain"
)

// DocumentRegistry is the ordered, in-memory collection of document
// records that the render layer observes.
//
// Get on a missing identifier returns domain.ErrNotFound. Mutating
// methods that target a missing identifier return
// domain.ErrStateConflict; callers acting on stale callbacks treat that
// as a signal to drop the update, never to recreate the record.
type DocumentRegistry interface {
	// Append inserts a new record at the end of the collection in a
	// single atomic step.
	Append(ctx context.Context, rec domain.DocumentRecord) error

	// Get retrieves a record by identifier.
	Get(ctx context.Context, id string) (*domain.DocumentRecord, error)

	// UpdateProgress sets the progress of a record. Last value wins;
	// duplicate notifications are idempotent.
	UpdateProgress(ctx context.Context, id string, progress int) error

	// UpdateStatus transitions a record's status and progress together.
	UpdateStatus(ctx context.Context, id string, status domain.DocumentStatus, progress int) error

	// Replace atomically removes the record under oldID and inserts rec
	// in its position. The two identifiers never coexist.
	Replace(ctx context.Context, oldID string, rec domain.DocumentRecord) error

	// Remove deletes a record.
	Remove(ctx context.Context, id string) error

	// List returns a snapshot of all records in insertion order.
	List(ctx context.Context) ([]domain.DocumentRecord, error)

	// ReplaceAll swaps the entire collection in one step.
	ReplaceAll(ctx context.Context, recs []domain.DocumentRecord) error
}
