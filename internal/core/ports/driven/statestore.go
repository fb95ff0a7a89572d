package driven

import (
	"context"

	"github.com/askdocs-labs/askdoc-cli/internal/core/domain"
)

// StateStore persists the document list to durable local storage under a
// fixed key, so the registry can be rehydrated on startup.
type StateStore interface {
	// SaveDocuments stores a snapshot of the document list.
	SaveDocuments(ctx context.Context, recs []domain.DocumentRecord) error

	// LoadDocuments retrieves the stored list. Returns an empty slice
	// when nothing has been stored yet.
	LoadDocuments(ctx context.Context) ([]domain.DocumentRecord, error)
}
