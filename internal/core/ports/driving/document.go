package driving

import (
	"context"

	"github.com/askdocs-labs/askdoc-cli/internal/core/domain"
)

// DocumentService reads and deletes documents in the registry.
type DocumentService interface {
	// List returns the registry contents in insertion order.
	List(ctx context.Context) ([]domain.DocumentRecord, error)

	// Delete removes a document. The server confirms first; on any
	// failure the registry is left untouched. Callers gate this behind
	// an explicit user confirmation.
	Delete(ctx context.Context, session domain.UserSession, id string) error

	// Rehydrate loads the persisted document list into the registry.
	// Called once at startup.
	Rehydrate(ctx context.Context) error

	// Sync reconciles the registry with the server's document list.
	// Server state wins; local records still pending or in Error are
	// kept so they stay visible.
	Sync(ctx context.Context, session domain.UserSession) error
}
