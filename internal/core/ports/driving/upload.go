package driving

import (
	"context"

	"github.com/askdocs-labs/askdoc-cli/internal/core/domain"
)

// UploadService drives one document through
// uploading -> processing -> ready|error.
//
// All state is observed through the document registry; Submit's return
// value only surfaces the failure to the caller's UI.
type UploadService interface {
	// Submit uploads the file at path. It appends an optimistic record
	// under a temporary identifier, streams progress into it, and swaps
	// in the server-assigned identifier on completion. A failed upload
	// leaves an Error record behind and is never retried automatically.
	Submit(ctx context.Context, session domain.UserSession, path string) error

	// Dismiss removes a failed record from the registry. Only records
	// in the Error state can be dismissed locally.
	Dismiss(ctx context.Context, id string) error
}
