package driving

import (
	"context"

	"github.com/askdocs-labs/askdoc-cli/internal/core/domain"
)

// CancelFunc stops a poll watch. Safe to call more than once.
type CancelFunc func()

// StatusWatcher polls ingestion job status until a terminal state or
// cancellation.
//
// At most one watch is live per job identifier: starting a new watch for
// a job cancels the prior one first.
type StatusWatcher interface {
	// Watch starts polling jobID and applies updates to the document
	// registry record under documentID. The returned CancelFunc is the
	// only way to stop the watch short of a terminal state.
	Watch(ctx context.Context, session domain.UserSession, jobID, documentID string) CancelFunc

	// Stop cancels all live watches and waits for them to wind down.
	// Called on view teardown.
	Stop()
}
