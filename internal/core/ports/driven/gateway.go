package driven

import (
	"context"
	"io"

	"github.com/askdocs-labs/askdoc-cli/internal/core/domain"
)

// JobState is the server-reported state of an ingestion job.
type JobState string

// Ingestion job states.
const (
	JobProcessing JobState = "processing"
	JobCompleted  JobState = "completed"
	JobFailed     JobState = "failed"
)

// UploadResult is the server's response to a completed upload.
type UploadResult struct {
	// DocID is the durable identifier assigned to the document.
	DocID string

	// JobID identifies the ingestion job to poll. Empty when the
	// server ingested synchronously.
	JobID string
}

// JobStatus is one poll response for an ingestion job.
type JobStatus struct {
	// State is the reported job state.
	State JobState

	// Progress is the reported percentage, or nil when the server
	// supplied none. Absence never regresses the record.
	Progress *int
}

// QueryResult is the server's answer to a chat query.
type QueryResult struct {
	// AnswerID is the server-issued turn identifier, if any.
	AnswerID string

	// Answer is the answer text.
	Answer string

	// Citations back the answer, in server order.
	Citations []domain.Citation
}

// UploadProgressFunc receives upload progress notifications in [0,100].
type UploadProgressFunc func(percent int)

// Gateway is the backend API the client talks to. Every call carries the
// session explicitly; there is no ambient credential.
//
// Transport failures wrap domain.ErrTransport. Non-success responses with
// a structured error body are returned as *api.ServerError by the HTTP
// adapter.
type Gateway interface {
	// Login exchanges credentials for a session.
	Login(ctx context.Context, email, password string) (domain.UserSession, error)

	// Register creates an account and returns the resulting session.
	Register(ctx context.Context, username, email, password string) (domain.UserSession, error)

	// Logout invalidates the session server-side. Best-effort; local
	// teardown proceeds regardless of the result.
	Logout(ctx context.Context, session domain.UserSession) error

	// Upload transfers a file with a display title. onProgress, when
	// non-nil, observes transfer progress.
	Upload(ctx context.Context, session domain.UserSession, title string,
		file io.Reader, size int64, onProgress UploadProgressFunc) (*UploadResult, error)

	// JobStatus queries an ingestion job.
	JobStatus(ctx context.Context, session domain.UserSession, jobID string) (*JobStatus, error)

	// ListDocuments returns the server's view of the document list.
	ListDocuments(ctx context.Context, session domain.UserSession) ([]domain.DocumentRecord, error)

	// DeleteDocument removes a document server-side. The server is the
	// source of truth for existence.
	DeleteDocument(ctx context.Context, session domain.UserSession, filename string) error

	// Query sends a chat question. chatID is empty for a fresh session.
	Query(ctx context.Context, session domain.UserSession, query, scope, chatID string) (*QueryResult, error)

	// ChatHistory lists saved session summaries.
	ChatHistory(ctx context.Context, session domain.UserSession) ([]domain.ChatSessionSummary, error)

	// ChatMessages returns the full message list of a saved session.
	ChatMessages(ctx context.Context, session domain.UserSession, chatID string) ([]domain.MessageTurn, error)
}
