package services

import (
	"context"
	"io"
	"sync"

	"github.com/askdocs-labs/askdoc-cli/internal/core/domain"
	"github.com/askdocs-labs/askdoc-cli/internal/core/ports/driven"
	"github.com/askdocs-labs/askdoc-cli/internal/core/ports/driving"
)

// fakeGateway is a scripted driven.Gateway for service tests. Unset
// function fields fail loudly by returning domain.ErrNotFound so a test
// only wires what it exercises.
type fakeGateway struct {
	LoginFn          func(ctx context.Context, email, password string) (domain.UserSession, error)
	RegisterFn       func(ctx context.Context, username, email, password string) (domain.UserSession, error)
	LogoutFn         func(ctx context.Context, session domain.UserSession) error
	UploadFn         func(ctx context.Context, session domain.UserSession, title string, file io.Reader, size int64, onProgress driven.UploadProgressFunc) (*driven.UploadResult, error)
	JobStatusFn      func(ctx context.Context, session domain.UserSession, jobID string) (*driven.JobStatus, error)
	ListDocumentsFn  func(ctx context.Context, session domain.UserSession) ([]domain.DocumentRecord, error)
	DeleteDocumentFn func(ctx context.Context, session domain.UserSession, filename string) error
	QueryFn          func(ctx context.Context, session domain.UserSession, query, scope, chatID string) (*driven.QueryResult, error)
	ChatHistoryFn    func(ctx context.Context, session domain.UserSession) ([]domain.ChatSessionSummary, error)
	ChatMessagesFn   func(ctx context.Context, session domain.UserSession, chatID string) ([]domain.MessageTurn, error)
}

var _ driven.Gateway = (*fakeGateway)(nil)

func (g *fakeGateway) Login(ctx context.Context, email, password string) (domain.UserSession, error) {
	if g.LoginFn == nil {
		return domain.UserSession{}, domain.ErrNotFound
	}
	return g.LoginFn(ctx, email, password)
}

func (g *fakeGateway) Register(ctx context.Context, username, email, password string) (domain.UserSession, error) {
	if g.RegisterFn == nil {
		return domain.UserSession{}, domain.ErrNotFound
	}
	return g.RegisterFn(ctx, username, email, password)
}

func (g *fakeGateway) Logout(ctx context.Context, session domain.UserSession) error {
	if g.LogoutFn == nil {
		return nil
	}
	return g.LogoutFn(ctx, session)
}

func (g *fakeGateway) Upload(
	ctx context.Context, session domain.UserSession, title string,
	file io.Reader, size int64, onProgress driven.UploadProgressFunc,
) (*driven.UploadResult, error) {
	if g.UploadFn == nil {
		return nil, domain.ErrNotFound
	}
	return g.UploadFn(ctx, session, title, file, size, onProgress)
}

func (g *fakeGateway) JobStatus(
	ctx context.Context, session domain.UserSession, jobID string,
) (*driven.JobStatus, error) {
	if g.JobStatusFn == nil {
		return nil, domain.ErrNotFound
	}
	return g.JobStatusFn(ctx, session, jobID)
}

func (g *fakeGateway) ListDocuments(
	ctx context.Context, session domain.UserSession,
) ([]domain.DocumentRecord, error) {
	if g.ListDocumentsFn == nil {
		return nil, domain.ErrNotFound
	}
	return g.ListDocumentsFn(ctx, session)
}

func (g *fakeGateway) DeleteDocument(ctx context.Context, session domain.UserSession, filename string) error {
	if g.DeleteDocumentFn == nil {
		return domain.ErrNotFound
	}
	return g.DeleteDocumentFn(ctx, session, filename)
}

func (g *fakeGateway) Query(
	ctx context.Context, session domain.UserSession, query, scope, chatID string,
) (*driven.QueryResult, error) {
	if g.QueryFn == nil {
		return nil, domain.ErrNotFound
	}
	return g.QueryFn(ctx, session, query, scope, chatID)
}

func (g *fakeGateway) ChatHistory(
	ctx context.Context, session domain.UserSession,
) ([]domain.ChatSessionSummary, error) {
	if g.ChatHistoryFn == nil {
		return nil, domain.ErrNotFound
	}
	return g.ChatHistoryFn(ctx, session)
}

func (g *fakeGateway) ChatMessages(
	ctx context.Context, session domain.UserSession, chatID string,
) ([]domain.MessageTurn, error) {
	if g.ChatMessagesFn == nil {
		return nil, domain.ErrNotFound
	}
	return g.ChatMessagesFn(ctx, session, chatID)
}

// fakeWatcher records watch requests without polling anything.
type fakeWatcher struct {
	mu      sync.Mutex
	watched [][2]string // jobID, documentID pairs
}

var _ driving.StatusWatcher = (*fakeWatcher)(nil)

func (w *fakeWatcher) Watch(
	_ context.Context, _ domain.UserSession, jobID, documentID string,
) driving.CancelFunc {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.watched = append(w.watched, [2]string{jobID, documentID})
	return func() {}
}

func (w *fakeWatcher) Stop() {}

func (w *fakeWatcher) calls() [][2]string {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([][2]string, len(w.watched))
	copy(out, w.watched)
	return out
}
