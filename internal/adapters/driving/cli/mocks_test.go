package cli

import (
	"context"

	"github.com/askdocs-labs/askdoc-cli/internal/core/domain"
	"github.com/askdocs-labs/askdoc-cli/internal/core/ports/driving"
)

// cliTestSession is the logged-in identity used across command tests.
var cliTestSession = domain.UserSession{Email: "dev@example.com", Token: "tok-1"}

// mockSessionService implements driving.SessionService for testing.
type mockSessionService struct {
	LoginFunc    func(ctx context.Context, email, password string) (domain.UserSession, error)
	RegisterFunc func(ctx context.Context, username, email, password string) (domain.UserSession, error)
	LogoutFunc   func(ctx context.Context) error
	CurrentFunc  func() (domain.UserSession, bool)
}

func (m *mockSessionService) Login(ctx context.Context, email, password string) (domain.UserSession, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, email, password)
	}
	return cliTestSession, nil
}

func (m *mockSessionService) Register(ctx context.Context, username, email, password string) (domain.UserSession, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, username, email, password)
	}
	return cliTestSession, nil
}

func (m *mockSessionService) Logout(ctx context.Context) error {
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx)
	}
	return nil
}

func (m *mockSessionService) Current() (domain.UserSession, bool) {
	if m.CurrentFunc != nil {
		return m.CurrentFunc()
	}
	return cliTestSession, true
}

// mockUploadService implements driving.UploadService for testing.
type mockUploadService struct {
	SubmitFunc  func(ctx context.Context, session domain.UserSession, path string) error
	DismissFunc func(ctx context.Context, id string) error
}

func (m *mockUploadService) Submit(ctx context.Context, session domain.UserSession, path string) error {
	if m.SubmitFunc != nil {
		return m.SubmitFunc(ctx, session, path)
	}
	return nil
}

func (m *mockUploadService) Dismiss(ctx context.Context, id string) error {
	if m.DismissFunc != nil {
		return m.DismissFunc(ctx, id)
	}
	return nil
}

// mockDocumentService implements driving.DocumentService for testing.
type mockDocumentService struct {
	ListFunc      func(ctx context.Context) ([]domain.DocumentRecord, error)
	DeleteFunc    func(ctx context.Context, session domain.UserSession, id string) error
	RehydrateFunc func(ctx context.Context) error
	SyncFunc      func(ctx context.Context, session domain.UserSession) error
}

func (m *mockDocumentService) List(ctx context.Context) ([]domain.DocumentRecord, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

func (m *mockDocumentService) Delete(ctx context.Context, session domain.UserSession, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, session, id)
	}
	return nil
}

func (m *mockDocumentService) Rehydrate(ctx context.Context) error {
	if m.RehydrateFunc != nil {
		return m.RehydrateFunc(ctx)
	}
	return nil
}

func (m *mockDocumentService) Sync(ctx context.Context, session domain.UserSession) error {
	if m.SyncFunc != nil {
		return m.SyncFunc(ctx, session)
	}
	return nil
}

// mockChatService implements driving.ChatService for testing.
type mockChatService struct {
	SendFunc          func(ctx context.Context, session domain.UserSession, text string) error
	LoadSessionFunc   func(ctx context.Context, session domain.UserSession, chatID string) error
	NewSessionFunc    func(ctx context.Context) error
	TurnsFunc         func(ctx context.Context) ([]domain.MessageTurn, error)
	HistoryFunc       func(ctx context.Context, session domain.UserSession) ([]domain.ChatSessionSummary, error)
	ActiveSessionFunc func() string
	SendingFunc       func() bool
}

func (m *mockChatService) Send(ctx context.Context, session domain.UserSession, text string) error {
	if m.SendFunc != nil {
		return m.SendFunc(ctx, session, text)
	}
	return nil
}

func (m *mockChatService) LoadSession(ctx context.Context, session domain.UserSession, chatID string) error {
	if m.LoadSessionFunc != nil {
		return m.LoadSessionFunc(ctx, session, chatID)
	}
	return nil
}

func (m *mockChatService) NewSession(ctx context.Context) error {
	if m.NewSessionFunc != nil {
		return m.NewSessionFunc(ctx)
	}
	return nil
}

func (m *mockChatService) Turns(ctx context.Context) ([]domain.MessageTurn, error) {
	if m.TurnsFunc != nil {
		return m.TurnsFunc(ctx)
	}
	return nil, nil
}

func (m *mockChatService) History(ctx context.Context, session domain.UserSession) ([]domain.ChatSessionSummary, error) {
	if m.HistoryFunc != nil {
		return m.HistoryFunc(ctx, session)
	}
	return nil, nil
}

func (m *mockChatService) ActiveSession() string {
	if m.ActiveSessionFunc != nil {
		return m.ActiveSessionFunc()
	}
	return ""
}

func (m *mockChatService) Sending() bool {
	if m.SendingFunc != nil {
		return m.SendingFunc()
	}
	return false
}

// mockStatusWatcher implements driving.StatusWatcher for testing.
type mockStatusWatcher struct {
	WatchFunc func(ctx context.Context, session domain.UserSession, jobID, documentID string) driving.CancelFunc
}

func (m *mockStatusWatcher) Watch(ctx context.Context, session domain.UserSession, jobID, documentID string) driving.CancelFunc {
	if m.WatchFunc != nil {
		return m.WatchFunc(ctx, session, jobID, documentID)
	}
	return func() {}
}

func (m *mockStatusWatcher) Stop() {}

var (
	_ driving.SessionService  = (*mockSessionService)(nil)
	_ driving.UploadService   = (*mockUploadService)(nil)
	_ driving.DocumentService = (*mockDocumentService)(nil)
	_ driving.ChatService     = (*mockChatService)(nil)
	_ driving.StatusWatcher   = (*mockStatusWatcher)(nil)
)
