package tui

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askdocs-labs/askdoc-cli/internal/core/domain"
)

// MockSessionService implements driving.SessionService for testing.
type MockSessionService struct {
	CurrentFunc func() (domain.UserSession, bool)
}

func (m *MockSessionService) Login(context.Context, string, string) (domain.UserSession, error) {
	return domain.UserSession{}, nil
}

func (m *MockSessionService) Register(context.Context, string, string, string) (domain.UserSession, error) {
	return domain.UserSession{}, nil
}

func (m *MockSessionService) Logout(context.Context) error {
	return nil
}

func (m *MockSessionService) Current() (domain.UserSession, bool) {
	if m.CurrentFunc != nil {
		return m.CurrentFunc()
	}
	return domain.UserSession{Email: "dev@example.com", Token: "tok-1"}, true
}

// MockUploadService implements driving.UploadService for testing.
type MockUploadService struct {
	SubmitFunc  func(ctx context.Context, session domain.UserSession, path string) error
	DismissFunc func(ctx context.Context, id string) error
}

func (m *MockUploadService) Submit(ctx context.Context, session domain.UserSession, path string) error {
	if m.SubmitFunc != nil {
		return m.SubmitFunc(ctx, session, path)
	}
	return nil
}

func (m *MockUploadService) Dismiss(ctx context.Context, id string) error {
	if m.DismissFunc != nil {
		return m.DismissFunc(ctx, id)
	}
	return nil
}

// MockDocumentService implements driving.DocumentService for testing.
type MockDocumentService struct {
	ListFunc   func(ctx context.Context) ([]domain.DocumentRecord, error)
	DeleteFunc func(ctx context.Context, session domain.UserSession, id string) error
}

func (m *MockDocumentService) List(ctx context.Context) ([]domain.DocumentRecord, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

func (m *MockDocumentService) Delete(ctx context.Context, session domain.UserSession, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, session, id)
	}
	return nil
}

func (m *MockDocumentService) Rehydrate(context.Context) error {
	return nil
}

func (m *MockDocumentService) Sync(context.Context, domain.UserSession) error {
	return nil
}

// MockChatService implements driving.ChatService for testing.
type MockChatService struct {
	SendFunc        func(ctx context.Context, session domain.UserSession, text string) error
	LoadSessionFunc func(ctx context.Context, session domain.UserSession, chatID string) error
	NewSessionFunc  func(ctx context.Context) error
	TurnsFunc       func(ctx context.Context) ([]domain.MessageTurn, error)
	SendingFunc     func() bool
	ActiveFunc      func() string
}

func (m *MockChatService) Send(ctx context.Context, session domain.UserSession, text string) error {
	if m.SendFunc != nil {
		return m.SendFunc(ctx, session, text)
	}
	return nil
}

func (m *MockChatService) LoadSession(ctx context.Context, session domain.UserSession, chatID string) error {
	if m.LoadSessionFunc != nil {
		return m.LoadSessionFunc(ctx, session, chatID)
	}
	return nil
}

func (m *MockChatService) NewSession(ctx context.Context) error {
	if m.NewSessionFunc != nil {
		return m.NewSessionFunc(ctx)
	}
	return nil
}

func (m *MockChatService) Turns(ctx context.Context) ([]domain.MessageTurn, error) {
	if m.TurnsFunc != nil {
		return m.TurnsFunc(ctx)
	}
	return nil, nil
}

func (m *MockChatService) History(context.Context, domain.UserSession) ([]domain.ChatSessionSummary, error) {
	return nil, nil
}

func (m *MockChatService) ActiveSession() string {
	if m.ActiveFunc != nil {
		return m.ActiveFunc()
	}
	return ""
}

func (m *MockChatService) Sending() bool {
	if m.SendingFunc != nil {
		return m.SendingFunc()
	}
	return false
}

func validPorts() *Ports {
	return &Ports{
		Session:  &MockSessionService{},
		Upload:   &MockUploadService{},
		Document: &MockDocumentService{},
		Chat:     &MockChatService{},
	}
}

func TestPorts_Validate_Success(t *testing.T) {
	ports := validPorts()

	err := ports.Validate()

	require.NoError(t, err)
}

func TestPorts_Validate_MissingSession(t *testing.T) {
	ports := validPorts()
	ports.Session = nil

	err := ports.Validate()

	assert.ErrorIs(t, err, ErrMissingSessionService)
}

func TestPorts_Validate_MissingChat(t *testing.T) {
	ports := validPorts()
	ports.Chat = nil

	err := ports.Validate()

	assert.ErrorIs(t, err, ErrMissingChatService)
}

func TestPorts_Validate_MissingDocument(t *testing.T) {
	ports := validPorts()
	ports.Document = nil

	err := ports.Validate()

	assert.ErrorIs(t, err, ErrMissingDocumentService)
}

func TestPorts_Validate_MissingUpload(t *testing.T) {
	ports := validPorts()
	ports.Upload = nil

	err := ports.Validate()

	assert.ErrorIs(t, err, ErrMissingUploadService)
}
