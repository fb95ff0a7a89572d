package cli

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askdocs-labs/askdoc-cli/internal/core/domain"
)

func setupDocumentTest(doc *mockDocumentService, upload *mockUploadService) func() {
	oldDocument := documentService
	oldUpload := uploadService
	oldSession := sessionService
	documentService = doc
	uploadService = upload
	sessionService = &mockSessionService{}
	return func() {
		documentService = oldDocument
		uploadService = oldUpload
		sessionService = oldSession
	}
}

func TestDocumentCmd_Use(t *testing.T) {
	assert.Equal(t, "document", documentCmd.Use)
}

func TestDocumentListCmd_Empty(t *testing.T) {
	cleanup := setupDocumentTest(&mockDocumentService{}, &mockUploadService{})
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"document", "list"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "No documents uploaded yet.")
}

func TestDocumentListCmd_ShowsStatusAndProgress(t *testing.T) {
	cleanup := setupDocumentTest(&mockDocumentService{
		ListFunc: func(context.Context) ([]domain.DocumentRecord, error) {
			return []domain.DocumentRecord{
				{ID: "D1", Title: "report.pdf", Status: domain.StatusReady, Progress: 100},
				{ID: "temp-2", Title: "notes.txt", Status: domain.StatusProcessing, Progress: 40},
			}, nil
		},
	}, &mockUploadService{})
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"document", "list"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	output := buf.String()
	assert.Contains(t, output, "report.pdf")
	assert.Contains(t, output, "notes.txt")
	assert.Contains(t, output, "Progress: 40%")
	// Terminal records carry no progress line.
	assert.NotContains(t, output, "Progress: 100%")
	assert.Contains(t, output, "Total: 2 documents")
}

func TestDocumentDeleteCmd_ConfirmsBeforeDeleting(t *testing.T) {
	deleted := false
	cleanup := setupDocumentTest(&mockDocumentService{
		DeleteFunc: func(_ context.Context, _ domain.UserSession, id string) error {
			deleted = true
			assert.Equal(t, "D1", id)
			return nil
		},
	}, &mockUploadService{})
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetIn(strings.NewReader("y\n"))
	rootCmd.SetArgs([]string{"document", "delete", "D1"})
	defer func() {
		rootCmd.SetIn(nil)
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.True(t, deleted)
	assert.Contains(t, buf.String(), "This cannot be undone")
	assert.Contains(t, buf.String(), "Document D1 deleted.")
}

func TestDocumentDeleteCmd_DeclinedLeavesDocument(t *testing.T) {
	cleanup := setupDocumentTest(&mockDocumentService{
		DeleteFunc: func(context.Context, domain.UserSession, string) error {
			t.Fatal("delete must not be called when the prompt is declined")
			return nil
		},
	}, &mockUploadService{})
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetIn(strings.NewReader("n\n"))
	rootCmd.SetArgs([]string{"document", "delete", "D1"})
	defer func() {
		rootCmd.SetIn(nil)
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "Cancelled.")
}

func TestDocumentDeleteCmd_ForceSkipsPrompt(t *testing.T) {
	deleted := false
	cleanup := setupDocumentTest(&mockDocumentService{
		DeleteFunc: func(context.Context, domain.UserSession, string) error {
			deleted = true
			return nil
		},
	}, &mockUploadService{})
	defer cleanup()

	defer func() { deleteForce = false }()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"document", "delete", "D1", "--force"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.True(t, deleted)
	assert.NotContains(t, buf.String(), "[y/N]")
}

func TestDocumentDeleteCmd_ServerRejection(t *testing.T) {
	cleanup := setupDocumentTest(&mockDocumentService{
		DeleteFunc: func(context.Context, domain.UserSession, string) error {
			return fmt.Errorf("delete report.pdf: %w", domain.ErrTransport)
		},
	}, &mockUploadService{})
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(strings.NewReader("yes\n"))
	rootCmd.SetArgs([]string{"document", "delete", "D1"})
	defer func() {
		rootCmd.SetIn(nil)
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "delete failed")
}

func TestDocumentDismissCmd_Executes(t *testing.T) {
	cleanup := setupDocumentTest(&mockDocumentService{}, &mockUploadService{
		DismissFunc: func(_ context.Context, id string) error {
			assert.Equal(t, "temp-3", id)
			return nil
		},
	})
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"document", "dismiss", "temp-3"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "Dismissed temp-3.")
}

func TestDocumentDismissCmd_NotAFailedUpload(t *testing.T) {
	cleanup := setupDocumentTest(&mockDocumentService{}, &mockUploadService{
		DismissFunc: func(context.Context, string) error {
			return fmt.Errorf("%w: only failed uploads can be dismissed", domain.ErrInvalidInput)
		},
	})
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"document", "dismiss", "D1"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "D1 is not a failed upload")
}

func TestDocumentSyncCmd_Executes(t *testing.T) {
	synced := false
	cleanup := setupDocumentTest(&mockDocumentService{
		SyncFunc: func(_ context.Context, session domain.UserSession) error {
			synced = true
			assert.Equal(t, cliTestSession, session)
			return nil
		},
	}, &mockUploadService{})
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"document", "sync"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.True(t, synced)
	assert.Contains(t, buf.String(), "Document list refreshed.")
}

func TestDocumentSyncCmd_NotLoggedIn(t *testing.T) {
	cleanup := setupDocumentTest(&mockDocumentService{}, &mockUploadService{})
	defer cleanup()
	sessionService = &mockSessionService{
		CurrentFunc: func() (domain.UserSession, bool) {
			return domain.UserSession{}, false
		},
	}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"document", "sync"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "askdoc login")
}
