package cli

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askdocs-labs/askdoc-cli/internal/core/domain"
)

func TestSessionCmd_Use(t *testing.T) {
	assert.Equal(t, "session", sessionCmd.Use)
}

func TestSessionListCmd_Empty(t *testing.T) {
	cleanup := setupChatTest(&mockChatService{})
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"session", "list"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "No saved conversations.")
}

func TestSessionListCmd_MarksActive(t *testing.T) {
	cleanup := setupChatTest(&mockChatService{
		HistoryFunc: func(context.Context, domain.UserSession) ([]domain.ChatSessionSummary, error) {
			return []domain.ChatSessionSummary{
				{ID: "chat-1", Title: "Quarterly numbers"},
				{ID: "chat-7", Title: "Contract review", LastMessageAt: time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)},
			}, nil
		},
		ActiveSessionFunc: func() string { return "chat-7" },
	})
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"session", "list"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	output := buf.String()
	assert.Contains(t, output, "  chat-1  Quarterly numbers")
	assert.Contains(t, output, "* chat-7  Contract review")
}

func TestSessionLoadCmd_Executes(t *testing.T) {
	var gotChatID string
	cleanup := setupChatTest(&mockChatService{
		LoadSessionFunc: func(_ context.Context, _ domain.UserSession, chatID string) error {
			gotChatID = chatID
			return nil
		},
	})
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"session", "load", "chat-7"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Equal(t, "chat-7", gotChatID)
	assert.Contains(t, buf.String(), "Loaded conversation chat-7.")
}

func TestSessionLoadCmd_Failure(t *testing.T) {
	cleanup := setupChatTest(&mockChatService{
		LoadSessionFunc: func(context.Context, domain.UserSession, string) error {
			return errors.New("boom")
		},
	})
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"session", "load", "chat-9"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load conversation")
}

func TestSessionNewCmd_Executes(t *testing.T) {
	called := false
	cleanup := setupChatTest(&mockChatService{
		NewSessionFunc: func(context.Context) error {
			called = true
			return nil
		},
	})
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"session", "new"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.True(t, called)
	assert.Contains(t, buf.String(), "Started a fresh conversation.")
}
