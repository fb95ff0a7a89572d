// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/askdocs-labs/askdoc-cli/internal/core/domain"
)

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewChat is the conversation view.
	ViewChat ViewType = iota
	// ViewDocuments is the document list view.
	ViewDocuments
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewChat:
		return "chat"
	case ViewDocuments:
		return "documents"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// Tick drives the periodic registry refresh.
type Tick struct{}

// TranscriptUpdated carries a fresh snapshot of the conversation log.
type TranscriptUpdated struct {
	Turns []domain.MessageTurn
	Err   error
}

// DocumentsUpdated carries a fresh snapshot of the document registry.
type DocumentsUpdated struct {
	Records []domain.DocumentRecord
	Err     error
}

// ExchangeSettled signals that a chat send finished, successfully or not.
// The resulting turns arrive via the next TranscriptUpdated.
type ExchangeSettled struct {
	Err error
}

// UploadSettled signals that an upload transfer finished. Ingestion may
// still be running; the registry shows the live status.
type UploadSettled struct {
	Path string
	Err  error
}

// DocumentDeleted signals a server-confirmed deletion completed.
type DocumentDeleted struct {
	ID  string
	Err error
}

// DocumentDismissed signals a failed entry was removed locally.
type DocumentDismissed struct {
	ID  string
	Err error
}

// SessionLoaded signals a saved conversation replaced the active one.
type SessionLoaded struct {
	ChatID string
	Err    error
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
