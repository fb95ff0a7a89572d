// Package tui provides the interactive terminal interface for askdoc.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/askdocs-labs/askdoc-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Session resolves the logged-in user.
	Session driving.SessionService

	// Upload submits documents and dismisses failed entries.
	Upload driving.UploadService

	// Document reads and deletes documents.
	Document driving.DocumentService

	// Chat drives the conversation.
	Chat driving.ChatService
}

// Validate ensures all required ports are set.
// Returns an error if any port is nil.
func (p *Ports) Validate() error {
	if p.Session == nil {
		return ErrMissingSessionService
	}
	if p.Chat == nil {
		return ErrMissingChatService
	}
	if p.Document == nil {
		return ErrMissingDocumentService
	}
	if p.Upload == nil {
		return ErrMissingUploadService
	}
	return nil
}
