package domain

import "time"

// Role identifies the author of a message turn.
type Role string

// Message roles.
const (
	// RoleUser is a turn typed by the user.
	RoleUser Role = "user"

	// RoleAssistant is a turn produced by the backend (or a synthetic
	// error turn standing in for one).
	RoleAssistant Role = "assistant"
)

// IsValid returns true if the role is recognised.
func (r Role) IsValid() bool {
	return r == RoleUser || r == RoleAssistant
}

// MessageTurn is one entry in a conversation.
//
// Turns are immutable once appended. An assistant turn is the terminal
// write of its exchange; nothing mutates it afterwards.
type MessageTurn struct {
	// ID is the server-issued identifier when present, otherwise a
	// locally generated one.
	ID string

	// Role is the author of the turn.
	Role Role

	// Content is the message text.
	Content string

	// Citations lists the sources backing an assistant answer, in the
	// order the server returned them. Empty for user and error turns.
	Citations []Citation

	// CreatedAt is when the turn was appended locally.
	CreatedAt time.Time
}

// Citation points at a passage of an uploaded document.
//
// Produced by the server and referenced for display only. The referenced
// document may have been deleted since; lookups are best-effort.
type Citation struct {
	// DocID is the identifier of the cited document.
	DocID string `json:"doc_id"`

	// Page is the 1-based page number within the document.
	Page int `json:"page"`

	// ChunkID identifies the ingested chunk the snippet came from.
	ChunkID string `json:"chunk_id"`

	// Snippet is the quoted passage.
	Snippet string `json:"snippet"`
}

// ChatSessionSummary is a lightweight handle to a saved conversation.
type ChatSessionSummary struct {
	// ID is the session identifier.
	ID string

	// Title is the display title.
	Title string

	// LastMessageAt is when the session last changed.
	LastMessageAt time.Time
}
