package domain

import (
	"strings"
	"time"
)

// TempIDPrefix marks locally generated document identifiers that have not
// yet been replaced by a server-assigned one.
const TempIDPrefix = "temp-"

// DocumentStatus is the lifecycle state of an uploaded document.
type DocumentStatus string

// Document lifecycle states.
const (
	// StatusUploading means the file is still being transferred.
	StatusUploading DocumentStatus = "uploading"

	// StatusProcessing means the server accepted the file and is ingesting it.
	StatusProcessing DocumentStatus = "processing"

	// StatusReady means the document is ingested and queryable.
	StatusReady DocumentStatus = "ready"

	// StatusError means upload or ingestion failed.
	StatusError DocumentStatus = "error"
)

// IsValid returns true if the status is recognised.
func (s DocumentStatus) IsValid() bool {
	switch s {
	case StatusUploading, StatusProcessing, StatusReady, StatusError:
		return true
	default:
		return false
	}
}

// IsTerminal returns true if no further automatic transition occurs.
func (s DocumentStatus) IsTerminal() bool {
	return s == StatusReady || s == StatusError
}

// String returns the string representation.
func (s DocumentStatus) String() string {
	return string(s)
}

// Description returns a human-readable label for display.
func (s DocumentStatus) Description() string {
	switch s {
	case StatusUploading:
		return "Uploading..."
	case StatusProcessing:
		return "Processing..."
	case StatusReady:
		return "Ready"
	case StatusError:
		return "Error"
	default:
		return "Unknown"
	}
}

// DocumentRecord tracks one uploaded document through its lifecycle.
//
// ID starts as a locally generated temporary token and is swapped for the
// server-assigned identifier once the upload completes. The swap is atomic
// at the registry level: the two identifiers never coexist.
type DocumentRecord struct {
	// ID is the temporary token or the server-assigned identifier.
	ID string

	// Title is the display title, normally the uploaded filename.
	Title string

	// Status is the current lifecycle state. Exactly one holds at a time.
	Status DocumentStatus

	// Progress is a percentage in [0,100]. Meaningful only while
	// Uploading or Processing; 100 when Ready, 0 when Error.
	Progress int

	// CreatedAt is when the file was selected for upload.
	CreatedAt time.Time
}

// Pending returns true while the record still carries a temporary identifier.
func (d DocumentRecord) Pending() bool {
	return strings.HasPrefix(d.ID, TempIDPrefix)
}

// ClampProgress bounds a reported progress value to [0,100].
func ClampProgress(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
