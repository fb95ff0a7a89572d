// Package documents implements the document list view.
package documents

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/askdocs-labs/askdoc-cli/internal/adapters/driving/tui/keymap"
	"github.com/askdocs-labs/askdoc-cli/internal/adapters/driving/tui/messages"
	"github.com/askdocs-labs/askdoc-cli/internal/adapters/driving/tui/styles"
	"github.com/askdocs-labs/askdoc-cli/internal/core/domain"
	"github.com/askdocs-labs/askdoc-cli/internal/core/ports/driving"
)

// View renders the document registry with status and progress. Deletion
// is gated behind an inline y/N confirmation; nothing reaches the server
// until the user confirms.
type View struct {
	styles *styles.Styles
	keymap *keymap.KeyMap

	document driving.DocumentService
	upload   driving.UploadService
	session  driving.SessionService

	records  []domain.DocumentRecord
	selected int

	// confirming holds the id of the record awaiting delete
	// confirmation, empty otherwise.
	confirming string

	err    error
	width  int
	height int
}

// NewView creates the documents view.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	document driving.DocumentService,
	upload driving.UploadService,
	session driving.SessionService,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	return &View{
		styles:   s,
		keymap:   km,
		document: document,
		upload:   upload,
		session:  session,
	}
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the documents view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return v.handleKey(msg)

	case messages.DocumentsUpdated:
		if msg.Err == nil {
			v.records = msg.Records
			v.clampSelection()
		}
		return v, nil

	case messages.DocumentDeleted:
		v.err = msg.Err
		return v, nil

	case messages.DocumentDismissed:
		v.err = msg.Err
		return v, nil

	case messages.ErrorOccurred:
		v.err = msg.Err
		return v, nil
	}
	return v, nil
}

func (v *View) handleKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	keyStr := msg.String()

	// While confirming, only y confirms; anything else cancels.
	if v.confirming != "" {
		id := v.confirming
		v.confirming = ""
		if keyStr == "y" || keyStr == "Y" {
			return v, v.deleteCmd(id)
		}
		return v, nil
	}

	switch {
	case keymap.Matches(keyStr, v.keymap.Up):
		if v.selected > 0 {
			v.selected--
		}
	case keymap.Matches(keyStr, v.keymap.Down):
		if v.selected < len(v.records)-1 {
			v.selected++
		}
	case keymap.Matches(keyStr, v.keymap.Delete):
		if rec, ok := v.current(); ok {
			v.confirming = rec.ID
		}
	case keymap.Matches(keyStr, v.keymap.Dismiss):
		if rec, ok := v.current(); ok && rec.Status == domain.StatusError {
			return v, v.dismissCmd(rec.ID)
		}
	}
	return v, nil
}

func (v *View) current() (domain.DocumentRecord, bool) {
	if v.selected < 0 || v.selected >= len(v.records) {
		return domain.DocumentRecord{}, false
	}
	return v.records[v.selected], true
}

func (v *View) clampSelection() {
	if v.selected >= len(v.records) {
		v.selected = len(v.records) - 1
	}
	if v.selected < 0 {
		v.selected = 0
	}
}

func (v *View) deleteCmd(id string) tea.Cmd {
	return func() tea.Msg {
		session, ok := v.session.Current()
		if !ok {
			return messages.DocumentDeleted{ID: id, Err: domain.ErrNotLoggedIn}
		}
		err := v.document.Delete(context.Background(), session, id)
		return messages.DocumentDeleted{ID: id, Err: err}
	}
}

func (v *View) dismissCmd(id string) tea.Cmd {
	return func() tea.Msg {
		err := v.upload.Dismiss(context.Background(), id)
		return messages.DocumentDismissed{ID: id, Err: err}
	}
}

// View renders the document list.
func (v *View) View() string {
	var b strings.Builder
	b.WriteString(v.styles.Title.Render("Documents"))
	b.WriteString("\n\n")

	if len(v.records) == 0 {
		b.WriteString(v.styles.Muted.Render("No documents. Upload one with /upload in the chat view."))
		b.WriteString("\n")
		return b.String()
	}

	for i, rec := range v.records {
		line := v.renderRecord(rec)
		if i == v.selected {
			line = v.styles.Selected.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if v.confirming != "" {
		b.WriteString("\n")
		b.WriteString(v.styles.Warning.Render(
			fmt.Sprintf("Delete %s? This cannot be undone. [y/N]", v.confirming)))
		b.WriteString("\n")
	}
	if v.err != nil {
		b.WriteString("\n")
		b.WriteString(v.styles.Error.Render(v.err.Error()))
		b.WriteString("\n")
	}
	return b.String()
}

func (v *View) renderRecord(rec domain.DocumentRecord) string {
	status := v.styles.StatusColour(rec.Status.String()).Render(rec.Status.String())
	switch rec.Status {
	case domain.StatusUploading, domain.StatusProcessing:
		return fmt.Sprintf("%-30s %s %3d%%", rec.Title, status, rec.Progress)
	default:
		return fmt.Sprintf("%-30s %s", rec.Title, status)
	}
}

// SetDimensions sets the terminal dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
}

// Records returns the current snapshot (for testing).
func (v *View) Records() []domain.DocumentRecord {
	return v.records
}

// Selected returns the selected index (for testing).
func (v *View) Selected() int {
	return v.selected
}

// Confirming returns the id awaiting confirmation (for testing).
func (v *View) Confirming() string {
	return v.confirming
}

// Err returns the last error (for testing).
func (v *View) Err() error {
	return v.err
}
