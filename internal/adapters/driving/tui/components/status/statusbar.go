// Package status provides the status bar component for the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/askdocs-labs/askdoc-cli/internal/adapters/driving/tui/keymap"
	"github.com/askdocs-labs/askdoc-cli/internal/adapters/driving/tui/styles"
)

// State represents the current application state for display.
type State string

const (
	StateReady     State = "ready"
	StateThinking  State = "thinking"
	StateUploading State = "uploading"
	StateError     State = "error"
)

// Bar displays the session, activity state, and keybinding hints.
type Bar struct {
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	state    State
	message  string
	email    string
	pending  int
	width    int
	bindings func() []key.Binding
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	b := &Bar{
		styles: s,
		keymap: km,
		state:  StateReady,
		width:  80,
	}
	b.bindings = km.ChatHelp
	return b
}

// View renders the status bar.
func (b *Bar) View() string {
	left := b.renderLeft()
	right := b.renderRight()

	leftLen := lipgloss.Width(left)
	rightLen := lipgloss.Width(right)
	padding := b.width - leftLen - rightLen
	if padding < 1 {
		padding = 1
	}

	return b.styles.StatusBar.Width(b.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

// renderLeft renders the session and activity segment.
func (b *Bar) renderLeft() string {
	var parts []string
	if b.email != "" {
		parts = append(parts, b.styles.Normal.Render(b.email))
	} else {
		parts = append(parts, b.styles.Warning.Render("not logged in"))
	}

	switch b.state {
	case StateThinking:
		parts = append(parts, b.styles.Muted.Render("thinking..."))
	case StateUploading:
		parts = append(parts, b.styles.Warning.Render("uploading..."))
	case StateError:
		if b.message != "" {
			parts = append(parts, b.styles.Error.Render("error: "+b.message))
		} else {
			parts = append(parts, b.styles.Error.Render("error"))
		}
	case StateReady:
		if b.pending > 0 {
			parts = append(parts, b.styles.Warning.Render(
				fmt.Sprintf("%d processing", b.pending)))
		}
	}
	return strings.Join(parts, b.styles.Muted.Render(" | "))
}

// renderRight renders keybinding hints.
func (b *Bar) renderRight() string {
	hints := make([]string, 0, 4)
	for _, binding := range b.bindings() {
		h := binding.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return b.styles.Muted.Render(strings.Join(hints, " | "))
}

// SetState sets the current state.
func (b *Bar) SetState(state State) {
	b.state = state
}

// State returns the current state.
func (b *Bar) State() State {
	return b.state
}

// SetMessage sets a custom message shown in the error state.
func (b *Bar) SetMessage(message string) {
	b.message = message
}

// SetEmail sets the logged-in identity shown on the left.
func (b *Bar) SetEmail(email string) {
	b.email = email
}

// SetPending sets the number of documents still ingesting.
func (b *Bar) SetPending(n int) {
	b.pending = n
}

// SetHints switches the keybinding hints for the active view.
func (b *Bar) SetHints(bindings func() []key.Binding) {
	b.bindings = bindings
}

// SetWidth sets the status bar width.
func (b *Bar) SetWidth(width int) {
	b.width = width
}

// Clear resets the status bar to the ready state.
func (b *Bar) Clear() {
	b.state = StateReady
	b.message = ""
}
