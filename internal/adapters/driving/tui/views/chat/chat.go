// Package chat implements the conversation view.
package chat

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/askdocs-labs/askdoc-cli/internal/adapters/driving/tui/components/input"
	"github.com/askdocs-labs/askdoc-cli/internal/adapters/driving/tui/keymap"
	"github.com/askdocs-labs/askdoc-cli/internal/adapters/driving/tui/messages"
	"github.com/askdocs-labs/askdoc-cli/internal/adapters/driving/tui/styles"
	"github.com/askdocs-labs/askdoc-cli/internal/core/domain"
	"github.com/askdocs-labs/askdoc-cli/internal/core/ports/driving"
)

// View renders the transcript and the message input. Questions are sent
// as-is; lines starting with "/" are commands:
//
//	/upload <file>   upload a document
//	/load <chat-id>  load a saved conversation
//	/new             start a fresh conversation
type View struct {
	styles *styles.Styles
	keymap *keymap.KeyMap

	chat    driving.ChatService
	upload  driving.UploadService
	session driving.SessionService

	input *input.ChatInput
	turns []domain.MessageTurn
	err   error

	width  int
	height int
}

// NewView creates the chat view.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	chat driving.ChatService,
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
		styles:  s,
		keymap:  km,
		chat:    chat,
		upload:  upload,
		session: session,
		input:   input.NewChatInput(s),
	}
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.input.Init()
}

// Update handles messages for the chat view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if keymap.Matches(msg.String(), v.keymap.Send) {
			return v, v.submit()
		}
		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		return v, cmd

	case messages.TranscriptUpdated:
		if msg.Err == nil {
			v.turns = msg.Turns
		}
		return v, nil

	case messages.ExchangeSettled:
		v.err = msg.Err
		return v, nil

	case messages.ErrorOccurred:
		v.err = msg.Err
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// submit interprets the typed line and returns the command to run it.
func (v *View) submit() tea.Cmd {
	line := strings.TrimSpace(v.input.Value())
	if line == "" {
		return nil
	}
	v.input.Reset()
	v.err = nil

	if strings.HasPrefix(line, "/") {
		return v.runSlashCommand(line)
	}
	if v.chat.Sending() {
		// One exchange at a time; drop the submission.
		return nil
	}
	return v.sendCmd(line)
}

func (v *View) runSlashCommand(line string) tea.Cmd {
	cmd, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	switch cmd {
	case "/upload":
		if arg == "" {
			return errCmd(fmt.Errorf("usage: /upload <file>"))
		}
		return v.uploadCmd(arg)
	case "/load":
		if arg == "" {
			return errCmd(fmt.Errorf("usage: /load <chat-id>"))
		}
		return v.loadCmd(arg)
	case "/new":
		return v.newSessionCmd()
	default:
		return errCmd(fmt.Errorf("unknown command %s", cmd))
	}
}

func (v *View) sendCmd(text string) tea.Cmd {
	return func() tea.Msg {
		session, ok := v.session.Current()
		if !ok {
			return messages.ExchangeSettled{Err: domain.ErrNotLoggedIn}
		}
		err := v.chat.Send(context.Background(), session, text)
		return messages.ExchangeSettled{Err: err}
	}
}

func (v *View) uploadCmd(path string) tea.Cmd {
	return func() tea.Msg {
		session, ok := v.session.Current()
		if !ok {
			return messages.UploadSettled{Path: path, Err: domain.ErrNotLoggedIn}
		}
		err := v.upload.Submit(context.Background(), session, path)
		return messages.UploadSettled{Path: path, Err: err}
	}
}

func (v *View) loadCmd(chatID string) tea.Cmd {
	return func() tea.Msg {
		session, ok := v.session.Current()
		if !ok {
			return messages.SessionLoaded{ChatID: chatID, Err: domain.ErrNotLoggedIn}
		}
		err := v.chat.LoadSession(context.Background(), session, chatID)
		return messages.SessionLoaded{ChatID: chatID, Err: err}
	}
}

func (v *View) newSessionCmd() tea.Cmd {
	return func() tea.Msg {
		err := v.chat.NewSession(context.Background())
		return messages.SessionLoaded{ChatID: "", Err: err}
	}
}

func errCmd(err error) tea.Cmd {
	return func() tea.Msg {
		return messages.ErrorOccurred{Err: err}
	}
}

// View renders the transcript and input line.
func (v *View) View() string {
	var b strings.Builder

	title := "Conversation"
	if id := v.chat.ActiveSession(); id != "" {
		title = "Conversation " + id
	}
	b.WriteString(v.styles.Title.Render(title))
	b.WriteString("\n\n")

	b.WriteString(v.renderTranscript())
	b.WriteString("\n")

	if v.chat.Sending() {
		b.WriteString(v.styles.Muted.Render("thinking..."))
		b.WriteString("\n")
	}
	if v.err != nil {
		b.WriteString(v.styles.Error.Render(v.err.Error()))
		b.WriteString("\n")
	}

	b.WriteString(v.input.View())
	return b.String()
}

// renderTranscript renders the visible tail of the conversation.
func (v *View) renderTranscript() string {
	if len(v.turns) == 0 {
		return v.styles.Muted.Render("No messages yet. Ask something about your documents.")
	}

	visible := v.turns
	if max := v.maxTurns(); len(visible) > max {
		visible = visible[len(visible)-max:]
	}

	var b strings.Builder
	for _, turn := range visible {
		label := v.styles.BotLabel.Render("askdoc")
		if turn.Role == domain.RoleUser {
			label = v.styles.UserLabel.Render("you")
		}
		b.WriteString(label)
		b.WriteString("  ")
		b.WriteString(v.styles.Normal.Render(turn.Content))
		b.WriteString("\n")

		if n := len(turn.Citations); n > 0 {
			refs := make([]string, 0, n)
			for _, c := range turn.Citations {
				refs = append(refs, fmt.Sprintf("%s p.%d", c.DocID, c.Page))
			}
			b.WriteString(v.styles.Citation.Render("  cites: " + strings.Join(refs, ", ")))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n") + "\n"
}

// maxTurns bounds the transcript tail to the available height.
func (v *View) maxTurns() int {
	if v.height <= 0 {
		return 20
	}
	max := (v.height - 8) / 2
	if max < 2 {
		max = 2
	}
	return max
}

// SetDimensions sets the terminal dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.input.SetWidth(width)
}

// Turns returns the current transcript snapshot (for testing).
func (v *View) Turns() []domain.MessageTurn {
	return v.turns
}

// Err returns the last error (for testing).
func (v *View) Err() error {
	return v.err
}

// Input returns the input component (for testing).
func (v *View) Input() *input.ChatInput {
	return v.input
}
