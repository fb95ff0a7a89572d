package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/askdocs-labs/askdoc-cli/internal/adapters/driving/tui/components/status"
	"github.com/askdocs-labs/askdoc-cli/internal/adapters/driving/tui/keymap"
	"github.com/askdocs-labs/askdoc-cli/internal/adapters/driving/tui/messages"
	"github.com/askdocs-labs/askdoc-cli/internal/adapters/driving/tui/styles"
	"github.com/askdocs-labs/askdoc-cli/internal/adapters/driving/tui/views/chat"
	"github.com/askdocs-labs/askdoc-cli/internal/adapters/driving/tui/views/documents"
)

// refreshInterval is how often the views re-read the registries. State
// changes land in the registries asynchronously (uploads, polls, chat
// settlements); the tick makes them visible without explicit wiring.
const refreshInterval = 500 * time.Millisecond

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the TUI styles.
	styles *styles.Styles

	// keymap holds the keybindings.
	keymap *keymap.KeyMap

	// chatView is the conversation view.
	chatView *chat.View

	// documentsView is the document list view.
	documentsView *documents.View

	// statusBar is rendered under every view.
	statusBar *status.Bar

	// currentView tracks which view is active.
	currentView messages.ViewType

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	return &App{
		ports:         ports,
		ctx:           context.Background(),
		styles:        s,
		keymap:        km,
		chatView:      chat.NewView(s, km, ports.Chat, ports.Upload, ports.Session),
		documentsView: documents.NewView(s, km, ports.Document, ports.Upload, ports.Session),
		statusBar:     status.NewBar(s, km),
		currentView:   messages.ViewChat,
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("askdoc"),
		a.chatView.Init(),
		a.refreshCmd(),
		a.tickCmd(),
	)
}

// Update implements tea.Model.
//
//nolint:gocyclo // central message handler
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.chatView.SetDimensions(msg.Width, msg.Height)
		a.documentsView.SetDimensions(msg.Width, msg.Height)
		a.statusBar.SetWidth(msg.Width)
		return a, nil

	case tea.KeyMsg:
		if keymap.Matches(msg.String(), a.keymap.Quit) {
			return a, tea.Quit
		}

		switch a.currentView {
		case messages.ViewChat:
			if keymap.Matches(msg.String(), a.keymap.Documents) {
				a.switchTo(messages.ViewDocuments)
				return a, nil
			}
			if keymap.Matches(msg.String(), a.keymap.Help) {
				a.switchTo(messages.ViewHelp)
				return a, nil
			}
			a.chatView, cmd = a.chatView.Update(msg)
			return a, cmd

		case messages.ViewDocuments:
			if keymap.Matches(msg.String(), a.keymap.Back) ||
				keymap.Matches(msg.String(), a.keymap.Documents) {
				a.switchTo(messages.ViewChat)
				return a, nil
			}
			a.documentsView, cmd = a.documentsView.Update(msg)
			return a, cmd

		case messages.ViewHelp:
			if keymap.Matches(msg.String(), a.keymap.Back) {
				a.switchTo(messages.ViewChat)
			}
			return a, nil
		}
		return a, nil

	case messages.Tick:
		return a, tea.Batch(a.refreshCmd(), a.tickCmd())

	case messages.TranscriptUpdated:
		a.chatView, cmd = a.chatView.Update(msg)
		a.syncStatus()
		return a, cmd

	case messages.DocumentsUpdated:
		a.documentsView, cmd = a.documentsView.Update(msg)
		a.syncStatus()
		pending := 0
		for _, rec := range msg.Records {
			if !rec.Status.IsTerminal() {
				pending++
			}
		}
		a.statusBar.SetPending(pending)
		return a, cmd

	case messages.ExchangeSettled:
		a.setErr(msg.Err)
		a.chatView, cmd = a.chatView.Update(msg)
		return a, tea.Batch(cmd, a.refreshCmd())

	case messages.UploadSettled:
		a.setErr(msg.Err)
		return a, a.refreshCmd()

	case messages.DocumentDeleted, messages.DocumentDismissed:
		a.documentsView, cmd = a.documentsView.Update(msg)
		return a, tea.Batch(cmd, a.refreshCmd())

	case messages.SessionLoaded:
		a.setErr(msg.Err)
		return a, a.refreshCmd()

	case messages.ErrorOccurred:
		a.setErr(msg.Err)
		switch a.currentView {
		case messages.ViewChat:
			a.chatView, cmd = a.chatView.Update(msg)
		case messages.ViewDocuments:
			a.documentsView, cmd = a.documentsView.Update(msg)
		case messages.ViewHelp:
		}
		return a, cmd

	case messages.ViewChanged:
		a.switchTo(msg.View)
		return a, nil

	case messages.Quit:
		return a, tea.Quit
	}

	// Forward other messages (cursor blink etc.) to the active view.
	switch a.currentView {
	case messages.ViewChat:
		a.chatView, cmd = a.chatView.Update(msg)
	case messages.ViewDocuments:
		a.documentsView, cmd = a.documentsView.Update(msg)
	case messages.ViewHelp:
	}
	return a, cmd
}

// switchTo changes the active view and its status bar hints.
func (a *App) switchTo(view messages.ViewType) {
	a.currentView = view
	if view == messages.ViewDocuments {
		a.statusBar.SetHints(a.keymap.DocumentsHelp)
	} else {
		a.statusBar.SetHints(a.keymap.ChatHelp)
	}
}

// setErr records the error for the status bar. nil clears it.
func (a *App) setErr(err error) {
	a.err = err
	if err != nil {
		a.statusBar.SetState(status.StateError)
		a.statusBar.SetMessage(err.Error())
	} else {
		a.statusBar.Clear()
	}
}

// syncStatus refreshes the identity and activity segments.
func (a *App) syncStatus() {
	if session, ok := a.ports.Session.Current(); ok {
		a.statusBar.SetEmail(session.Email)
	} else {
		a.statusBar.SetEmail("")
	}
	if a.statusBar.State() != status.StateError {
		if a.ports.Chat.Sending() {
			a.statusBar.SetState(status.StateThinking)
		} else {
			a.statusBar.SetState(status.StateReady)
		}
	}
}

// tickCmd schedules the next refresh tick.
func (a *App) tickCmd() tea.Cmd {
	return tea.Tick(refreshInterval, func(time.Time) tea.Msg {
		return messages.Tick{}
	})
}

// refreshCmd re-reads both registries and fans the snapshots out.
func (a *App) refreshCmd() tea.Cmd {
	return tea.Batch(
		func() tea.Msg {
			turns, err := a.ports.Chat.Turns(a.ctx)
			return messages.TranscriptUpdated{Turns: turns, Err: err}
		},
		func() tea.Msg {
			recs, err := a.ports.Document.List(a.ctx)
			return messages.DocumentsUpdated{Records: recs, Err: err}
		},
	)
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	var body string
	switch a.currentView {
	case messages.ViewChat:
		body = a.chatView.View()
	case messages.ViewDocuments:
		body = a.documentsView.View()
	case messages.ViewHelp:
		body = a.viewHelp()
	default:
		body = a.chatView.View()
	}

	return body + "\n" + a.statusBar.View()
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	return `Help

Chat:
  (type)      Enter a question
  enter       Send
  /upload <file>   Upload a document
  /load <chat-id>  Load a saved conversation
  /new             Start a fresh conversation
  tab         Document list

Documents:
  j/k, ↑/↓    Navigate
  d           Delete (asks for confirmation)
  x           Dismiss a failed upload
  esc         Back to chat

Global:
  ctrl+h      This help
  ctrl+c      Quit

[esc] back to chat`
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// ChatView returns the chat view (for testing).
func (a *App) ChatView() *chat.View {
	return a.chatView
}

// DocumentsView returns the documents view (for testing).
func (a *App) DocumentsView() *documents.View {
	return a.documentsView
}

// SetDimensions sets the terminal dimensions (for testing).
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.chatView.SetDimensions(width, height)
	a.documentsView.SetDimensions(width, height)
	a.statusBar.SetWidth(width)
}
