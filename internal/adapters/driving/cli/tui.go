package cli

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/askdocs-labs/askdoc-cli/internal/adapters/driving/tui"
)

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface for AskDoc.

The TUI combines the conversation and the document list in one screen,
with background refresh while uploads are ingesting.

Controls:
  (type)   - Ask a question, or /upload <file>
  Enter    - Send
  Tab      - Toggle document list
  d        - Delete selected document (asks for confirmation)
  x        - Dismiss a failed upload
  Ctrl+H   - Help
  Ctrl+C   - Quit`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	if sessionService == nil || uploadService == nil ||
		documentService == nil || chatService == nil {
		return errors.New("services not configured")
	}

	if _, ok := sessionService.Current(); !ok {
		return fmt.Errorf("not logged in, run 'askdoc login' first")
	}

	ports := &tui.Ports{
		Session:  sessionService,
		Upload:   uploadService,
		Document: documentService,
		Chat:     chatService,
	}

	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	app.WithContext(cmd.Context())

	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
