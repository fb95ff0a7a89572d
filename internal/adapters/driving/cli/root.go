// Package cli wires the cobra command tree to the driving ports.
//
// Commands are glue: they resolve the current session, call a service,
// and print registry state. Services are injected once at startup via
// SetServices; every RunE guards against a missing service so the
// command tree stays testable in isolation.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/askdocs-labs/askdoc-cli/internal/core/domain"
	"github.com/askdocs-labs/askdoc-cli/internal/core/ports/driving"
	"github.com/askdocs-labs/askdoc-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Injected services. Nil until SetServices runs.
var (
	sessionService  driving.SessionService
	uploadService   driving.UploadService
	documentService driving.DocumentService
	chatService     driving.ChatService
	statusWatcher   driving.StatusWatcher
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "askdoc",
	Short: "Ask questions about your documents from the terminal",
	Long: `askdoc uploads documents to an askdocs backend and answers
questions about them, with citations back into the source documents.

Run 'askdoc tui' for the interactive interface, or use the individual
commands for scripting.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

// Services bundles everything the command tree needs.
type Services struct {
	Session  driving.SessionService
	Upload   driving.UploadService
	Document driving.DocumentService
	Chat     driving.ChatService
	Watcher  driving.StatusWatcher
}

// SetServices injects the driving services into the command tree.
func SetServices(s Services) {
	sessionService = s.Session
	uploadService = s.Upload
	documentService = s.Document
	chatService = s.Chat
	statusWatcher = s.Watcher
}

// SetVersion overrides the reported version string.
func SetVersion(v string) {
	version = v
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// currentSession resolves the logged-in session or fails with a hint.
func currentSession() (domain.UserSession, error) {
	if sessionService == nil {
		return domain.UserSession{}, fmt.Errorf("session service not configured")
	}
	session, ok := sessionService.Current()
	if !ok {
		return domain.UserSession{}, fmt.Errorf("%w: run 'askdoc login' first", domain.ErrNotLoggedIn)
	}
	return session, nil
}
