// Command askdoc is a terminal client for the AskDoc document
// question-answering backend.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/askdocs-labs/askdoc-cli/internal/adapters/driven/api"
	"github.com/askdocs-labs/askdoc-cli/internal/adapters/driven/config/file"
	"github.com/askdocs-labs/askdoc-cli/internal/adapters/driven/storage/memory"
	"github.com/askdocs-labs/askdoc-cli/internal/adapters/driven/storage/sqlite"
	"github.com/askdocs-labs/askdoc-cli/internal/adapters/driving/cli"
	"github.com/askdocs-labs/askdoc-cli/internal/core/services"
)

// version is set at build time via -ldflags.
var version = "dev"

const defaultServerURL = "http://localhost:8000"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	config, err := file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	store, err := sqlite.NewStore(config.GetString(file.KeyDataDir))
	if err != nil {
		return fmt.Errorf("opening local state: %w", err)
	}
	defer func() { _ = store.Close() }()

	serverURL := config.GetString(file.KeyServerURL)
	if serverURL == "" {
		serverURL = defaultServerURL
	}
	gateway := api.NewClient(serverURL)

	registry := memory.NewDocumentRegistry()
	chatLog := memory.NewChatLog()

	pollInterval := time.Duration(config.GetInt(file.KeyPollIntervalMS)) * time.Millisecond
	poller := services.NewStatusPoller(registry, gateway, store.StateStore(), pollInterval)
	defer poller.Stop()

	sessionService := services.NewSessionService(ctx, store.SessionStore(), gateway)
	uploadService := services.NewUploadService(registry, gateway, store.StateStore(), poller)
	documentService := services.NewDocumentService(registry, gateway, store.StateStore())
	chatService := services.NewChatService(chatLog, gateway, config.GetString(file.KeyScope))

	// Restore the persisted document list, then reconcile against the
	// server when a session survived the restart. Both are best effort;
	// commands work from whatever state is available.
	if err := documentService.Rehydrate(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Warning: could not restore local state:", err)
	}
	if session, ok := sessionService.Current(); ok {
		if err := documentService.Sync(ctx, session); err != nil {
			fmt.Fprintln(os.Stderr, "Warning: could not sync documents:", err)
		}
	}

	cli.SetVersion(version)
	cli.SetServices(cli.Services{
		Session:  sessionService,
		Upload:   uploadService,
		Document: documentService,
		Chat:     chatService,
		Watcher:  poller,
	})
	cli.Execute()
	return nil
}
