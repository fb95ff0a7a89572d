package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/askdocs-labs/askdoc-cli/internal/core/domain"
)

var uploadCmd = &cobra.Command{
	Use:   "upload [file]",
	Short: "Upload a document",
	Long: `Uploads a file to the backend and waits for ingestion to finish.
The document appears in 'askdoc document list' immediately and becomes
queryable once its status reaches ready.`,
	Args: cobra.ExactArgs(1),
	RunE: runUpload,
}

// uploadNoWait skips waiting for ingestion.
var uploadNoWait bool

func init() {
	uploadCmd.Flags().BoolVar(&uploadNoWait, "no-wait", false, "Return as soon as the transfer finishes")
	rootCmd.AddCommand(uploadCmd)
}

func runUpload(cmd *cobra.Command, args []string) error {
	if uploadService == nil || documentService == nil {
		return errors.New("upload service not configured")
	}

	session, err := currentSession()
	if err != nil {
		return err
	}

	path := args[0]
	ctx := context.Background()

	// Snapshot the registry so the submission's own record can be told
	// apart afterwards. A concurrent sync or second upload may have
	// appended records behind our back.
	before, err := documentService.List(ctx)
	if err != nil {
		return fmt.Errorf("reading document list: %w", err)
	}
	known := make(map[string]struct{}, len(before))
	for _, rec := range before {
		known[rec.ID] = struct{}{}
	}

	cmd.Printf("Uploading %s...\n", path)
	if err := uploadService.Submit(ctx, session, path); err != nil {
		return fmt.Errorf("upload failed: %w", err)
	}

	if uploadNoWait {
		cmd.Println("Upload accepted.")
		return nil
	}

	recs, err := documentService.List(ctx)
	if err != nil {
		return fmt.Errorf("reading document list: %w", err)
	}
	submitted := ""
	for _, rec := range recs {
		if _, ok := known[rec.ID]; !ok {
			submitted = rec.ID
			break
		}
	}
	if submitted == "" {
		return errors.New("document disappeared during ingestion")
	}

	return waitForIngestion(ctx, cmd, submitted)
}

// waitForIngestion watches the record under id until it settles in a
// terminal status.
func waitForIngestion(ctx context.Context, cmd *cobra.Command, id string) error {
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	lastProgress := -1
	for range ticker.C {
		recs, err := documentService.List(ctx)
		if err != nil {
			return fmt.Errorf("reading document list: %w", err)
		}
		rec, ok := findRecord(recs, id)
		if !ok {
			return errors.New("document disappeared during ingestion")
		}

		switch rec.Status {
		case domain.StatusReady:
			cmd.Printf("\rDone. Document %s is ready.\n", rec.ID)
			return nil
		case domain.StatusError:
			return fmt.Errorf("ingestion failed for %s", rec.Title)
		default:
			if rec.Progress != lastProgress {
				cmd.Printf("\r%s... %d%%", rec.Status.Description(), rec.Progress)
				lastProgress = rec.Progress
			}
		}
	}
	return nil
}

func findRecord(recs []domain.DocumentRecord, id string) (domain.DocumentRecord, bool) {
	for _, rec := range recs {
		if rec.ID == id {
			return rec, true
		}
	}
	return domain.DocumentRecord{}, false
}
