package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/askdocs-labs/askdoc-cli/internal/core/domain"
)

var documentCmd = &cobra.Command{
	Use:   "document",
	Short: "Manage uploaded documents",
	Long:  `List, delete, or dismiss uploaded documents.`,
}

var documentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List documents with status and progress",
	RunE:  runDocumentList,
}

var documentDeleteCmd = &cobra.Command{
	Use:   "delete [doc-id]",
	Short: "Delete a document",
	Long: `Deletes a document on the server and removes it locally. The server
confirms first; nothing is removed on failure.`,
	Args: cobra.ExactArgs(1),
	RunE: runDocumentDelete,
}

var documentDismissCmd = &cobra.Command{
	Use:   "dismiss [doc-id]",
	Short: "Dismiss a failed upload",
	Long:  `Removes a failed upload entry from the local list. No server call.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentDismiss,
}

var documentSyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Refresh the document list from the server",
	RunE:  runDocumentSync,
}

// deleteForce skips the confirmation prompt.
var deleteForce bool

func init() {
	documentDeleteCmd.Flags().BoolVarP(&deleteForce, "force", "f", false, "Delete without confirmation")

	documentCmd.AddCommand(documentListCmd)
	documentCmd.AddCommand(documentDeleteCmd)
	documentCmd.AddCommand(documentDismissCmd)
	documentCmd.AddCommand(documentSyncCmd)
	rootCmd.AddCommand(documentCmd)
}

func runDocumentList(cmd *cobra.Command, _ []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	recs, err := documentService.List(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}

	if len(recs) == 0 {
		cmd.Println("No documents uploaded yet.")
		return nil
	}

	for _, rec := range recs {
		cmd.Printf("  %s\n", rec.ID)
		cmd.Printf("    Title:  %s\n", rec.Title)
		cmd.Printf("    Status: %s\n", rec.Status.Description())
		if !rec.Status.IsTerminal() {
			cmd.Printf("    Progress: %d%%\n", rec.Progress)
		}
		cmd.Println()
	}

	cmd.Printf("Total: %d documents\n", len(recs))
	return nil
}

func runDocumentDelete(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	session, err := currentSession()
	if err != nil {
		return err
	}

	docID := args[0]

	// The prompt blocks before any network effect.
	if !deleteForce {
		cmd.Printf("Delete document %s? This cannot be undone. [y/N]: ", docID)
		reader := bufio.NewReader(cmd.InOrStdin())
		answer := strings.ToLower(readLine(reader))
		if answer != "y" && answer != "yes" {
			cmd.Println("Cancelled.")
			return nil
		}
	}

	if err := documentService.Delete(context.Background(), session, docID); err != nil {
		return fmt.Errorf("delete failed: %w", err)
	}

	cmd.Printf("Document %s deleted.\n", docID)
	return nil
}

func runDocumentDismiss(cmd *cobra.Command, args []string) error {
	if uploadService == nil {
		return errors.New("upload service not configured")
	}

	docID := args[0]
	if err := uploadService.Dismiss(context.Background(), docID); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return fmt.Errorf("%s is not a failed upload", docID)
		}
		return fmt.Errorf("dismiss failed: %w", err)
	}

	cmd.Printf("Dismissed %s.\n", docID)
	return nil
}

func runDocumentSync(cmd *cobra.Command, _ []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	session, err := currentSession()
	if err != nil {
		return err
	}

	if err := documentService.Sync(context.Background(), session); err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}

	cmd.Println("Document list refreshed.")
	return nil
}
