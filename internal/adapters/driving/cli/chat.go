package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/askdocs-labs/askdoc-cli/internal/core/domain"
)

var chatCmd = &cobra.Command{
	Use:   "chat [question]",
	Short: "Ask a question about your documents",
	Long: `Sends one question and prints the answer with its citations.
The exchange joins the active conversation; use 'askdoc session' to
switch or start conversations.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	if chatService == nil {
		return errors.New("chat service not configured")
	}

	session, err := currentSession()
	if err != nil {
		return err
	}

	question := strings.Join(args, " ")
	ctx := context.Background()

	sendErr := chatService.Send(ctx, session, question)
	if errors.Is(sendErr, domain.ErrEmptyQuery) {
		return errors.New("question is empty")
	}

	// Even a failed exchange leaves an answer turn behind; print the
	// transcript tail either way.
	turns, err := chatService.Turns(ctx)
	if err != nil {
		return fmt.Errorf("reading transcript: %w", err)
	}
	if len(turns) == 0 {
		return sendErr
	}

	last := turns[len(turns)-1]
	cmd.Println(last.Content)
	printCitations(cmd, last.Citations)

	return sendErr
}

func printCitations(cmd *cobra.Command, citations []domain.Citation) {
	if len(citations) == 0 {
		return
	}
	cmd.Println()
	cmd.Printf("Citations:\n")
	for i, c := range citations {
		cmd.Printf("  [%d] %s, page %d\n", i+1, c.DocID, c.Page)
		if c.Snippet != "" {
			cmd.Printf("      %q\n", c.Snippet)
		}
	}
}
