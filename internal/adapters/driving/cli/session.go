package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Manage saved conversations",
	Long:  `List saved conversations, load one, or start a fresh one.`,
}

var sessionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved conversations",
	RunE:  runSessionList,
}

var sessionLoadCmd = &cobra.Command{
	Use:   "load [chat-id]",
	Short: "Load a saved conversation",
	Long:  `Replaces the active conversation with the stored one. On failure the current conversation is untouched.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runSessionLoad,
}

var sessionNewCmd = &cobra.Command{
	Use:   "new",
	Short: "Start a fresh conversation",
	RunE:  runSessionNew,
}

func init() {
	sessionCmd.AddCommand(sessionListCmd)
	sessionCmd.AddCommand(sessionLoadCmd)
	sessionCmd.AddCommand(sessionNewCmd)
	rootCmd.AddCommand(sessionCmd)
}

func runSessionList(cmd *cobra.Command, _ []string) error {
	if chatService == nil {
		return errors.New("chat service not configured")
	}

	session, err := currentSession()
	if err != nil {
		return err
	}

	summaries, err := chatService.History(context.Background(), session)
	if err != nil {
		return fmt.Errorf("failed to list conversations: %w", err)
	}

	if len(summaries) == 0 {
		cmd.Println("No saved conversations.")
		return nil
	}

	active := chatService.ActiveSession()
	for _, s := range summaries {
		marker := " "
		if s.ID == active {
			marker = "*"
		}
		cmd.Printf("%s %s  %s", marker, s.ID, s.Title)
		if !s.LastMessageAt.IsZero() {
			cmd.Printf("  (%s)", s.LastMessageAt.Local().Format(time.DateTime))
		}
		cmd.Println()
	}
	return nil
}

func runSessionLoad(cmd *cobra.Command, args []string) error {
	if chatService == nil {
		return errors.New("chat service not configured")
	}

	session, err := currentSession()
	if err != nil {
		return err
	}

	chatID := args[0]
	if err := chatService.LoadSession(context.Background(), session, chatID); err != nil {
		return fmt.Errorf("failed to load conversation: %w", err)
	}

	cmd.Printf("Loaded conversation %s.\n", chatID)
	return nil
}

func runSessionNew(cmd *cobra.Command, _ []string) error {
	if chatService == nil {
		return errors.New("chat service not configured")
	}

	if err := chatService.NewSession(context.Background()); err != nil {
		return fmt.Errorf("failed to start conversation: %w", err)
	}

	cmd.Println("Started a fresh conversation.")
	return nil
}
