package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var loginCmd = &cobra.Command{
	Use:   "login [email]",
	Short: "Log in to the backend",
	Long: `Log in with your email and password. The session token is stored
locally and reused by all other commands until you log out.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLogin,
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a new account",
	RunE:  runRegister,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and clear the stored session",
	RunE:  runLogout,
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(logoutCmd)
}

func runLogin(cmd *cobra.Command, args []string) error {
	if sessionService == nil {
		return errors.New("session service not configured")
	}

	reader := bufio.NewReader(cmd.InOrStdin())

	var email string
	if len(args) > 0 {
		email = args[0]
	} else {
		cmd.Print("Email: ")
		email = readLine(reader)
	}

	cmd.Print("Password: ")
	password := readSecret(reader)
	cmd.Println()

	session, err := sessionService.Login(context.Background(), email, password)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	cmd.Printf("Logged in as %s\n", session.Email)
	return nil
}

func runRegister(cmd *cobra.Command, _ []string) error {
	if sessionService == nil {
		return errors.New("session service not configured")
	}

	reader := bufio.NewReader(cmd.InOrStdin())

	cmd.Print("Username: ")
	username := readLine(reader)
	cmd.Print("Email: ")
	email := readLine(reader)
	cmd.Print("Password: ")
	password := readSecret(reader)
	cmd.Println()

	session, err := sessionService.Register(context.Background(), username, email, password)
	if err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}

	cmd.Printf("Account created. Logged in as %s\n", session.Email)
	return nil
}

func runLogout(cmd *cobra.Command, _ []string) error {
	if sessionService == nil {
		return errors.New("session service not configured")
	}

	if err := sessionService.Logout(context.Background()); err != nil {
		return fmt.Errorf("logout failed: %w", err)
	}

	cmd.Println("Logged out.")
	return nil
}

// Helper functions.

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

// readSecret reads without echo on a terminal, falling back to a plain
// line read (tests, pipes).
//
//nolint:errcheck // CLI helper, error ignored for UX
func readSecret(reader *bufio.Reader) string {
	if term.IsTerminal(int(os.Stdin.Fd())) {
		secret, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return string(secret)
		}
	}
	return readLine(reader)
}
