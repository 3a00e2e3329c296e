package commands

import (
	"context"
	"fmt"
	"os"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// NewLoginCommand creates the login command.
func NewLoginCommand() *cobra.Command {
	var (
		username string
		password string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to SBX Cloud",
		Long:  "Authenticate a user against the configured domain and print the session token.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if username == "" {
				_, _ = os.Stdout.WriteString("Login: ")

				_, err := fmt.Scanln(&username)
				if err != nil {
					return fmt.Errorf("reading login: %w", err)
				}
			}

			if password == "" {
				_, _ = os.Stdout.WriteString("Password: ")

				passwordBytes, err := term.ReadPassword(syscall.Stdin)
				if err != nil {
					return fmt.Errorf("reading password: %w", err)
				}

				password = string(passwordBytes)

				_, _ = os.Stdout.WriteString("\n")
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}

			resp, err := client.Auth().Login(context.Background(), username, password)
			if err != nil {
				return fmt.Errorf("login request failed: %w", err)
			}

			if err := resp.Err(); err != nil {
				return fmt.Errorf("login rejected: %w", err)
			}

			if resp.User != nil {
				_, _ = fmt.Fprintf(os.Stdout, "Logged in as %s\n", resp.User.Login)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Token: %s\n", resp.Token)
			_, _ = os.Stdout.WriteString("Export it as SBX_TOKEN to authenticate subsequent commands.\n")

			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "user login")
	cmd.Flags().StringVarP(&password, "password", "p", "", "user password (prompted when omitted)")

	return cmd
}

// NewValidateCommand creates the session validation command.
func NewValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the current session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			resp, err := client.Auth().ValidateSession(context.Background())
			if err != nil {
				return fmt.Errorf("validation request failed: %w", err)
			}

			if err := resp.Err(); err != nil {
				return fmt.Errorf("session invalid: %w", err)
			}

			if resp.User != nil {
				_, _ = fmt.Fprintf(os.Stdout, "Session valid for %s\n", resp.User.Login)

				return nil
			}

			_, _ = os.Stdout.WriteString("Session valid\n")

			return nil
		},
	}
}

// NewVersionCommand creates the version command.
func NewVersionCommand(version, commit, date string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintf(os.Stdout, "sbx version %s (commit: %s, built: %s)\n", version, commit, date)
		},
	}
}
