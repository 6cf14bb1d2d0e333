// ABOUTME: Login, logout, and whoami commands for session management
// ABOUTME: Exchanges credentials for a persisted session token

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"catalogctl/internal/session"
)

var (
	loginUsername string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to the catalog backend",
	Long:  `Authenticate against the backend and persist the session token for later commands.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runLogin(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and discard the stored session",
	Run: func(cmd *cobra.Command, args []string) {
		exitCode := runLogout(os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current session identity",
	Run: func(cmd *cobra.Command, args []string) {
		exitCode := runWhoami(os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	loginCmd.Flags().StringVarP(&loginUsername, "username", "u", "", "Username")
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "Password (prompted when omitted)")
}

// promptCredentials asks for whichever credential is missing
func promptCredentials() error {
	var fields []huh.Field
	if loginUsername == "" {
		fields = append(fields, huh.NewInput().Title("Username").Value(&loginUsername))
	}
	if loginPassword == "" {
		fields = append(fields, huh.NewInput().Title("Password").EchoMode(huh.EchoModePassword).Value(&loginPassword))
	}
	if len(fields) == 0 {
		return nil
	}
	return huh.NewForm(huh.NewGroup(fields...)).WithTheme(huh.ThemeBase()).Run()
}

// runLogin executes the login flow and returns exit code
func runLogin(ctx context.Context, w io.Writer) int {
	if err := promptCredentials(); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	client, _, _, err := newClient()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	sess, err := client.Login(ctx, loginUsername, loginPassword)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 1
	}

	if IsJSONOutput() {
		printJSON(w, map[string]string{"username": sess.Username, "role": string(sess.Role)})
	} else {
		fmt.Fprintf(w, "Logged in as %s (%s)\n", sess.Username, sess.Role)
	}
	return 0
}

// runLogout clears the stored session and returns exit code
func runLogout(w io.Writer) int {
	store := newSessionStore()
	if err := store.Clear(); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 1
	}
	fmt.Fprintln(w, "Logged out")
	return 0
}

// runWhoami prints the current session state and returns exit code
func runWhoami(w io.Writer) int {
	store := newSessionStore()
	if err := store.Load(); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 1
	}

	sess, ok := store.Current()
	if !ok {
		if IsJSONOutput() {
			printJSON(w, map[string]interface{}{"authenticated": false})
		} else {
			fmt.Fprintln(w, "Not logged in")
		}
		return 1
	}

	if IsJSONOutput() {
		printJSON(w, map[string]interface{}{
			"authenticated": true,
			"username":      sess.Username,
			"role":          sess.Role,
			"admin":         sess.Role == session.RoleAdmin,
		})
	} else {
		fmt.Fprintf(w, "Username: %s\nRole:     %s\n", sess.Username, sess.Role)
	}
	return 0
}
