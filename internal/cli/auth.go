package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/fruitvision/fruitvision/internal/app"
)

var loginCmd = &cobra.Command{
	Use:   "login [username]",
	Short: "Log in and persist the session token",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := app.Bootstrap(appOptions())
		if err != nil {
			return err
		}

		username, err := argOrPrompt(args, 0, "Username: ")
		if err != nil {
			return err
		}
		password, err := promptPassword("Password: ")
		if err != nil {
			return err
		}

		sess, err := env.Store.Login(cmd.Context(), username, password)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", sess.Username)
		return nil
	},
}

var registerCmd = &cobra.Command{
	Use:   "register [username]",
	Short: "Create a new account",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := app.Bootstrap(appOptions())
		if err != nil {
			return err
		}

		username, err := argOrPrompt(args, 0, "Username: ")
		if err != nil {
			return err
		}
		email, err := prompt("Email: ")
		if err != nil {
			return err
		}
		password, err := promptPassword("Password: ")
		if err != nil {
			return err
		}

		if err := env.Store.Register(cmd.Context(), username, password, email); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Registration successful! Please login.")
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the persisted session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := app.Bootstrap(appOptions())
		if err != nil {
			return err
		}
		env.Store.Logout()
		fmt.Fprintln(cmd.OutOrStdout(), "You have been logged out.")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current session state",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := app.Bootstrap(appOptions())
		if err != nil {
			return err
		}
		sess := env.Store.Current()
		if !sess.Authenticated() {
			fmt.Fprintln(cmd.OutOrStdout(), "Not logged in")
			return nil
		}
		name := sess.Username
		if name == "" {
			name = "User"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", name)
		return nil
	},
}

func argOrPrompt(args []string, i int, label string) (string, error) {
	if len(args) > i && strings.TrimSpace(args[i]) != "" {
		return strings.TrimSpace(args[i]), nil
	}
	return prompt(label)
}

func prompt(label string) (string, error) {
	fmt.Fprint(os.Stderr, label)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	value := strings.TrimSpace(line)
	if value == "" {
		return "", fmt.Errorf("input is empty")
	}
	return value, nil
}

func promptPassword(label string) (string, error) {
	fmt.Fprint(os.Stderr, label)
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	if len(raw) == 0 {
		return "", fmt.Errorf("password is empty")
	}
	return string(raw), nil
}
