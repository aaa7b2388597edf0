// Package cli defines the Cobra command tree for fruitvision. Bare
// invocation launches the TUI; subcommands cover one-shot use from scripts
// and terminals without a full-screen session.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fruitvision/fruitvision/internal/app"
)

var (
	configPath  string
	sessionPath string
	version     = "dev" // set via ldflags at build time
)

var rootCmd = &cobra.Command{
	Use:   "fruitvision",
	Short: "Terminal client for the FruitVision image-classification service",
	Long: `FruitVision classifies fruit photos: upload an image and get the
predicted class, confidence, ripeness and model metrics.

Without a subcommand, fruitvision starts the interactive terminal UI.`,
	Version:       version,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.Run(cmd.Context(), appOptions())
	},
}

func appOptions() app.Options {
	return app.Options{ConfigPath: configPath, SessionPath: sessionPath}
}

// Execute runs the root command. Called from main.
func Execute(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "override config path (default ~/.config/fruitvision/config.toml)")
	rootCmd.PersistentFlags().StringVar(&sessionPath, "session", "", "override session file path (default ~/.config/fruitvision/session.toml)")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(predictCmd)
}
