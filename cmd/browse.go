// ABOUTME: Browse command launching the interactive TUI
// ABOUTME: Wires configuration, session state, and the API client into the app

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"catalogctl/internal/config"
	"catalogctl/internal/logging"
	"catalogctl/internal/tui"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse the catalog interactively",
	Long:  `Open the interactive terminal UI for browsing and administering products and categories.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadedConfig()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(2)
		}

		if err := logging.Init(config.DefaultConfigDir(), cfg.LogLevel); err != nil {
			// The UI works without a debug log
			fmt.Fprintf(os.Stderr, "Warning: debug log unavailable: %v\n", err)
		}
		defer logging.Close()

		if err := tui.Run(cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(browseCmd)
}
