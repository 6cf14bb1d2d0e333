// ABOUTME: Root command for the catalogctl CLI
// ABOUTME: Handles global flags, configuration, and shared client wiring

package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"catalogctl/internal/api"
	"catalogctl/internal/config"
	"catalogctl/internal/guard"
	"catalogctl/internal/session"
)

var (
	apiURL     string
	jsonOutput bool
)

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "catalogctl",
	Short: "CLI for the product/category catalog",
	Long: `catalogctl is a terminal front end for the catalog backend.

It manages products and categories over the backend's REST API, with an
interactive browser (catalogctl browse) and scriptable subcommands.

Environment Variables:
  CATALOG_API_URL    Backend API base URL (default: http://localhost:8080/api/v1)
  CATALOG_PAGE_SIZE  Default page size for list commands (default: 10)
  CATALOG_LOG_LEVEL  Debug log level written to the config dir (default: info)`,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Backend API base URL (overrides CATALOG_API_URL)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output JSON instead of human-readable text")
}

// loadedConfig reads configuration, applying the --api-url override
func loadedConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if apiURL != "" {
		cfg.APIURL = apiURL
	}
	return cfg, nil
}

// IsJSONOutput returns whether JSON output is requested
func IsJSONOutput() bool {
	return jsonOutput
}

// newSessionStore creates the session store over the default config dir
func newSessionStore() *session.Store {
	return session.NewStore(config.DefaultConfigDir())
}

// newClient wires the session store and API client for a command.
// The store's one-time load resolves the session state before any call.
func newClient() (*api.Client, *session.Store, *config.Config, error) {
	cfg, err := loadedConfig()
	if err != nil {
		return nil, nil, nil, err
	}
	store := session.NewStore(config.DefaultConfigDir())
	if err := store.Load(); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to read session state: %w", err)
	}
	return api.New(cfg.APIURL, store), store, cfg, nil
}

// requireAdmin gates write commands behind the admin-role guard.
// Server-side authorization still applies; this only fails fast.
func requireAdmin(store *session.Store, w io.Writer) bool {
	switch guard.Check(guard.CapabilityAdmin, store) {
	case guard.Allow:
		return true
	case guard.RedirectLogin:
		fmt.Fprintln(w, "Error: not logged in. Run: catalogctl login")
	case guard.RedirectUnauthorized:
		fmt.Fprintln(w, "Error: admin role required for this operation")
	default:
		fmt.Fprintln(w, "Error: session state unresolved")
	}
	return false
}

// printJSON writes v as indented JSON
func printJSON(w io.Writer, v interface{}) {
	data, _ := json.MarshalIndent(v, "", "  ")
	fmt.Fprintln(w, string(data))
}

// formatPageFooter renders the shared pagination summary line
func formatPageFooter(number, totalPages, totalElements int) string {
	if totalPages == 0 {
		return "No records"
	}
	return fmt.Sprintf("Page %d of %d (%d total)", number+1, totalPages, totalElements)
}
