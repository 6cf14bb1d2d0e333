// ABOUTME: Configuration loading for catalogctl
// ABOUTME: Reads settings from an optional .env file and CATALOG_* env vars

package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all runtime settings for the CLI
type Config struct {
	APIURL   string `envconfig:"API_URL" default:"http://localhost:8080/api/v1"`
	PageSize int    `envconfig:"PAGE_SIZE" default:"10"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
}

// Load reads configuration from the environment.
// A .env file in the working directory is applied first if present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("CATALOG", &cfg); err != nil {
		return nil, err
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = 10
	}
	return &cfg, nil
}

// DefaultConfigDir returns the config directory under the XDG config home.
// Session state and the debug log live here.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "catalogctl")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "catalogctl")
}
