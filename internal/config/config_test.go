// ABOUTME: Tests for configuration loading
// ABOUTME: Verifies env var overrides and defaults

package config

import (
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CATALOG_API_URL", "")
	t.Setenv("CATALOG_PAGE_SIZE", "")
	t.Setenv("CATALOG_LOG_LEVEL", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.APIURL != "http://localhost:8080/api/v1" {
		t.Errorf("expected default API URL, got %s", cfg.APIURL)
	}
	if cfg.PageSize != 10 {
		t.Errorf("expected default page size 10, got %d", cfg.PageSize)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("expected default log level info, got %s", cfg.LogLevel)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("CATALOG_API_URL", "https://catalog.example.com/api/v1")
	t.Setenv("CATALOG_PAGE_SIZE", "25")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.APIURL != "https://catalog.example.com/api/v1" {
		t.Errorf("expected overridden API URL, got %s", cfg.APIURL)
	}
	if cfg.PageSize != 25 {
		t.Errorf("expected page size 25, got %d", cfg.PageSize)
	}
}

func TestLoad_InvalidPageSizeFallsBack(t *testing.T) {
	t.Setenv("CATALOG_PAGE_SIZE", "-5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.PageSize != 10 {
		t.Errorf("expected fallback page size 10, got %d", cfg.PageSize)
	}
}

func TestDefaultConfigDir_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-test")

	dir := DefaultConfigDir()
	want := filepath.Join("/tmp/xdg-test", "catalogctl")
	if dir != want {
		t.Errorf("expected %s, got %s", want, dir)
	}
}
