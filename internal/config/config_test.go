package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Perplexity.Model != "sonar" || cfg.Perplexity.MaxRetries != 3 {
		t.Errorf("Perplexity defaults = %+v", cfg.Perplexity)
	}
}

func TestLoadOverlaysFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  port: 9999
perplexity:
  model: sonar-pro
  recency_filter: week
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 9999 {
		t.Errorf("Port = %d, want 9999", cfg.Server.Port)
	}
	if cfg.Perplexity.Model != "sonar-pro" || cfg.Perplexity.RecencyFilter != "week" {
		t.Errorf("Perplexity = %+v", cfg.Perplexity)
	}
	// Untouched keys keep their defaults.
	if cfg.Database.Path != "./newsdeck.db" {
		t.Errorf("Database.Path = %q", cfg.Database.Path)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PERPLEXITY_API_KEY", "pplx-test")
	t.Setenv("PERPLEXITY_MAX_RETRIES", "5")
	t.Setenv("NEWSDECK_DB_PATH", "/tmp/override.db")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Perplexity.APIKey != "pplx-test" {
		t.Errorf("APIKey = %q", cfg.Perplexity.APIKey)
	}
	if cfg.Perplexity.MaxRetries != 5 {
		t.Errorf("MaxRetries = %d, want 5", cfg.Perplexity.MaxRetries)
	}
	if cfg.Database.Path != "/tmp/override.db" {
		t.Errorf("Database.Path = %q", cfg.Database.Path)
	}
}

func TestAPIKeyNeverFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "perplexity:\n  api_key: leaked\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Perplexity.APIKey == "leaked" {
		t.Error("API key must not be readable from the config file")
	}
}
