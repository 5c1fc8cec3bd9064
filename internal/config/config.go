package config

import (
	"log/slog"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Logging    LoggingConfig    `yaml:"logging"`
	Perplexity PerplexityConfig `yaml:"perplexity"`
}

type ServerConfig struct {
	Host                string `yaml:"host"`
	Port                int    `yaml:"port"`
	ReadTimeoutSeconds  int    `yaml:"read_timeout_seconds"`
	WriteTimeoutSeconds int    `yaml:"write_timeout_seconds"`
}

type DatabaseConfig struct {
	Path string `yaml:"path"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

// PerplexityConfig configures the external model provider. The API key is
// never read from the YAML file; it comes from the environment only.
type PerplexityConfig struct {
	APIKey         string `yaml:"-"`
	BaseURL        string `yaml:"base_url"`
	Model          string `yaml:"model"`
	MaxRetries     int    `yaml:"max_retries"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	RecencyFilter  string `yaml:"recency_filter"`
}

func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Host:                "0.0.0.0",
			Port:                8080,
			ReadTimeoutSeconds:  30,
			WriteTimeoutSeconds: 60,
		},
		Database: DatabaseConfig{
			Path: "./newsdeck.db",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Perplexity: PerplexityConfig{
			BaseURL:        "https://api.perplexity.ai",
			Model:          "sonar",
			MaxRetries:     3,
			TimeoutSeconds: 30,
			RecencyFilter:  "day",
		},
	}
}

// Load reads a YAML config file and merges it over defaults, then applies
// environment overrides. If the file does not exist, defaults are returned
// without error.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			slog.Info("No config file found, using defaults", "path", path)
			cfg.applyEnv()
			return cfg, nil
		}
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("PERPLEXITY_API_KEY"); v != "" {
		c.Perplexity.APIKey = v
	}
	if v := os.Getenv("PERPLEXITY_BASE_URL"); v != "" {
		c.Perplexity.BaseURL = v
	}
	if v := os.Getenv("PERPLEXITY_MODEL"); v != "" {
		c.Perplexity.Model = v
	}
	if v := os.Getenv("PERPLEXITY_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Perplexity.MaxRetries = n
		}
	}
	if v := os.Getenv("PERPLEXITY_TIMEOUT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Perplexity.TimeoutSeconds = n
		}
	}
	if v := os.Getenv("PERPLEXITY_RECENCY_FILTER"); v != "" {
		c.Perplexity.RecencyFilter = v
	}
	if v := os.Getenv("NEWSDECK_DB_PATH"); v != "" {
		c.Database.Path = v
	}
}
