// Package config loads insight configuration from YAML with environment
// overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all insight configuration.
type Config struct {
	LLM     LLMConfig     `yaml:"llm"`
	Search  SearchConfig  `yaml:"search"`
	History HistoryConfig `yaml:"history"`
	Logging LoggingConfig `yaml:"logging"`
}

// LLMConfig configures the completion client.
type LLMConfig struct {
	APIKey          string `yaml:"api_key"`
	Model           string `yaml:"model"`
	BaseURL         string `yaml:"base_url"`
	Timeout         string `yaml:"timeout"`
	MaxOutputTokens int    `yaml:"max_output_tokens"`
}

// TimeoutDuration parses the configured timeout, falling back to the default
// when unset or malformed.
func (c LLMConfig) TimeoutDuration() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil || d <= 0 {
		return 2 * time.Minute
	}
	return d
}

// SearchConfig configures web-context gathering.
type SearchConfig struct {
	Enabled bool `yaml:"enabled"`
}

// HistoryConfig configures the local analysis history.
type HistoryConfig struct {
	DatabasePath string `yaml:"database_path"`
	Capacity     int    `yaml:"capacity"`
}

// LoggingConfig configures structured logging.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		LLM: LLMConfig{
			Model:           "gemini-2.5-flash-lite",
			BaseURL:         "https://generativelanguage.googleapis.com/v1beta",
			Timeout:         "2m",
			MaxOutputTokens: 8192,
		},
		Search: SearchConfig{
			Enabled: true,
		},
		History: HistoryConfig{
			DatabasePath: defaultDatabasePath(),
			Capacity:     20,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

func defaultDatabasePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "insight.db"
	}
	return filepath.Join(home, ".insight", "history.db")
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "insight.yaml"
	}
	return filepath.Join(home, ".insight", "config.yaml")
}

// Load reads configuration from a YAML file, falling back to defaults when
// the file does not exist, then applies environment overrides.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save writes configuration to a YAML file.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		c.LLM.APIKey = key
	}
	if model := os.Getenv("INSIGHT_MODEL"); model != "" {
		c.LLM.Model = model
	}
	if path := os.Getenv("INSIGHT_HISTORY_DB"); path != "" {
		c.History.DatabasePath = path
	}
}
