package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "gemini-2.5-flash-lite", cfg.LLM.Model)
	assert.Equal(t, 8192, cfg.LLM.MaxOutputTokens)
	assert.True(t, cfg.Search.Enabled)
	assert.Equal(t, 20, cfg.History.Capacity)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().LLM.Model, cfg.LLM.Model)
}

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
llm:
  model: gemini-2.5-pro
  timeout: 5m
search:
  enabled: false
history:
  capacity: 5
`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "gemini-2.5-pro", cfg.LLM.Model)
	assert.Equal(t, 5*time.Minute, cfg.LLM.TimeoutDuration())
	assert.False(t, cfg.Search.Enabled)
	assert.Equal(t, 5, cfg.History.Capacity)
	// Unspecified values keep defaults.
	assert.Equal(t, 8192, cfg.LLM.MaxOutputTokens)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("llm: [not a mapping"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "env-key")
	t.Setenv("INSIGHT_MODEL", "gemini-env")
	t.Setenv("INSIGHT_HISTORY_DB", "/tmp/env.db")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "env-key", cfg.LLM.APIKey)
	assert.Equal(t, "gemini-env", cfg.LLM.Model)
	assert.Equal(t, "/tmp/env.db", cfg.History.DatabasePath)
}

func TestEnvOverridesBeatFile(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "env-key")

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("llm:\n  api_key: file-key\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "env-key", cfg.LLM.APIKey)
}

func TestTimeoutDuration_Fallback(t *testing.T) {
	assert.Equal(t, 2*time.Minute, LLMConfig{}.TimeoutDuration())
	assert.Equal(t, 2*time.Minute, LLMConfig{Timeout: "bogus"}.TimeoutDuration())
	assert.Equal(t, 30*time.Second, LLMConfig{Timeout: "30s"}.TimeoutDuration())
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.LLM.Model = "gemini-custom"
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "gemini-custom", loaded.LLM.Model)
}
