package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()
	assert.Equal(t, 8087, cfg.Server.Port)
	assert.Equal(t, "loopback", cfg.Server.Bind)
	assert.Equal(t, "paragony.db", cfg.Database.Path)
	assert.Equal(t, "gemini", cfg.Assistant.Provider)
	assert.Equal(t, "gemini-2.5-flash-lite", cfg.Assistant.Model)
	assert.Equal(t, 2048, cfg.Assistant.MaxTokens)
	assert.Equal(t, 60, cfg.Assistant.TimeoutSeconds)
	assert.True(t, cfg.Docs.DocsEnabled())
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load("/nonexistent/path/config.yaml")
	require.NoError(t, err)
	assert.Equal(t, 8087, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadValidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	yaml := `
server:
  port: 9999
  bind: lan
database:
  path: /var/lib/paragony/app.db
assistant:
  model: gemini-2.5-pro
  apiKey: sekret
  maxTokens: 1024
  temperature: 0.7
docs:
  enabled: false
logging:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9999, cfg.Server.Port)
	assert.Equal(t, "lan", cfg.Server.Bind)
	assert.Equal(t, "/var/lib/paragony/app.db", cfg.Database.Path)
	assert.Equal(t, "gemini-2.5-pro", cfg.Assistant.Model)
	assert.Equal(t, "sekret", cfg.Assistant.APIKey)
	assert.Equal(t, 1024, cfg.Assistant.MaxTokens)
	require.NotNil(t, cfg.Assistant.Temperature)
	assert.InDelta(t, 0.7, *cfg.Assistant.Temperature, 1e-9)
	assert.False(t, cfg.Docs.DocsEnabled())
	assert.Equal(t, "debug", cfg.Logging.Level)

	// Sections absent from the file keep their defaults.
	assert.Equal(t, "gemini", cfg.Assistant.Provider)
	assert.Equal(t, 60, cfg.Assistant.TimeoutSeconds)
}

func TestLoadInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [broken"), 0o600))

	_, err := Load(path)
	require.Error(t, err)
	var cfgErr *ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("PARAGONY_PORT", "7070")
	t.Setenv("PARAGONY_DB_PATH", "/tmp/override.db")
	t.Setenv("PARAGONY_LOG_LEVEL", "ERROR")

	cfg, err := Load("/nonexistent/config.yaml")
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "/tmp/override.db", cfg.Database.Path)
	assert.Equal(t, "error", cfg.Logging.Level)
}

func TestAPIKeyEnvExpansion(t *testing.T) {
	t.Setenv("GEMINI_KEY", "real-key-value")

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := "assistant:\n  apiKey: ${GEMINI_KEY}\n"
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "real-key-value", cfg.Assistant.APIKey)
}

func TestAPIKeyEnvExpansionUnset(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := "assistant:\n  apiKey: ${DEFINITELY_NOT_SET_ANYWHERE}\n"
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "${DEFINITELY_NOT_SET_ANYWHERE}", cfg.Assistant.APIKey)
}

func TestLoadRawAndSaveRaw(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	raw := map[string]any{
		"server": map[string]any{"port": 9000},
	}
	require.NoError(t, SaveRaw(path, raw))

	loaded, err := LoadRaw(path)
	require.NoError(t, err)
	server, ok := loaded["server"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 9000, server["port"])
}

func TestLoadRawMissing(t *testing.T) {
	raw, err := LoadRaw("/nonexistent/config.yaml")
	require.NoError(t, err)
	assert.Empty(t, raw)
}
