package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	t.Setenv("JADOO_CONFIG_DIR", filepath.Join(home, "cfg"))
	t.Setenv("JADOO_DATA_DIR", filepath.Join(home, "data"))
	for _, name := range []string{
		"OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY",
		"JADOO_LISTEN", "JADOO_ENDPOINT", "JADOO_PROVIDER", "JADOO_MODEL",
		"JADOO_LOG_LEVEL", "JADOO_DEBUG",
	} {
		t.Setenv(name, "")
	}
	return home
}

func TestLoadFirstRunWritesTemplates(t *testing.T) {
	home := isolate(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(home, "cfg", "settings.toml"))
	assert.FileExists(t, filepath.Join(home, "data", "config.toml"))

	assert.Equal(t, filepath.Join(home, "data"), cfg.DataDir())
	assert.Equal(t, "openai", cfg.Provider.Type)
	assert.Equal(t, "gpt-4o-mini", cfg.Provider.Model)
	assert.Equal(t, 1000, cfg.Provider.MaxTokens)
	assert.InDelta(t, 0.7, cfg.Provider.Temperature, 1e-9)
	assert.Equal(t, "https://api.openai.com/v1", cfg.Provider.BaseURL)
	assert.Equal(t, "127.0.0.1:3000", cfg.Server.Listen)
	assert.Equal(t, "en-US", cfg.Voice.Locale)
	assert.False(t, cfg.HasAPIKey())

	info, err := os.Stat(cfg.DataDir())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0700), info.Mode().Perm())
}

func TestLoadUserConfigAndEnv(t *testing.T) {
	home := isolate(t)
	dataDir := filepath.Join(home, "data")
	require.NoError(t, os.MkdirAll(dataDir, 0700))
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "config.toml"), []byte(`
log_level = "debug"

[server]
listen = ":8080"

[provider]
type = "anthropic"
max_tokens = 500
`), 0600))

	t.Setenv("ANTHROPIC_API_KEY", "sk-ant")
	t.Setenv("JADOO_ENDPOINT", "http://example.test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Listen)
	assert.Equal(t, "anthropic", cfg.Provider.Type)
	assert.Equal(t, 500, cfg.Provider.MaxTokens)
	assert.Equal(t, "claude-3-5-haiku-latest", cfg.Provider.Model)
	assert.Equal(t, "sk-ant", cfg.APIKey)
	assert.True(t, cfg.HasAPIKey())
	assert.Equal(t, "http://example.test", cfg.Client.Endpoint)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestOllamaNeedsNoKey(t *testing.T) {
	isolate(t)
	t.Setenv("JADOO_PROVIDER", "ollama")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.HasAPIKey())
	assert.Equal(t, "http://localhost:11434", cfg.Provider.BaseURL)
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"DEBUG", zerolog.DebugLevel},
		{" warn ", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"", zerolog.InfoLevel},
		{"verbose", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLogLevel(tt.in))
		})
	}
}

func TestInitDebugLog(t *testing.T) {
	dir := t.TempDir()

	_, closer := InitDebugLog(dir, false, "info")
	require.NoError(t, closer.Close())
	assert.NoFileExists(t, filepath.Join(dir, "debug.log"))

	logger, closer := InitDebugLog(dir, true, "info")
	logger.Info().Msg("hello")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(filepath.Join(dir, "debug.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello")
}

func TestExpandPath(t *testing.T) {
	t.Setenv("HOME", "/home/tester")
	assert.Equal(t, "/home/tester/x", ExpandPath("~/x"))
	assert.Equal(t, "", ExpandPath(""))
}
