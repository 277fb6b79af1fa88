package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"GOOGLE_API_KEY", "APP_GEMINI_KEY", "APP_MATCHER_BACKEND", "APP_LOCAL_MAX_TOKENS", "APP_LOG_LEVEL"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func writeYAML(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_MissingCredentialIsFatal(t *testing.T) {
	clearEnv(t)

	_, err := Load("")
	require.ErrorIs(t, err, ErrMissingCredential)
}

func TestLoad_GoogleAPIKeyFallback(t *testing.T) {
	clearEnv(t)
	t.Setenv("GOOGLE_API_KEY", "from-google-env")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "from-google-env", cfg.Gemini.Key)
	assert.Equal(t, BackendGemini, cfg.Matcher.Backend)
	assert.Equal(t, "gemini-2.0-flash", cfg.Gemini.Model)
}

func TestLoad_FileThenEnv(t *testing.T) {
	clearEnv(t)
	path := writeYAML(t, `
matcher:
  backend: local
  catalog: ./catalog.yaml
local:
  model: qwen2.5:7b
  max_tokens: 128
log_level: debug
`)
	t.Setenv("APP_LOCAL_MAX_TOKENS", "512")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, BackendLocal, cfg.Matcher.Backend)
	assert.Equal(t, "./catalog.yaml", cfg.Matcher.Catalog)
	assert.Equal(t, "qwen2.5:7b", cfg.Local.Model)
	assert.Equal(t, 512, cfg.Local.MaxTokens)
	assert.Equal(t, Debug, cfg.LogLevel)
	// untouched values keep their defaults
	assert.Equal(t, "http://localhost:11434/v1", cfg.Local.BaseURL)
	assert.Equal(t, 8000, cfg.Server.Port)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_MATCHER_BACKEND", "local")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, BackendLocal, cfg.Matcher.Backend)
}

func TestLoadWithOverrides_BeatsEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_MATCHER_BACKEND", "gemini")

	cfg, err := LoadWithOverrides("", map[string]any{"matcher.backend": BackendLocal})
	require.NoError(t, err, "local backend needs no key")
	assert.Equal(t, BackendLocal, cfg.Matcher.Backend)
}

func TestValidate_UnknownBackend(t *testing.T) {
	cfg := Default()
	cfg.Matcher.Backend = "claude"

	err := Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Backend")
}

func TestValidate_LocalNeedsNoKey(t *testing.T) {
	cfg := Default()
	cfg.Matcher.Backend = BackendLocal

	assert.NoError(t, Validate(cfg))
}

func TestEnvKey(t *testing.T) {
	cases := map[string]string{
		"APP_SERVER_PORT":      "server.port",
		"APP_LOCAL_MAX_TOKENS": "local.max_tokens",
		"APP_GEMINI_KEY":       "gemini.key",
		"APP_LOG_LEVEL":        "log_level",
		"APP_S3_ACCESS_KEY":    "s3.access_key",
	}
	for in, want := range cases {
		assert.Equal(t, want, envKey(in), in)
	}
}
