package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"GEMINI_API_KEY", "GEMINI_MODEL", "OPENAI_API_KEY", "OPENAI_MODEL",
		"OPENAI_ENABLE_FALLBACK", "BIRD2MD_MAX_CONCURRENCY",
		"BIRD2MD_TRANSLATE_TIMEOUT_SECONDS", "BIRD2MD_MIN_DETECT_RUNES",
		"BIRD2MD_REDIS_ADDR", "LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Empty(t, cfg.Translation.GeminiAPIKey)
	assert.True(t, cfg.Translation.EnableFallback)
	assert.Equal(t, 8, cfg.Translation.MaxConcurrency)
	assert.Equal(t, 15*time.Second, cfg.Translation.Timeout)
	assert.Equal(t, 12, cfg.Translation.MinDetectRunes)
	assert.Empty(t, cfg.Redis.Addr)
	assert.Equal(t, 24*time.Hour, cfg.Redis.TTL)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("OPENAI_ENABLE_FALLBACK", "false")
	t.Setenv("BIRD2MD_MAX_CONCURRENCY", "3")
	t.Setenv("BIRD2MD_TRANSLATE_TIMEOUT_SECONDS", "40")
	t.Setenv("BIRD2MD_REDIS_ADDR", "localhost:6379")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "test-key", cfg.Translation.GeminiAPIKey)
	assert.False(t, cfg.Translation.EnableFallback)
	assert.Equal(t, 3, cfg.Translation.MaxConcurrency)
	assert.Equal(t, 40*time.Second, cfg.Translation.Timeout)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadIgnoresMalformedInt(t *testing.T) {
	t.Setenv("BIRD2MD_MAX_CONCURRENCY", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Translation.MaxConcurrency)
}

func TestValidateRejectsNonPositiveConcurrency(t *testing.T) {
	t.Setenv("BIRD2MD_MAX_CONCURRENCY", "0")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BIRD2MD_MAX_CONCURRENCY")
}

func TestApplyFileOverrides(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "env-key")
	t.Setenv("BIRD2MD_MAX_CONCURRENCY", "8")

	cfg, err := Load()
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "bird2md.yaml")
	yamlBody := `
translation:
  gemini_model: gemini-2.5-pro
  max_concurrency: 2
redis:
  addr: cache:6379
  ttl_minutes: 30
logging:
  level: warn
`
	require.NoError(t, os.WriteFile(path, []byte(yamlBody), 0o644))
	require.NoError(t, cfg.ApplyFile(path))

	// File values win where set, env values survive where the file is silent.
	assert.Equal(t, "gemini-2.5-pro", cfg.Translation.GeminiModel)
	assert.Equal(t, 2, cfg.Translation.MaxConcurrency)
	assert.Equal(t, "env-key", cfg.Translation.GeminiAPIKey)
	assert.Equal(t, "cache:6379", cfg.Redis.Addr)
	assert.Equal(t, 30*time.Minute, cfg.Redis.TTL)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, 15*time.Second, cfg.Translation.Timeout)
}

func TestApplyFileMissing(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	err = cfg.ApplyFile(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}
