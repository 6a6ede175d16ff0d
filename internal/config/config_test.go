package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	for _, k := range []string{"PORT", "DATABASE_URL", "REDIS_URL", "RENDER_CONCURRENCY", "LOAD_TIMEOUT", "S3_BUCKET", "S3_ACCESS_KEY", "LOG_LEVEL", "DEFAULT_LANGUAGE"} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "templates", cfg.TemplatesDir)
	assert.Equal(t, 4, cfg.RenderConcurrency)
	assert.Equal(t, 30*time.Second, cfg.RenderQueueTimeout)
	assert.Equal(t, 30*time.Second, cfg.LoadTimeout)
	assert.Equal(t, 60*time.Second, cfg.PrintTimeout)
	assert.Equal(t, "auto", cfg.S3Region)
	assert.Equal(t, "PT", cfg.DefaultLanguage)
	assert.False(t, cfg.UploadEnabled())
	assert.Equal(t, slog.LevelInfo, cfg.SlogLevel())
}

func TestLoad_Overrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PORT", "8081")
	t.Setenv("RENDER_CONCURRENCY", "8")
	t.Setenv("LOAD_TIMEOUT", "45")
	t.Setenv("PRINT_TIMEOUT", "2m")
	t.Setenv("S3_BUCKET", "cvs")
	t.Setenv("S3_ENDPOINT", "http://localhost:9000")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("DEFAULT_LANGUAGE", "en")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8081", cfg.Port)
	assert.Equal(t, 8, cfg.RenderConcurrency)
	assert.Equal(t, 45*time.Second, cfg.LoadTimeout)
	assert.Equal(t, 2*time.Minute, cfg.PrintTimeout)
	assert.True(t, cfg.UploadEnabled())
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
	assert.Equal(t, "EN", cfg.DefaultLanguage)
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string][2]string{
		"port":        {"PORT", "http"},
		"concurrency": {"RENDER_CONCURRENCY", "0"},
		"log level":   {"LOG_LEVEL", "verbose"},
		"secret":      {"S3_ACCESS_KEY", "AKIA"},
	}
	for name, kv := range tests {
		t.Run(name, func(t *testing.T) {
			t.Chdir(t.TempDir())
			t.Setenv("S3_SECRET_KEY", "")
			t.Setenv(kv[0], kv[1])
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestGetEnvAsDuration_Garbage(t *testing.T) {
	t.Setenv("X_TIMEOUT", "soon")
	assert.Equal(t, 5*time.Second, getEnvAsDuration("X_TIMEOUT", 5*time.Second))
}
