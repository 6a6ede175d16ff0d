package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Port        string `validate:"required,numeric"`
	DatabaseURL string `validate:"omitempty,url"`
	RedisURL    string `validate:"omitempty,url"`
	LogLevel    string `validate:"oneof=debug info warn error"`

	TemplatesDir    string
	DefaultLanguage string `validate:"required,alpha,max=5"`

	// Render
	ChromePath         string
	RenderConcurrency  int           `validate:"min=1,max=64"`
	RenderQueueTimeout time.Duration `validate:"min=0"`
	LoadTimeout        time.Duration `validate:"gt=0"`
	PrintTimeout       time.Duration `validate:"gt=0"`
	TemplateCacheTTL   time.Duration `validate:"min=0"`

	// Object storage
	S3Bucket    string
	S3Region    string
	S3Endpoint  string `validate:"omitempty,url"`
	S3AccessKey string
	S3SecretKey string `validate:"required_with=S3AccessKey"`
	S3PublicURL string `validate:"omitempty,url"`
}

var validate = validator.New()

// Load reads .env when present, then the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to read .env", "error", err)
	}

	cfg := &Config{
		Port:        getEnv("PORT", "3000"),
		DatabaseURL: getEnv("DATABASE_URL", ""),
		RedisURL:    getEnv("REDIS_URL", ""),
		LogLevel:    strings.ToLower(getEnv("LOG_LEVEL", "info")),

		TemplatesDir:    getEnv("TEMPLATES_DIR", "templates"),
		DefaultLanguage: strings.ToUpper(getEnv("DEFAULT_LANGUAGE", "PT")),

		ChromePath:         getEnv("CHROME_PATH", ""),
		RenderConcurrency:  getEnvAsInt("RENDER_CONCURRENCY", 4),
		RenderQueueTimeout: getEnvAsDuration("RENDER_QUEUE_TIMEOUT", 30*time.Second),
		LoadTimeout:        getEnvAsDuration("LOAD_TIMEOUT", 30*time.Second),
		PrintTimeout:       getEnvAsDuration("PRINT_TIMEOUT", 60*time.Second),
		TemplateCacheTTL:   getEnvAsDuration("TEMPLATE_CACHE_TTL", time.Hour),

		S3Bucket:    getEnv("S3_BUCKET", ""),
		S3Region:    getEnv("S3_REGION", "auto"),
		S3Endpoint:  getEnv("S3_ENDPOINT", ""),
		S3AccessKey: getEnv("S3_ACCESS_KEY", ""),
		S3SecretKey: getEnv("S3_SECRET_KEY", ""),
		S3PublicURL: getEnv("S3_PUBLIC_URL", ""),
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// UploadEnabled reports whether rendered PDFs should be pushed to a bucket.
func (c *Config) UploadEnabled() bool {
	return c.S3Bucket != ""
}

// SlogLevel maps LogLevel to a slog level.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsDuration accepts Go durations ("45s") or plain seconds ("45").
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}
