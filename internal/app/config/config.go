// Package config assembles the process configuration from the environment.
package config

import (
	"errors"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"orderup_backend/internal/platform/db"
	"orderup_backend/internal/platform/externalapi/afromessage"
	jwtmw "orderup_backend/internal/platform/jwt"
	"orderup_backend/internal/platform/redis"
	"orderup_backend/internal/platform/storage"
)

// Config is the whole process configuration. It is built once in main and passed down explicitly.
type Config struct {
	Port           string
	GinMode        string
	AllowedOrigins []string

	DB      db.Config
	JWT     jwtmw.Config
	Redis   redis.Config
	SMS     afromessage.Config
	Storage storage.Config

	SessionTTL time.Duration
	CacheTTL   time.Duration
	// CleanupSchedule is the cron expression for purging expired sessions.
	CleanupSchedule string
}

// ErrMissingJWTSecret is returned when JWT_SECRET is unset.
var ErrMissingJWTSecret = errors.New("JWT_SECRET is not set")

// Load reads .env when present, then the environment.
func Load() (Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		slog.Info(".env not found; using system environment variables")
	}

	cfg := Config{
		Port:            envOr("PORT", "8080"),
		GinMode:         os.Getenv("GIN_MODE"),
		AllowedOrigins:  splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
		DB:              db.LoadConfigFromEnv(),
		JWT:             jwtmw.LoadConfigFromEnv(),
		Redis:           redis.LoadConfigFromEnv(),
		SMS:             afromessage.LoadConfig(),
		Storage:         storage.LoadConfigFromEnv(),
		SessionTTL:      durationOr("SESSION_TTL", 7*24*time.Hour),
		CacheTTL:        durationOr("CATALOG_CACHE_TTL", 5*time.Minute),
		CleanupSchedule: envOr("SESSION_CLEANUP_SCHEDULE", "@hourly"),
	}
	if cfg.JWT.Secret == "" {
		return Config{}, ErrMissingJWTSecret
	}
	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func durationOr(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		slog.Warn("ignoring invalid duration", "key", key, "value", v)
		return fallback
	}
	return d
}

// splitList parses a comma separated list, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
