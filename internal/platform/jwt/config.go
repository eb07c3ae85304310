package jwtmw

import (
	"os"
	"time"
)

// EnvKeyJWTSecret is the environment variable holding the HMAC signing secret.
const EnvKeyJWTSecret = "JWT_SECRET"

const defaultAccessTTL = 15 * time.Minute

// Config holds the signing secret and access token lifetime.
type Config struct {
	Secret    string
	AccessTTL time.Duration
}

// LoadConfigFromEnv reads JWT_SECRET and JWT_ACCESS_TTL.
func LoadConfigFromEnv() Config {
	cfg := Config{
		Secret:    os.Getenv(EnvKeyJWTSecret),
		AccessTTL: defaultAccessTTL,
	}
	if v := os.Getenv("JWT_ACCESS_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.AccessTTL = d
		}
	}
	return cfg
}
