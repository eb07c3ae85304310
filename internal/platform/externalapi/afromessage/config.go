// Package afromessage delivers OTP codes through the AfroMessage SMS gateway.
package afromessage

import (
	"os"
	"strconv"
	"time"
)

const defaultBaseURL = "https://api.afromessage.com"

// Config holds configuration for the AfroMessage client.
type Config struct {
	APIKey   string
	SenderID string
	BaseURL  string
	Timeout  time.Duration
	// RatePerMinute bounds outbound calls; 0 disables throttling.
	RatePerMinute int
}

// LoadConfig loads AfroMessage configuration from environment variables.
func LoadConfig() Config {
	cfg := Config{
		APIKey:        os.Getenv("AFROMESSAGE_API_KEY"),
		SenderID:      os.Getenv("AFROMESSAGE_SENDER_ID"),
		BaseURL:       os.Getenv("AFROMESSAGE_BASE_URL"),
		Timeout:       10 * time.Second,
		RatePerMinute: 60,
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if n, err := strconv.Atoi(os.Getenv("AFROMESSAGE_RATE_PER_MINUTE")); err == nil && n >= 0 {
		cfg.RatePerMinute = n
	}
	return cfg
}

// Enabled reports whether an API key is configured.
func (c Config) Enabled() bool {
	return c.APIKey != ""
}
