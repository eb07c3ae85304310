package di

import (
	"log/slog"
	"time"

	"orderup_backend/internal/feature/auth/usecase"
	"orderup_backend/internal/platform/externalapi/afromessage"
	infrahttp "orderup_backend/internal/platform/http"
	"orderup_backend/internal/shared/ratelimiter"
)

// NewOTPSender creates the AfroMessage client with its HTTP client and rate limiter.
// Without an API key codes are only logged.
func NewOTPSender(cfg afromessage.Config) usecase.OTPSender {
	if !cfg.Enabled() {
		slog.Warn("AFROMESSAGE_API_KEY is not set; OTP codes will be logged instead of sent")
		return afromessage.LogSender{}
	}
	httpClient := infrahttp.NewHTTPClient(cfg.Timeout)
	limiter := ratelimiter.NewRateLimiter(cfg.RatePerMinute, time.Minute)
	return afromessage.NewClient(cfg, httpClient, limiter)
}
