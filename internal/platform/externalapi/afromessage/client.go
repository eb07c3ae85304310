package afromessage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"orderup_backend/internal/platform/externalapi/afromessage/dto"
	"orderup_backend/internal/shared/ratelimiter"
)

const (
	codeLength = "6"
	// codeTypeNumeric asks the gateway for digits only.
	codeTypeNumeric = "0"
	// challengeTTL is in seconds and matches the stored OTP expiry.
	challengeTTL = "300"

	challengeMessage = "Your OrderUp verification code is {code}"
)

// Client calls the AfroMessage challenge and send endpoints.
type Client struct {
	cfg     Config
	client  *http.Client
	limiter ratelimiter.Limiter
}

// NewClient creates a Client. limiter may be nil.
func NewClient(cfg Config, client *http.Client, limiter ratelimiter.Limiter) *Client {
	return &Client{cfg: cfg, client: client, limiter: limiter}
}

// SendChallenge asks the gateway to generate a 6-digit code and text it to phone.
func (c *Client) SendChallenge(ctx context.Context, phone string) (string, string, error) {
	q := url.Values{}
	q.Set("from", c.cfg.SenderID)
	q.Set("to", phone)
	q.Set("message", challengeMessage)
	q.Set("len", codeLength)
	q.Set("t", codeTypeNumeric)
	q.Set("ttl", challengeTTL)

	body, err := c.get(ctx, "/api/challenge", q)
	if err != nil {
		return "", "", err
	}
	if body.Response.Code == "" {
		return "", "", errors.New("afromessage: challenge response has no code")
	}
	return body.Response.Code, body.Response.VerificationID, nil
}

// SendCode texts a caller-generated code to phone.
func (c *Client) SendCode(ctx context.Context, phone, code string) error {
	q := url.Values{}
	q.Set("from", c.cfg.SenderID)
	q.Set("to", phone)
	q.Set("message", strings.ReplaceAll(challengeMessage, "{code}", code))

	_, err := c.get(ctx, "/api/send", q)
	return err
}

func (c *Client) get(ctx context.Context, path string, q url.Values) (*dto.Envelope, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	u := fmt.Sprintf("%s%s?%s", strings.TrimRight(c.cfg.BaseURL, "/"), path, q.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("afromessage http %d", res.StatusCode)
	}

	var body dto.Envelope
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, err
	}
	if body.Acknowledge != "success" {
		return nil, fmt.Errorf("afromessage: %s", strings.Join(body.Response.Errors, "; "))
	}
	return &body, nil
}
