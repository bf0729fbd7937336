// Package recaptcha verifies reCAPTCHA v3 tokens against Google's siteverify endpoint.
package recaptcha

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"surveyapi/internal/config"
)

// Verifier checks a client token against a minimum score.
type Verifier interface {
	Verify(ctx context.Context, token string, threshold float64) bool
}

type siteVerifyResponse struct {
	Success    bool     `json:"success"`
	Score      float64  `json:"score"`
	Action     string   `json:"action"`
	Hostname   string   `json:"hostname"`
	ErrorCodes []string `json:"error-codes"`
}

// Client is the siteverify-backed Verifier. It is safe for concurrent use.
type Client struct {
	cfg  config.RecaptchaConfig
	http *http.Client
	log  zerolog.Logger
}

var _ Verifier = (*Client)(nil)

// New builds a Client whose outgoing requests are traced.
func New(cfg config.RecaptchaConfig, log zerolog.Logger) *Client {
	return &Client{
		cfg: cfg,
		http: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		log: log.With().Str("component", "recaptcha").Logger(),
	}
}

// Verify reports whether token is valid and scores at least threshold.
// Without configured keys every token passes.
func (c *Client) Verify(ctx context.Context, token string, threshold float64) bool {
	if !c.cfg.Configured() {
		c.log.Warn().Msg("reCAPTCHA keys are not configured, skipping verification")
		return true
	}

	form := url.Values{}
	form.Set("secret", c.cfg.SecretKey)
	form.Set("response", token)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.VerifyURL, strings.NewReader(form.Encode()))
	if err != nil {
		c.log.Error().Err(err).Msg("Error building reCAPTCHA request")
		return false
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Error().Err(err).Msg("Error verifying reCAPTCHA token")
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Error().Int("status", resp.StatusCode).Msg("reCAPTCHA HTTP error")
		return false
	}

	var body siteVerifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		c.log.Error().Err(err).Msg("Error decoding reCAPTCHA response")
		return false
	}

	if !body.Success {
		c.log.Error().Strs("error_codes", body.ErrorCodes).Msg("reCAPTCHA verification failed")
		return false
	}

	if body.Score < threshold {
		c.log.Error().
			Float64("score", body.Score).
			Float64("threshold", threshold).
			Msg("reCAPTCHA score below threshold")
		return false
	}

	return true
}
