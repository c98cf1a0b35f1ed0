// Package turnstile verifies Cloudflare Turnstile tokens against the siteverify API.
package turnstile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultVerifyURL is Cloudflare's siteverify endpoint
const DefaultVerifyURL = "https://challenges.cloudflare.com/turnstile/v0/siteverify"

var (
	ErrNotConfigured = errors.New("turnstile: secret key not configured")
	ErrMissingToken  = errors.New("turnstile: token is required")
)

// VerificationError is returned when siteverify answers success=false
type VerificationError struct {
	ErrorCodes []string
}

func (e *VerificationError) Error() string {
	if len(e.ErrorCodes) == 0 {
		return "turnstile: verification failed"
	}
	return "turnstile: verification failed: " + strings.Join(e.ErrorCodes, ", ")
}

// Result represents the siteverify response
type Result struct {
	Success     bool     `json:"success"`
	ChallengeTS string   `json:"challenge_ts"`
	Hostname    string   `json:"hostname"`
	Action      string   `json:"action"`
	CData       string   `json:"cdata"`
	ErrorCodes  []string `json:"error-codes,omitempty"`
}

// Client handles Turnstile verification
type Client struct {
	secretKey string
	verifyURL string
	client    *http.Client
}

// NewClient creates a verifier. An empty secretKey yields a disabled client.
func NewClient(secretKey, verifyURL string, timeout time.Duration) *Client {
	if verifyURL == "" {
		verifyURL = DefaultVerifyURL
	}
	return &Client{
		secretKey: secretKey,
		verifyURL: verifyURL,
		client:    &http.Client{Timeout: timeout},
	}
}

// Enabled reports whether a secret key is configured.
func (c *Client) Enabled() bool {
	return c.secretKey != ""
}

// Verify returns nil only when siteverify accepted the token.
func (c *Client) Verify(ctx context.Context, token, remoteIP string) error {
	_, err := c.Check(ctx, token, remoteIP)
	return err
}

// Check calls siteverify and returns the decoded result.
func (c *Client) Check(ctx context.Context, token, remoteIP string) (*Result, error) {
	if !c.Enabled() {
		return nil, ErrNotConfigured
	}
	if token == "" {
		return nil, ErrMissingToken
	}

	form := url.Values{}
	form.Set("secret", c.secretKey)
	form.Set("response", token)
	if remoteIP != "" {
		form.Set("remoteip", remoteIP)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.verifyURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("turnstile: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("turnstile: siteverify request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("turnstile: siteverify returned status %d", resp.StatusCode)
	}

	var result Result
	if err := json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&result); err != nil {
		return nil, fmt.Errorf("turnstile: decode response: %w", err)
	}

	if !result.Success {
		return &result, &VerificationError{ErrorCodes: result.ErrorCodes}
	}
	return &result, nil
}
