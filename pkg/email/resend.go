package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultResendURL is the Resend send-email endpoint
const DefaultResendURL = "https://api.resend.com/emails"

// ResendSender sends through the Resend HTTP API
type ResendSender struct {
	apiKey string
	apiURL string
	client *http.Client
}

type resendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	ReplyTo string   `json:"reply_to,omitempty"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

func NewResendSender(apiKey, apiURL string, timeout time.Duration) *ResendSender {
	if apiURL == "" {
		apiURL = DefaultResendURL
	}
	return &ResendSender{
		apiKey: apiKey,
		apiURL: apiURL,
		client: &http.Client{Timeout: timeout},
	}
}

func (s *ResendSender) Provider() string {
	return ProviderResend
}

func (s *ResendSender) IsConfigured() bool {
	return s.apiKey != ""
}

// Send posts msg to Resend. Any non-2xx answer becomes a *ProviderError.
func (s *ResendSender) Send(ctx context.Context, msg *Message) error {
	if !s.IsConfigured() {
		return ErrNotConfigured
	}

	payload, err := json.Marshal(resendRequest{
		From:    msg.From,
		To:      msg.To,
		ReplyTo: msg.ReplyTo,
		Subject: msg.Subject,
		HTML:    msg.HTML,
	})
	if err != nil {
		return fmt.Errorf("resend: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("resend: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("resend: send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 8<<10))
		return &ProviderError{
			Provider:   ProviderResend,
			StatusCode: resp.StatusCode,
			Body:       string(body),
		}
	}

	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}
