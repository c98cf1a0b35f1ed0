// Package email renders contact notifications and hands them to a
// transactional email provider.
package email

import (
	"context"
	"errors"
	"fmt"
	"time"
)

const (
	ProviderResend = "resend"
	ProviderSES    = "ses"
	ProviderSMTP   = "smtp"
)

// ErrNotConfigured is returned by Send when the provider lacks credentials
var ErrNotConfigured = errors.New("email service is not configured")

// Message is a single outbound HTML email
type Message struct {
	From    string
	To      []string
	ReplyTo string
	Subject string
	HTML    string
}

// Sender delivers messages through one provider
type Sender interface {
	Provider() string
	IsConfigured() bool
	Send(ctx context.Context, msg *Message) error
}

// ProviderError carries the provider's rejection. Body is for server logs only.
type ProviderError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s: provider returned status %d: %s", e.Provider, e.StatusCode, e.Body)
}

// Config selects and configures a provider
type Config struct {
	Provider string
	Timeout  time.Duration

	ResendAPIKey string
	ResendAPIURL string

	SESRegion          string
	SESAccessKeyID     string
	SESSecretAccessKey string

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
}

// NewSender builds the Sender named by cfg.Provider. A provider with missing
// credentials is still returned; its IsConfigured reports false.
func NewSender(ctx context.Context, cfg Config) (Sender, error) {
	switch cfg.Provider {
	case "", ProviderResend:
		return NewResendSender(cfg.ResendAPIKey, cfg.ResendAPIURL, cfg.Timeout), nil
	case ProviderSES:
		s, err := NewSESSender(ctx, cfg.SESRegion, cfg.SESAccessKeyID, cfg.SESSecretAccessKey)
		if err != nil {
			return nil, err
		}
		return s, nil
	case ProviderSMTP:
		return NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.Timeout), nil
	default:
		return nil, fmt.Errorf("unknown email provider %q", cfg.Provider)
	}
}
