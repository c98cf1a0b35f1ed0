package domain

import "context"

// Template selects the email layout and subject line for a submission
type Template string

const (
	TemplateContact Template = "contact"
	TemplateDemo    Template = "demo"
	TemplateAbout   Template = "about"
)

// OrDefault returns t, or TemplateContact when t is empty.
func (t Template) OrDefault() Template {
	if t == "" {
		return TemplateContact
	}
	return t
}

// ThankYou is the message shown to the visitor after an accepted submission.
func (t Template) ThankYou() string {
	switch t {
	case TemplateDemo:
		return "Thank you! Your demo request has been received. We'll reach out shortly to confirm a time."
	default:
		return "Thank you! Your message has been sent. We'll get back to you shortly."
	}
}

// SubmissionMeta is page context reported by the browser
type SubmissionMeta struct {
	Referrer  string `json:"referrer" validate:"max=2048"`
	PageURL   string `json:"page_url" validate:"max=2048"`
	Timestamp string `json:"timestamp" validate:"max=64"`
}

// Submission is the decoded body of POST /api/contact. It lives for one request.
type Submission struct {
	Name          string   `json:"name" validate:"required,min=3,max=100"`
	Email         string   `json:"email" validate:"required,max=254,loose_email"`
	Phone         string   `json:"phone" validate:"max=100"`
	Company       string   `json:"company" validate:"max=200"`
	Role          string   `json:"role" validate:"max=200"`
	Message       string   `json:"message" validate:"required,min=5,max=5000"`
	Template      Template `json:"template" validate:"omitempty,oneof=contact demo about"`
	MonthlyClaims string   `json:"monthly_claims" validate:"max=100"`
	PreferredTime string   `json:"preferred_time" validate:"max=100"`

	VerificationToken string `json:"verificationToken"`
	// Older widget integrations post the raw Turnstile field name
	TurnstileResponse string `json:"cf-turnstile-response"`

	Honeypot       string `json:"honeypot"`
	HoneypotLegacy string `json:"website_hp"`

	Meta       *SubmissionMeta `json:"meta" validate:"omitempty"`
	LegacyMeta *SubmissionMeta `json:"_meta" validate:"omitempty"`
}

// Token returns the bot-verification token under whichever field name was used.
func (s *Submission) Token() string {
	if s.VerificationToken != "" {
		return s.VerificationToken
	}
	return s.TurnstileResponse
}

// IsBot reports whether a hidden honeypot field was filled in.
func (s *Submission) IsBot() bool {
	return s.Honeypot != "" || s.HoneypotLegacy != ""
}

// PageMeta returns the page context, preferring "meta" over "_meta".
func (s *Submission) PageMeta() SubmissionMeta {
	if s.Meta != nil {
		return *s.Meta
	}
	if s.LegacyMeta != nil {
		return *s.LegacyMeta
	}
	return SubmissionMeta{}
}

// ClientInfo is derived from the connection, never from the body
type ClientInfo struct {
	IP        string
	UserAgent string
	RequestID string
}

// ContactUsecase defines the interface for contact form operations
type ContactUsecase interface {
	// Submit validates, verifies and forwards a submission as email.
	// Rejections are returned as *apperror.AppError.
	Submit(ctx context.Context, sub *Submission, client ClientInfo) error
}

// TokenVerifier checks bot-verification tokens
type TokenVerifier interface {
	// Enabled is false when no server secret is configured.
	Enabled() bool
	Verify(ctx context.Context, token, remoteIP string) error
}
