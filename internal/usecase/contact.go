package usecase

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"agentai-website-api/internal/domain"
	"agentai-website-api/pkg/apperror"
	"agentai-website-api/pkg/email"
	"agentai-website-api/pkg/security"
	"agentai-website-api/pkg/validation"

	"github.com/go-playground/validator/v10"
)

const (
	msgVerificationFailed = "Verification failed"
	msgUnavailable        = "Service temporarily unavailable"
	msgSendFailed         = "Failed to send message. Please try again later."
)

// MailSettings are the fixed envelope fields of every notification
type MailSettings struct {
	From string
	To   []string
}

type contactUsecase struct {
	validate *validator.Validate
	verifier domain.TokenVerifier
	sender   email.Sender
	renderer *email.Renderer
	secLog   *security.SecurityLogger
	mail     MailSettings
	now      func() time.Time
}

// NewContactUsecase creates a new contact usecase
func NewContactUsecase(
	validate *validator.Validate,
	verifier domain.TokenVerifier,
	sender email.Sender,
	renderer *email.Renderer,
	secLog *security.SecurityLogger,
	mail MailSettings,
) domain.ContactUsecase {
	if secLog == nil {
		secLog = security.NewNopLogger()
	}
	return &contactUsecase{
		validate: validate,
		verifier: verifier,
		sender:   sender,
		renderer: renderer,
		secLog:   secLog,
		mail:     mail,
		now:      time.Now,
	}
}

// Submit runs honeypot, validation, verification, then renders and sends.
func (uc *contactUsecase) Submit(ctx context.Context, sub *domain.Submission, client domain.ClientInfo) error {
	subject := security.Subject{
		Email:     strings.TrimSpace(sub.Email),
		IP:        client.IP,
		UserAgent: client.UserAgent,
		RequestID: client.RequestID,
	}

	// Bots get the same answer as people so they learn nothing
	if sub.IsBot() {
		uc.secLog.LogHoneypotTriggered(ctx, subject)
		return nil
	}

	normalize(sub)

	if err := uc.validate.Struct(sub); err != nil {
		violations := validation.FormatValidationErrors(err)
		uc.secLog.LogValidationFailed(ctx, subject, violations)
		return apperror.BadRequest(strings.Join(violations, "; "))
	}

	if uc.verifier.Enabled() {
		token := sub.Token()
		if token == "" {
			uc.secLog.LogVerificationFailed(ctx, subject, "missing token")
			return apperror.BadRequest(msgVerificationFailed)
		}
		if err := uc.verifier.Verify(ctx, token, client.IP); err != nil {
			uc.secLog.LogVerificationFailed(ctx, subject, err.Error())
			return apperror.New(http.StatusBadRequest, msgVerificationFailed, err)
		}
	}

	if !uc.sender.IsConfigured() {
		return apperror.ServiceUnavailable(msgUnavailable,
			fmt.Errorf("%s sender: %w", uc.sender.Provider(), email.ErrNotConfigured))
	}

	rendered, err := uc.renderer.Render(BuildEmailData(sub, client, uc.now()))
	if err != nil {
		return apperror.New(http.StatusInternalServerError, msgSendFailed, fmt.Errorf("render email: %w", err))
	}

	msg := &email.Message{
		From:    uc.mail.From,
		To:      uc.mail.To,
		ReplyTo: sub.Email,
		Subject: rendered.Subject,
		HTML:    rendered.HTML,
	}
	if err := uc.sender.Send(ctx, msg); err != nil {
		uc.secLog.LogDeliveryFailed(ctx, subject, uc.sender.Provider(), err.Error())
		return apperror.New(http.StatusInternalServerError, msgSendFailed, fmt.Errorf("send contact email: %w", err))
	}

	uc.secLog.LogSubmissionAccepted(ctx, subject, string(sub.Template.OrDefault()))
	return nil
}

// BuildEmailData maps a validated submission onto the email template data.
// Demo-only and role fields are passed only for the templates that show them.
func BuildEmailData(sub *domain.Submission, client domain.ClientInfo, received time.Time) email.ContactEmailData {
	tmpl := sub.Template.OrDefault()
	meta := sub.PageMeta()

	data := email.ContactEmailData{
		Template:  string(tmpl),
		Name:      sub.Name,
		Email:     sub.Email,
		Phone:     sub.Phone,
		Company:   sub.Company,
		Message:   sub.Message,
		Referrer:  meta.Referrer,
		PageURL:   meta.PageURL,
		Timestamp: meta.Timestamp,
		Received:  received,
		IP:        client.IP,
		UserAgent: client.UserAgent,
		RequestID: client.RequestID,
	}

	switch tmpl {
	case domain.TemplateDemo:
		data.Role = sub.Role
		data.MonthlyClaims = sub.MonthlyClaims
		data.PreferredTime = sub.PreferredTime
	case domain.TemplateAbout:
		data.Role = sub.Role
	}
	return data
}

func normalize(sub *domain.Submission) {
	sub.Name = strings.TrimSpace(sub.Name)
	sub.Email = strings.TrimSpace(sub.Email)
	sub.Phone = strings.TrimSpace(sub.Phone)
	sub.Company = strings.TrimSpace(sub.Company)
	sub.Role = strings.TrimSpace(sub.Role)
	sub.Message = strings.TrimSpace(sub.Message)
	sub.MonthlyClaims = strings.TrimSpace(sub.MonthlyClaims)
	sub.PreferredTime = strings.TrimSpace(sub.PreferredTime)
	sub.Template = domain.Template(strings.ToLower(strings.TrimSpace(string(sub.Template))))
	sub.VerificationToken = strings.TrimSpace(sub.VerificationToken)
	sub.TurnstileResponse = strings.TrimSpace(sub.TurnstileResponse)

	for _, m := range []*domain.SubmissionMeta{sub.Meta, sub.LegacyMeta} {
		if m == nil {
			continue
		}
		m.Referrer = strings.TrimSpace(m.Referrer)
		m.PageURL = strings.TrimSpace(m.PageURL)
		m.Timestamp = strings.TrimSpace(m.Timestamp)
	}
}
