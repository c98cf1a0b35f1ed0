package usecase

import (
	"context"

	"agentai-website-api/internal/domain"
	"agentai-website-api/pkg/email"
)

// HealthStatus reports readiness without exposing any secret
type HealthStatus struct {
	Status              string `json:"status"`
	EmailProvider       string `json:"email_provider"`
	EmailConfigured     bool   `json:"email_configured"`
	VerificationEnabled bool   `json:"verification_enabled"`
}

type HealthUsecase interface {
	Check(ctx context.Context) HealthStatus
}

type healthUsecase struct {
	sender   email.Sender
	verifier domain.TokenVerifier
}

func NewHealthUsecase(sender email.Sender, verifier domain.TokenVerifier) HealthUsecase {
	return &healthUsecase{sender: sender, verifier: verifier}
}

// Check is "ok" when mail can be sent and "degraded" when the form would answer 503.
func (u *healthUsecase) Check(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Status:              "ok",
		EmailProvider:       u.sender.Provider(),
		EmailConfigured:     u.sender.IsConfigured(),
		VerificationEnabled: u.verifier.Enabled(),
	}
	if !status.EmailConfigured {
		status.Status = "degraded"
	}
	return status
}
