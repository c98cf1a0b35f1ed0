package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Port     string `env:"PORT" envDefault:"8080"`
	GinMode  string `env:"GIN_MODE" envDefault:"debug"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"INFO"`

	// Client IP resolution. TrustedPlatform is a header name such as CF-Connecting-IP.
	TrustedProxies  []string `env:"TRUSTED_PROXIES" envSeparator:","`
	TrustedPlatform string   `env:"TRUSTED_PLATFORM"`

	// First entry is the canonical origin used for unknown callers.
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"https://agentai.app,https://www.agentai.app,http://localhost:5173"`

	// Email provider: resend, ses or smtp
	EmailProvider string   `env:"EMAIL_PROVIDER" envDefault:"resend"`
	MailFrom      string   `env:"MAIL_FROM" envDefault:"AgentAI Website <noreply@agentai.biz>"`
	MailTo        []string `env:"MAIL_TO" envSeparator:"," envDefault:"contact@agentai.biz"`

	ResendAPIKey string `env:"RESEND_API_KEY"`
	ResendAPIURL string `env:"RESEND_API_URL" envDefault:"https://api.resend.com/emails"`

	SESRegion          string `env:"SES_REGION"`
	SESAccessKeyID     string `env:"SES_ACCESS_KEY_ID"`
	SESSecretAccessKey string `env:"SES_SECRET_ACCESS_KEY"`

	SMTPHost     string `env:"SMTP_HOST"`
	SMTPPort     int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUsername string `env:"SMTP_USERNAME"`
	SMTPPassword string `env:"SMTP_PASSWORD"`

	// Bot verification (Cloudflare Turnstile). Empty secret disables the check.
	TurnstileSecretKey string `env:"TURNSTILE_SECRET_KEY"`
	TurnstileVerifyURL string `env:"TURNSTILE_VERIFY_URL" envDefault:"https://challenges.cloudflare.com/turnstile/v0/siteverify"`

	UpstreamTimeout time.Duration `env:"UPSTREAM_TIMEOUT" envDefault:"10s"`
	DisplayTimezone string        `env:"DISPLAY_TIMEZONE" envDefault:"America/New_York"`

	SecurityLogFile string `env:"SECURITY_LOG_FILE"`
	EnableSwagger   bool   `env:"ENABLE_SWAGGER" envDefault:"true"`
}

func LoadConfig() (*Config, error) {
	// .env only exists locally; a missing file is fine
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	cfg.EmailProvider = strings.ToLower(strings.TrimSpace(cfg.EmailProvider))
	cfg.AllowedOrigins = trimAll(cfg.AllowedOrigins)
	cfg.MailTo = trimAll(cfg.MailTo)
	cfg.TrustedProxies = trimAll(cfg.TrustedProxies)

	if len(cfg.AllowedOrigins) == 0 {
		return nil, fmt.Errorf("CORS_ALLOWED_ORIGINS must name at least one origin")
	}
	if len(cfg.MailTo) == 0 {
		return nil, fmt.Errorf("MAIL_TO must name at least one recipient")
	}

	// Missing secrets degrade behaviour, they never stop the process
	if cfg.TurnstileSecretKey == "" {
		log.Println("WARNING: TURNSTILE_SECRET_KEY not configured. Bot verification is disabled.")
	}
	if cfg.EmailProvider == "resend" && cfg.ResendAPIKey == "" {
		log.Println("WARNING: RESEND_API_KEY not configured. Contact form will answer 503.")
	}

	return cfg, nil
}

// IsProduction reports whether gin runs in release mode.
func (c *Config) IsProduction() bool {
	return c.GinMode == "release"
}

func trimAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimRight(strings.TrimSpace(v), "/"); v != "" {
			out = append(out, v)
		}
	}
	return out
}
