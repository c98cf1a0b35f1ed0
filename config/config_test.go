package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("Should apply defaults", func(t *testing.T) {
		cfg, err := LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, "8080", cfg.Port)
		assert.Equal(t, "resend", cfg.EmailProvider)
		assert.Equal(t, []string{"https://agentai.app", "https://www.agentai.app", "http://localhost:5173"}, cfg.AllowedOrigins)
		assert.Equal(t, []string{"contact@agentai.biz"}, cfg.MailTo)
		assert.Equal(t, 10*time.Second, cfg.UpstreamTimeout)
		assert.Equal(t, "America/New_York", cfg.DisplayTimezone)
		assert.True(t, cfg.EnableSwagger)
	})

	t.Run("Should trim list entries and normalize the provider", func(t *testing.T) {
		t.Setenv("CORS_ALLOWED_ORIGINS", " https://agentai.app/ , ,https://staging.agentai.app")
		t.Setenv("MAIL_TO", "ops@agentai.biz, sales@agentai.biz")
		t.Setenv("EMAIL_PROVIDER", " SES ")
		t.Setenv("UPSTREAM_TIMEOUT", "3s")

		cfg, err := LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, []string{"https://agentai.app", "https://staging.agentai.app"}, cfg.AllowedOrigins)
		assert.Equal(t, []string{"ops@agentai.biz", "sales@agentai.biz"}, cfg.MailTo)
		assert.Equal(t, "ses", cfg.EmailProvider)
		assert.Equal(t, 3*time.Second, cfg.UpstreamTimeout)
	})

	t.Run("Should refuse an empty origin list", func(t *testing.T) {
		t.Setenv("CORS_ALLOWED_ORIGINS", " , ")

		_, err := LoadConfig()
		assert.Error(t, err)
	})

	t.Run("Should reject a malformed duration", func(t *testing.T) {
		t.Setenv("UPSTREAM_TIMEOUT", "soon")

		_, err := LoadConfig()
		assert.Error(t, err)
	})
}
