package email_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"agentai-website-api/pkg/email"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleMessage() *email.Message {
	return &email.Message{
		From:    "AgentAI Website <noreply@agentai.biz>",
		To:      []string{"contact@agentai.biz"},
		ReplyTo: "jordan@clinic.example",
		Subject: "New Contact: Jordan Smith",
		HTML:    "<p>hello</p>",
	}
}

func TestResendSenderSend(t *testing.T) {
	t.Run("Should post JSON with bearer auth", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "Bearer re_test", r.Header.Get("Authorization"))
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

			var body map[string]interface{}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "AgentAI Website <noreply@agentai.biz>", body["from"])
			assert.Equal(t, []interface{}{"contact@agentai.biz"}, body["to"])
			assert.Equal(t, "jordan@clinic.example", body["reply_to"])
			assert.Equal(t, "New Contact: Jordan Smith", body["subject"])
			assert.Equal(t, "<p>hello</p>", body["html"])

			_, _ = w.Write([]byte(`{"id":"email_123"}`))
		}))
		defer srv.Close()

		s := email.NewResendSender("re_test", srv.URL, time.Second)
		assert.NoError(t, s.Send(context.Background(), sampleMessage()))
	})

	t.Run("Should return ProviderError on non-2xx", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte(`{"name":"validation_error","message":"domain not verified"}`))
		}))
		defer srv.Close()

		s := email.NewResendSender("re_test", srv.URL, time.Second)
		err := s.Send(context.Background(), sampleMessage())

		var perr *email.ProviderError
		require.True(t, errors.As(err, &perr))
		assert.Equal(t, http.StatusUnprocessableEntity, perr.StatusCode)
		assert.Contains(t, perr.Body, "domain not verified")
	})

	t.Run("Should refuse to send without an API key", func(t *testing.T) {
		s := email.NewResendSender("", "", time.Second)
		assert.False(t, s.IsConfigured())
		assert.ErrorIs(t, s.Send(context.Background(), sampleMessage()), email.ErrNotConfigured)
	})
}

func TestNewSender(t *testing.T) {
	ctx := context.Background()

	t.Run("Should default to resend", func(t *testing.T) {
		s, err := email.NewSender(ctx, email.Config{ResendAPIKey: "re_test"})
		require.NoError(t, err)
		assert.Equal(t, email.ProviderResend, s.Provider())
		assert.True(t, s.IsConfigured())
	})

	t.Run("Should build an unconfigured SES sender without a region", func(t *testing.T) {
		s, err := email.NewSender(ctx, email.Config{Provider: email.ProviderSES})
		require.NoError(t, err)
		assert.Equal(t, email.ProviderSES, s.Provider())
		assert.False(t, s.IsConfigured())
	})

	t.Run("Should build an SMTP sender", func(t *testing.T) {
		s, err := email.NewSender(ctx, email.Config{
			Provider:     email.ProviderSMTP,
			SMTPHost:     "smtp.example.com",
			SMTPUsername: "user",
			SMTPPassword: "pass",
		})
		require.NoError(t, err)
		assert.Equal(t, email.ProviderSMTP, s.Provider())
		assert.True(t, s.IsConfigured())
	})

	t.Run("Should reject unknown providers", func(t *testing.T) {
		_, err := email.NewSender(ctx, email.Config{Provider: "pigeon"})
		assert.Error(t, err)
	})
}
