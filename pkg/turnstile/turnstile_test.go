package turnstile_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"agentai-website-api/pkg/turnstile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientVerify(t *testing.T) {
	t.Run("Should post secret, token and remote ip as a form", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
			require.NoError(t, r.ParseForm())
			assert.Equal(t, "server-secret", r.PostForm.Get("secret"))
			assert.Equal(t, "token-123", r.PostForm.Get("response"))
			assert.Equal(t, "203.0.113.7", r.PostForm.Get("remoteip"))
			_, _ = w.Write([]byte(`{"success":true,"hostname":"agentai.app"}`))
		}))
		defer srv.Close()

		c := turnstile.NewClient("server-secret", srv.URL, time.Second)
		res, err := c.Check(context.Background(), "token-123", "203.0.113.7")
		require.NoError(t, err)
		assert.True(t, res.Success)
		assert.Equal(t, "agentai.app", res.Hostname)
	})

	t.Run("Should return VerificationError when success is false", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"success":false,"error-codes":["invalid-input-response"]}`))
		}))
		defer srv.Close()

		c := turnstile.NewClient("server-secret", srv.URL, time.Second)
		err := c.Verify(context.Background(), "bad-token", "")

		var verr *turnstile.VerificationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, []string{"invalid-input-response"}, verr.ErrorCodes)
	})

	t.Run("Should fail on non-200 status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		c := turnstile.NewClient("server-secret", srv.URL, time.Second)
		assert.Error(t, c.Verify(context.Background(), "token", ""))
	})

	t.Run("Should not call upstream without a token", func(t *testing.T) {
		called := false
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
		}))
		defer srv.Close()

		c := turnstile.NewClient("server-secret", srv.URL, time.Second)
		err := c.Verify(context.Background(), "", "")
		assert.ErrorIs(t, err, turnstile.ErrMissingToken)
		assert.False(t, called)
	})

	t.Run("Should be disabled without a secret", func(t *testing.T) {
		c := turnstile.NewClient("", "", time.Second)
		assert.False(t, c.Enabled())
		assert.ErrorIs(t, c.Verify(context.Background(), "token", ""), turnstile.ErrNotConfigured)
	})
}
