package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"squad-builder/internal/config"
	"squad-builder/internal/domain"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newVerifyServer(t *testing.T, status int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "secret-key", r.PostForm.Get("secret"))

		if status != http.StatusOK {
			w.WriteHeader(status)
			return
		}
		resp := VerifyResponse{Success: r.PostForm.Get("response") == "good-token"}
		if !resp.Success {
			resp.ErrorCodes = []string{"invalid-input-response"}
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newClient(secret, url string) *RecaptchaClient {
	return NewRecaptchaClient(&config.Config{
		RecaptchaSecretKey: secret,
		RecaptchaVerifyURL: url,
	}, zerolog.Nop())
}

func TestRecaptchaVerify(t *testing.T) {
	ctx := context.Background()
	srv := newVerifyServer(t, http.StatusOK)

	t.Run("accepted token", func(t *testing.T) {
		assert.NoError(t, newClient("secret-key", srv.URL).Verify(ctx, "good-token"))
	})

	t.Run("rejected token", func(t *testing.T) {
		err := newClient("secret-key", srv.URL).Verify(ctx, "bad-token")
		assert.ErrorIs(t, err, domain.ErrCaptchaInvalid)
	})

	t.Run("missing token", func(t *testing.T) {
		err := newClient("secret-key", srv.URL).Verify(ctx, "")
		assert.ErrorIs(t, err, domain.ErrCaptchaRequired)
	})

	t.Run("missing secret", func(t *testing.T) {
		err := newClient("", srv.URL).Verify(ctx, "good-token")
		assert.ErrorIs(t, err, domain.ErrCaptchaMisconfigured)
	})
}

func TestRecaptchaVerifyUpstreamError(t *testing.T) {
	srv := newVerifyServer(t, http.StatusServiceUnavailable)

	err := newClient("secret-key", srv.URL).Verify(context.Background(), "good-token")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrCaptchaInvalid)
	assert.Contains(t, err.Error(), "503")
}
