package metaclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/ad-publisher-api/internal/config"
)

func TestTokenManager_RefreshToken(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	t.Run("troca o token e calcula a renovação", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/oauth/access_token", r.URL.Path)
			assert.Equal(t, "fb_exchange_token", r.URL.Query().Get("grant_type"))
			assert.Equal(t, "old", r.URL.Query().Get("fb_exchange_token"))
			_, _ = w.Write([]byte(`{"access_token":"new","token_type":"bearer","expires_in":5184000}`))
		}))
		defer server.Close()

		tm := NewTokenManager(config.Meta{URL: server.URL, AppID: "app", AppSecret: "secret", AccessToken: "old"}, server.Client())
		tm.now = func() time.Time { return now }

		require.NoError(t, tm.RefreshToken(context.Background()))
		assert.Equal(t, "new", tm.Token())
		assert.Equal(t, now.Add(59*24*time.Hour), tm.ExpiresAt())
	})

	t.Run("token expirado exige reautorização", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":{"message":"Error validating access token","code":190,"error_subcode":463}}`))
		}))
		defer server.Close()

		tm := NewTokenManager(config.Meta{URL: server.URL, AppID: "app", AppSecret: "secret", AccessToken: "old"}, server.Client())

		err := tm.RefreshToken(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "reauthorization required")
		assert.Equal(t, "old", tm.Token())
	})

	t.Run("token antigo segue legível durante a troca", func(t *testing.T) {
		exchanging := make(chan struct{})
		release := make(chan struct{})
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			close(exchanging)
			<-release
			_, _ = w.Write([]byte(`{"access_token":"new","expires_in":5184000}`))
		}))
		defer server.Close()

		tm := NewTokenManager(config.Meta{URL: server.URL, AppID: "app", AppSecret: "secret", AccessToken: "old"}, server.Client())

		done := make(chan error, 1)
		go func() { done <- tm.RefreshToken(context.Background()) }()

		<-exchanging
		read := make(chan string, 1)
		go func() { read <- tm.Token() }()

		select {
		case token := <-read:
			assert.Equal(t, "old", token)
		case <-time.After(time.Second):
			t.Fatal("Token() blocked while the exchange was in flight")
		}

		close(release)
		require.NoError(t, <-done)
		assert.Equal(t, "new", tm.Token())
	})

	t.Run("sem app id é erro de configuração", func(t *testing.T) {
		tm := NewTokenManager(config.Meta{AccessToken: "old"}, nil)
		assert.ErrorIs(t, tm.RefreshToken(context.Background()), ErrConfiguration)
	})
}

func TestCalculateTokenExpiration(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, now.Add(24*time.Hour), CalculateTokenExpiration(now, 2*24*60*60))
	assert.Equal(t, now.Add(30*time.Minute), CalculateTokenExpiration(now, 60*60))
}
