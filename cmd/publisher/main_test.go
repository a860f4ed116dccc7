package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/ad-publisher-api/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/ad-publisher-api/internal/config"
)

func withFlags(t *testing.T, token, account string) {
	t.Helper()
	oldToken, oldAccount, oldPage, oldPixel := bearerToken, accountID, pageID, pixelID
	bearerToken, accountID, pageID, pixelID = token, account, "", ""
	t.Cleanup(func() {
		bearerToken, accountID, pageID, pixelID = oldToken, oldAccount, oldPage, oldPixel
	})
}

func TestNewClient_Proxy(t *testing.T) {
	t.Run("usa as credenciais da organização devolvidas pelo backend", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, metaclient.ProxyCredentialsPath, r.URL.Path)
			assert.Equal(t, "Bearer jwt", r.Header.Get("Authorization"))
			_, _ = w.Write([]byte(`{"ad_account_id":"org-acc","page_id":"org-page","connected":true}`))
		}))
		defer server.Close()
		withFlags(t, "jwt", "flag-acc")

		cfg := &config.Config{
			Meta:  config.Meta{AdAccountID: "env-acc", PageID: "env-page", PixelID: "env-px"},
			Proxy: config.Proxy{URL: server.URL},
		}
		client, err := newClient(context.Background(), cfg)

		require.NoError(t, err)
		session := client.Session()
		assert.Equal(t, metaclient.TransportProxy, session.Transport)
		assert.Equal(t, "flag-acc", session.Credentials.AdAccountID)
		assert.Equal(t, "org-page", session.Credentials.PageID)
		assert.Empty(t, session.Credentials.PixelID)
		assert.True(t, session.Credentials.Connected)
	})

	t.Run("organização sem conexão não vira sessão conectada", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusPreconditionFailed)
			_, _ = w.Write([]byte(`{"code":"META_002","message":"organization has no connected meta credentials"}`))
		}))
		defer server.Close()
		withFlags(t, "jwt", "")

		cfg := &config.Config{
			Meta:  config.Meta{AdAccountID: "env-acc", PageID: "env-page"},
			Proxy: config.Proxy{URL: server.URL},
		}
		client, err := newClient(context.Background(), cfg)

		assert.Nil(t, client)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "load organization credentials")
	})
}

func TestNewClient_Direct(t *testing.T) {
	withFlags(t, "", "")

	cfg := &config.Config{
		Meta: config.Meta{AdAccountID: "env-acc", PageID: "env-page", AccessToken: "env-token"},
	}
	client, err := newClient(context.Background(), cfg)

	require.NoError(t, err)
	session := client.Session()
	assert.Equal(t, metaclient.TransportDirect, session.Transport)
	assert.Equal(t, "env-acc", session.Credentials.AdAccountID)
	assert.True(t, session.Credentials.Connected)
}
