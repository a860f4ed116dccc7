package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/ad-publisher-api/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/ad-publisher-api/internal/api/handler"
	"github.com/vfg2006/ad-publisher-api/internal/api/handler/router"
	"github.com/vfg2006/ad-publisher-api/internal/domain"
	"github.com/vfg2006/ad-publisher-api/internal/usecases/insighting"
	"github.com/vfg2006/ad-publisher-api/internal/usecases/publishing"
	"github.com/vfg2006/ad-publisher-api/internal/usecases/validating"
	"github.com/vfg2006/ad-publisher-api/pkg/middleware"
)

const (
	testSecret = "test-secret"
	testOrg    = "org-1"
)

type staticClients struct {
	client metaclient.Client
	err    error
	orgs   []string
}

func (s *staticClients) ForOrganization(ctx context.Context, organizationID string) (metaclient.Client, error) {
	s.orgs = append(s.orgs, organizationID)
	return s.client, s.err
}

func signedToken(t *testing.T, organizationID string) string {
	t.Helper()

	claims := domain.Claims{
		UserID:         "user-1",
		OrganizationID: organizationID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

// serve passa a requisição autenticada pelo middleware de auth e pelo router
func serve(t *testing.T, routes []router.Route, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()

	req.Header.Set("Authorization", "Bearer "+signedToken(t, testOrg))
	rec := httptest.NewRecorder()
	middleware.AuthMiddleware(testSecret)(router.New(router.WithRoutes(routes...))).ServeHTTP(rec, req)
	return rec
}

func session() *metaclient.Session {
	return &metaclient.Session{
		Transport:   metaclient.TransportDirect,
		AccessToken: "token",
		Credentials: domain.Credentials{
			AdAccountID:       "123",
			PageID:            "p1",
			Connected:         true,
			AvailableAccounts: []string{"act_456"},
		},
	}
}

func usecasesWith(publisher publishing.Publisher, validator validating.PageValidator, insighter insighting.Insighter) handler.Usecases {
	return handler.Usecases{
		Publisher: func(metaclient.Client) publishing.Publisher { return publisher },
		Validator: func(metaclient.Client) validating.PageValidator { return validator },
		Insighter: func(metaclient.Client) insighting.Insighter { return insighter },
	}
}
