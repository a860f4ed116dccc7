package metaclient

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ad-publisher-api/internal/config"
)

// TokenManager guarda o token do modo direto e o renova via fb_exchange_token.
// Implementa TokenSource, então pode ser passado ao NewClient.
type TokenManager struct {
	cfg        config.Meta
	httpClient *http.Client
	now        func() time.Time

	// refreshMu serializa as trocas; mu protege só a leitura e a escrita do token
	refreshMu sync.Mutex
	mu        sync.RWMutex
	token     string
	expiresAt time.Time
}

func NewTokenManager(cfg config.Meta, httpClient *http.Client) *TokenManager {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &TokenManager{
		cfg:        cfg,
		httpClient: httpClient,
		now:        time.Now,
		token:      cfg.AccessToken,
	}
}

func (tm *TokenManager) Token() string {
	tm.mu.RLock()
	defer tm.mu.RUnlock()
	return tm.token
}

func (tm *TokenManager) ExpiresAt() time.Time {
	tm.mu.RLock()
	defer tm.mu.RUnlock()
	return tm.expiresAt
}

// RefreshToken troca o token atual por um novo token de longa duração.
// A chamada HTTP acontece fora do lock de leitura, então Token() segue respondendo o token antigo.
func (tm *TokenManager) RefreshToken(ctx context.Context) error {
	if tm.cfg.AppID == "" || tm.cfg.AppSecret == "" {
		return fmt.Errorf("%w: app id and secret are required to refresh the token", ErrConfiguration)
	}

	tm.refreshMu.Lock()
	defer tm.refreshMu.Unlock()

	current, expiresAt := tm.Token(), tm.ExpiresAt()
	if !expiresAt.IsZero() && expiresAt.Sub(tm.now()) < time.Hour {
		logrus.Warn("token: token is close to expiration, manual reauthorization may be required")
	}

	tokenResp, err := GetLongLivedToken(ctx, tm.httpClient, current, tm.cfg.AppID, tm.cfg.AppSecret, tm.cfg.URL)
	if err != nil {
		if apiErr, ok := AsAPIError(err); ok && apiErr.IsTokenExpired() {
			logrus.WithField("subcode", apiErr.Subcode).Error("token: access token expired and cannot be refreshed automatically")
			return fmt.Errorf("access token expired, reauthorization required: %w", err)
		}
		return fmt.Errorf("refresh token: %w", err)
	}

	refreshAt := CalculateTokenExpiration(tm.now(), tokenResp.ExpiresIn)

	tm.mu.Lock()
	tm.token = tokenResp.AccessToken
	tm.expiresAt = refreshAt
	tm.mu.Unlock()

	entry := logrus.WithField("refresh_at", refreshAt.Format(time.RFC3339))
	if tokenResp.AccessToken != current {
		entry.Info("token: long-lived token refreshed")
	} else {
		entry.Info("token: token refreshed but unchanged")
	}

	return nil
}

// EnsureValidToken renova proativamente quando a expiração conhecida está a menos de 24h
func (tm *TokenManager) EnsureValidToken(ctx context.Context) error {
	expiresAt := tm.ExpiresAt()
	if tm.Token() == "" {
		return fmt.Errorf("%w: access token not configured", ErrConfiguration)
	}

	if expiresAt.IsZero() || expiresAt.Sub(tm.now()) < 24*time.Hour {
		logrus.Info("token: expiration unknown or within 24h, refreshing")
		return tm.RefreshToken(ctx)
	}

	return nil
}
