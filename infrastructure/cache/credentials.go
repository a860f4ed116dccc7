package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ad-publisher-api/infrastructure/repository"
	"github.com/vfg2006/ad-publisher-api/internal/config"
	"github.com/vfg2006/ad-publisher-api/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const keyPrefix = "meta:credentials:"

//go:generate mockgen -source=credentials.go -destination=mocks/credentials.go -package=mocks

type CredentialsProvider interface {
	Get(ctx context.Context, organizationID string) (*domain.OrganizationCredentials, error)
	Invalidate(ctx context.Context, organizationID string) error
}

// CredentialsCache guarda o registro de credenciais da organização no Redis.
// Nada é invalidado automaticamente antes do TTL: quem altera as credenciais chama Invalidate.
type CredentialsCache struct {
	client redis.Cmdable
	repo   repository.CredentialsRepository
	ttl    time.Duration
}

func NewCredentialsCache(client redis.Cmdable, repo repository.CredentialsRepository, ttl time.Duration) *CredentialsCache {
	return &CredentialsCache{
		client: client,
		repo:   repo,
		ttl:    ttl,
	}
}

func NewRedisClient(cfg config.Redis) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

func key(organizationID string) string {
	return keyPrefix + organizationID
}

// Get lê do cache e, na falta, do repositório. Falhas do Redis só degradam para a leitura no banco.
// Organizações sem credenciais retornam nil, nil e não são cacheadas.
func (c *CredentialsCache) Get(ctx context.Context, organizationID string) (*domain.OrganizationCredentials, error) {
	fields := logrus.Fields{"organization_id": organizationID}

	raw, err := c.client.Get(ctx, key(organizationID)).Bytes()
	switch {
	case err == nil:
		creds := &domain.OrganizationCredentials{}
		if err := json.Unmarshal(raw, creds); err == nil {
			return creds, nil
		}
		logrus.WithFields(fields).Warn("cache: discarding corrupted credentials entry")
	case errors.Is(err, redis.Nil):
	default:
		logrus.WithFields(fields).WithError(err).Warn("cache: redis read failed, using repository")
	}

	creds, err := c.repo.GetByOrganizationID(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	if creds == nil {
		return nil, nil
	}

	value, err := json.Marshal(creds)
	if err != nil {
		return nil, fmt.Errorf("encode credentials: %w", err)
	}
	if err := c.client.Set(ctx, key(organizationID), value, c.ttl).Err(); err != nil {
		logrus.WithFields(fields).WithError(err).Warn("cache: redis write failed")
	}

	return creds, nil
}

func (c *CredentialsCache) Invalidate(ctx context.Context, organizationID string) error {
	if err := c.client.Del(ctx, key(organizationID)).Err(); err != nil {
		return fmt.Errorf("invalidate credentials of %s: %w", organizationID, err)
	}

	logrus.WithField("organization_id", organizationID).Info("cache: credentials invalidated")
	return nil
}
