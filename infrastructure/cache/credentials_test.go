package cache_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/ad-publisher-api/infrastructure/cache"
	"github.com/vfg2006/ad-publisher-api/infrastructure/repository/mocks"
	"github.com/vfg2006/ad-publisher-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func setup(t *testing.T) (*miniredis.Miniredis, *redis.Client, *mocks.MockCredentialsRepository) {
	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return mr, client, mocks.NewMockCredentialsRepository(gomock.NewController(t))
}

func orgCredentials() *domain.OrganizationCredentials {
	return &domain.OrganizationCredentials{
		OrganizationID: "org-1",
		AccessToken:    "token",
		Credentials:    domain.Credentials{AdAccountID: "123", PageID: "p1", Connected: true},
	}
}

func TestCredentialsCache_Get(t *testing.T) {
	t.Run("miss lê do repositório e grava com TTL", func(t *testing.T) {
		mr, client, repo := setup(t)
		repo.EXPECT().GetByOrganizationID(gomock.Any(), "org-1").Return(orgCredentials(), nil).Times(1)

		c := cache.NewCredentialsCache(client, repo, time.Hour)

		first, err := c.Get(context.Background(), "org-1")
		require.NoError(t, err)
		second, err := c.Get(context.Background(), "org-1")
		require.NoError(t, err)

		assert.Equal(t, orgCredentials(), first)
		assert.Equal(t, first, second)
		assert.True(t, mr.Exists("meta:credentials:org-1"))
		assert.Equal(t, time.Hour, mr.TTL("meta:credentials:org-1"))

		mr.FastForward(2 * time.Hour)
		assert.False(t, mr.Exists("meta:credentials:org-1"))
	})

	t.Run("organização sem credenciais não é cacheada", func(t *testing.T) {
		mr, client, repo := setup(t)
		repo.EXPECT().GetByOrganizationID(gomock.Any(), "org-2").Return(nil, nil)

		creds, err := cache.NewCredentialsCache(client, repo, time.Hour).Get(context.Background(), "org-2")

		assert.NoError(t, err)
		assert.Nil(t, creds)
		assert.False(t, mr.Exists("meta:credentials:org-2"))
	})

	t.Run("entrada corrompida é descartada", func(t *testing.T) {
		mr, client, repo := setup(t)
		require.NoError(t, mr.Set("meta:credentials:org-1", "{"))
		repo.EXPECT().GetByOrganizationID(gomock.Any(), "org-1").Return(orgCredentials(), nil)

		creds, err := cache.NewCredentialsCache(client, repo, time.Hour).Get(context.Background(), "org-1")

		require.NoError(t, err)
		assert.Equal(t, "token", creds.AccessToken)
	})

	t.Run("redis fora do ar degrada para o repositório", func(t *testing.T) {
		mr, client, repo := setup(t)
		mr.Close()
		repo.EXPECT().GetByOrganizationID(gomock.Any(), "org-1").Return(orgCredentials(), nil)

		creds, err := cache.NewCredentialsCache(client, repo, time.Hour).Get(context.Background(), "org-1")

		require.NoError(t, err)
		assert.Equal(t, "123", creds.AdAccountID)
	})

	t.Run("erro do repositório", func(t *testing.T) {
		_, client, repo := setup(t)
		repo.EXPECT().GetByOrganizationID(gomock.Any(), "org-1").Return(nil, errors.New("db down"))

		creds, err := cache.NewCredentialsCache(client, repo, time.Hour).Get(context.Background(), "org-1")

		assert.Nil(t, creds)
		assert.EqualError(t, err, "db down")
	})
}

func TestCredentialsCache_Invalidate(t *testing.T) {
	mr, client, repo := setup(t)
	gomock.InOrder(
		repo.EXPECT().GetByOrganizationID(gomock.Any(), "org-1").Return(orgCredentials(), nil),
		repo.EXPECT().GetByOrganizationID(gomock.Any(), "org-1").Return(orgCredentials(), nil),
	)

	c := cache.NewCredentialsCache(client, repo, time.Hour)

	_, err := c.Get(context.Background(), "org-1")
	require.NoError(t, err)

	require.NoError(t, c.Invalidate(context.Background(), "org-1"))
	assert.False(t, mr.Exists("meta:credentials:org-1"))

	_, err = c.Get(context.Background(), "org-1")
	require.NoError(t, err)
}
