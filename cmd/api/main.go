package main

import (
	"context"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ad-publisher-api/infrastructure/cache"
	"github.com/vfg2006/ad-publisher-api/infrastructure/database/postgres"
	"github.com/vfg2006/ad-publisher-api/infrastructure/imagesource"
	"github.com/vfg2006/ad-publisher-api/infrastructure/repository"
	"github.com/vfg2006/ad-publisher-api/internal/api"
	"github.com/vfg2006/ad-publisher-api/internal/api/handler"
	"github.com/vfg2006/ad-publisher-api/internal/config"
	"github.com/vfg2006/ad-publisher-api/pkg/log"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	log.Setup(cfg.App.LogLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	credentialsRepo := repository.NewCredentialsRepository(pgConn)
	publishRunRepo := repository.NewPublishRunRepository(pgConn)

	redisClient := cache.NewRedisClient(cfg.Redis)
	defer redisClient.Close()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logrus.WithError(err).Warn("redis: unavailable, credentials will be read from postgres")
	}
	credentials := cache.NewCredentialsCache(redisClient, credentialsRepo, cfg.Redis.CredentialsTTL)

	loader := imagesource.NewLoader(&http.Client{Timeout: cfg.Meta.RequestTimeout}, objectReader(ctx, cfg.Storage, cfg.Publish.ImageMaxBytes), cfg.Publish.ImageMaxBytes)
	normalizer := imagesource.NewNormalizer(cfg.Publish.ImageMaxDimension)

	server, err := api.New(
		cfg,
		handler.NewOrganizationClients(credentials, cfg),
		handler.NewUsecases(cfg, loader, normalizer),
		credentials,
		publishRunRepo,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// objectReader habilita imagens s3:// quando há credenciais AWS no ambiente
func objectReader(ctx context.Context, cfg config.Storage, maxBytes int64) imagesource.ObjectReader {
	reader, err := imagesource.NewS3ReaderFromEnv(ctx, cfg.S3Region, maxBytes)
	if err != nil {
		logrus.WithError(err).Warn("storage: s3 disabled, s3:// images will be rejected")
		return nil
	}
	return reader
}

func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("postgres: could not connect")
	}

	logrus.Info("postgres: connection established")
	return conn
}
