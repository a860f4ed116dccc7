package main

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ad-publisher-api/infrastructure/database/postgres"
	"github.com/vfg2006/ad-publisher-api/internal/config"
)

var statements = []struct {
	name string
	sql  string
}{
	{
		name: "organization_meta_credentials",
		sql: `CREATE TABLE IF NOT EXISTS organization_meta_credentials (
			organization_id    VARCHAR(64) PRIMARY KEY,
			access_token       TEXT NOT NULL,
			ad_account_id      VARCHAR(64) NOT NULL DEFAULT '',
			page_id            VARCHAR(64) NOT NULL DEFAULT '',
			pixel_id           VARCHAR(64),
			connected          BOOLEAN NOT NULL DEFAULT FALSE,
			available_accounts TEXT[] NOT NULL DEFAULT '{}',
			available_pages    TEXT[] NOT NULL DEFAULT '{}',
			updated_at         TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
	},
	{
		name: "publish_runs",
		sql: `CREATE TABLE IF NOT EXISTS publish_runs (
			id              VARCHAR(21) PRIMARY KEY,
			organization_id VARCHAR(64) NOT NULL,
			mode            VARCHAR(20) NOT NULL,
			success         BOOLEAN NOT NULL,
			campaign_id     VARCHAR(64) NOT NULL DEFAULT '',
			adset_id        VARCHAR(64) NOT NULL DEFAULT '',
			result          JSONB NOT NULL,
			created_at      TIMESTAMPTZ NOT NULL
		)`,
	},
	{
		name: "publish_runs_organization_idx",
		sql:  `CREATE INDEX IF NOT EXISTS publish_runs_organization_idx ON publish_runs (organization_id, created_at DESC)`,
	},
}

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: time.RFC3339})
	logrus.Info("migration: starting")

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal("migration: error loading config: ", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	conn, err := postgres.NewConnection(ctx, cfg.Database)
	if err != nil {
		logrus.Fatal("migration: error connecting to database: ", err)
	}
	defer conn.Close()

	for _, stmt := range statements {
		startTime := time.Now()
		if _, err := conn.ExecContext(ctx, stmt.sql); err != nil {
			logrus.WithField("statement", stmt.name).Fatal("migration: error applying statement: ", err)
		}
		logrus.WithFields(logrus.Fields{
			"statement": stmt.name,
			"elapsed":   time.Since(startTime).String(),
		}).Info("migration: statement applied")
	}

	logrus.Info("migration: finished")
}
