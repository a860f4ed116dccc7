package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/vfg2006/ad-publisher-api/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/ad-publisher-api/internal/config"
	"github.com/vfg2006/ad-publisher-api/internal/domain"
	"github.com/vfg2006/ad-publisher-api/pkg/log"
)

var (
	bearerToken string
	accountID   string
	pageID      string
	pixelID     string
	timeout     time.Duration
	verbose     bool
)

// rootCmd é o comando base do cliente de publicação
var rootCmd = &cobra.Command{
	Use:   "publisher",
	Short: "Publish ads on Meta from a config file",
	Long: `Publishes campaigns, ad sets and ads on Meta.

With --token the calls go through the backend proxy using the organization
session. Without it the CLI talks to the Graph API directly using the
META_* variables (development fallback).`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			logrus.SetLevel(logrus.DebugLevel)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&bearerToken, "token", os.Getenv("PUBLISHER_TOKEN"), "Bearer token for the backend proxy (or set PUBLISHER_TOKEN)")
	rootCmd.PersistentFlags().StringVar(&accountID, "account", "", "Ad account id (default: META_AD_ACCOUNT_ID)")
	rootCmd.PersistentFlags().StringVar(&pageID, "page", "", "Facebook page id (default: META_PAGE_ID)")
	rootCmd.PersistentFlags().StringVar(&pixelID, "pixel", "", "Pixel id (default: META_PIXEL_ID)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Minute, "Operation timeout")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	publishCmd.Flags().StringVarP(&configFile, "file", "f", "", "Publish config file (YAML)")
	_ = publishCmd.MarkFlagRequired("file")
	refreshTokenCmd.Flags().BoolVar(&watch, "watch", false, "Keep running and refresh on TOKEN_REFRESH_CRON")

	rootCmd.AddCommand(publishCmd)
	rootCmd.AddCommand(validatePageCmd)
	rootCmd.AddCommand(refreshTokenCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.NewConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	log.Setup(cfg.App.LogLevel)
	if verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}
	return cfg, nil
}

func orDefault(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}

// newClient resolve a sessão uma única vez: proxy com --token, direto sem ele
func newClient(ctx context.Context, cfg *config.Config) (metaclient.Client, error) {
	resolver := metaclient.NewCredentialResolver(cfg.Meta)

	if bearerToken != "" {
		transport := metaclient.NewProxyTransport(cfg.Proxy.URL, bearerToken, &http.Client{Timeout: cfg.Proxy.Timeout})
		org, err := transport.Credentials(ctx)
		if err != nil {
			return nil, fmt.Errorf("load organization credentials: %w", err)
		}
		overrideCredentials(org)

		return metaclient.NewClientWithTransport(resolver.Resolve(bearerToken, org), transport), nil
	}

	session := resolver.Resolve("", nil)
	overrideCredentials(&session.Credentials)

	tokens := metaclient.NewTokenManager(cfg.Meta, &http.Client{Timeout: cfg.Meta.RequestTimeout})
	if cfg.Meta.AppID != "" && cfg.Meta.AppSecret != "" {
		if err := tokens.EnsureValidToken(ctx); err != nil {
			logrus.WithError(err).Warn("token: could not refresh, using configured token")
		}
	}

	return metaclient.NewClient(session, cfg, tokens), nil
}

// overrideCredentials aplica --account, --page e --pixel sobre as credenciais resolvidas
func overrideCredentials(creds *domain.Credentials) {
	creds.AdAccountID = orDefault(accountID, creds.AdAccountID)
	creds.PageID = orDefault(pageID, creds.PageID)
	creds.PixelID = orDefault(pixelID, creds.PixelID)
}
