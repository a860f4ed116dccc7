package main

import (
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/vfg2006/ad-publisher-api/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/ad-publisher-api/internal/scheduler"
)

var watch bool

var refreshTokenCmd = &cobra.Command{
	Use:   "refresh-token",
	Short: "Exchange META_ACCESS_TOKEN for a long-lived token",
	Long: `Refreshes the direct mode token with fb_exchange_token.

With --watch the refresh runs on TOKEN_REFRESH_CRON until interrupted.`,
	RunE: runRefreshToken,
}

func runRefreshToken(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	tokens := metaclient.NewTokenManager(cfg.Meta, &http.Client{Timeout: cfg.Meta.RequestTimeout})

	if !watch {
		if err := tokens.RefreshToken(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "token refreshed, next refresh at %s\n", tokens.ExpiresAt().Format(time.RFC3339))
		return nil
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	refreshCfg := cfg.TokenRefresh
	refreshCfg.Enabled = true

	if err := scheduler.NewTokenRefreshService(tokens, refreshCfg).Start(ctx); err != nil {
		return err
	}

	<-ctx.Done()
	return nil
}
