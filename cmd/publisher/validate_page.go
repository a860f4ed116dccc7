package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vfg2006/ad-publisher-api/infrastructure/integrator/meta"
	"github.com/vfg2006/ad-publisher-api/internal/usecases/validating"
	"github.com/vfg2006/ad-publisher-api/pkg/utils"
)

var validatePageCmd = &cobra.Command{
	Use:   "validate-page [page-id]",
	Short: "Check that a page can be used by the ad account",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runValidatePage,
}

func runValidatePage(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	client, err := newClient(ctx, cfg)
	if err != nil {
		return err
	}

	target := client.Session().Credentials.PageID
	if len(args) == 1 {
		target = args[0]
	}

	result := validating.NewService(meta.New(client), client.Session()).Validate(ctx, target)
	fmt.Fprintln(cmd.OutOrStdout(), utils.PrettyJson(result))

	if !result.Valid {
		return fmt.Errorf("page %s is not usable: %s", target, result.Error)
	}
	return nil
}
