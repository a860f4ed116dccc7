package main

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vfg2006/ad-publisher-api/infrastructure/imagesource"
	"github.com/vfg2006/ad-publisher-api/internal/domain"
	"github.com/vfg2006/ad-publisher-api/internal/usecases/publishing"
	"github.com/vfg2006/ad-publisher-api/pkg/utils"
	"gopkg.in/yaml.v3"
)

var configFile string

var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Publish ads from a YAML config",
	Long: `Publishes the ads described in the config file. Everything is created PAUSED.

Images may be http(s) URLs, s3://bucket/key paths, base64 content or local
file paths relative to the config file.`,
	RunE: runPublish,
}

func runPublish(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	publishCfg, err := loadPublishConfig(configFile)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	client, err := newClient(ctx, cfg)
	if err != nil {
		return err
	}

	var objects imagesource.ObjectReader
	if reader, err := imagesource.NewS3ReaderFromEnv(ctx, cfg.Storage.S3Region, cfg.Publish.ImageMaxBytes); err == nil {
		objects = reader
	}

	orchestrator := publishing.NewFromClient(
		client,
		imagesource.NewLoader(&http.Client{Timeout: cfg.Meta.RequestTimeout}, objects, cfg.Publish.ImageMaxBytes),
		imagesource.NewNormalizer(cfg.Publish.ImageMaxDimension),
		publishing.NewPropagationPoller(cfg.Publish),
	)

	result := orchestrator.PublishAds(ctx, publishCfg)
	fmt.Fprintln(cmd.OutOrStdout(), utils.PrettyJson(result))

	if !result.Success {
		return fmt.Errorf("publish failed: %s", result.Error)
	}
	return nil
}

// loadPublishConfig lê o YAML e embute como base64 as imagens que são arquivos locais
func loadPublishConfig(path string) (*domain.PublishConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg domain.PublishConfig
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if cfg.Mode == "" {
		cfg.Mode = domain.PublishModeNewCampaign
	}

	baseDir := filepath.Dir(path)
	for i, ad := range cfg.Ads {
		inlined, err := inlineLocalImage(baseDir, ad.Image)
		if err != nil {
			return nil, fmt.Errorf("ad %d: %w", i, err)
		}
		cfg.Ads[i].Image = inlined
	}

	return &cfg, nil
}

func inlineLocalImage(baseDir, image string) (string, error) {
	if image == "" || strings.HasPrefix(image, "http://") || strings.HasPrefix(image, "https://") ||
		strings.HasPrefix(image, "s3://") || strings.HasPrefix(image, "data:") {
		return image, nil
	}

	path := image
	if !filepath.IsAbs(path) {
		path = filepath.Join(baseDir, path)
	}

	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		// não é arquivo: tratado como base64 puro pelo loader
		return image, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read image %s: %w", path, err)
	}

	return base64.StdEncoding.EncodeToString(data), nil
}
