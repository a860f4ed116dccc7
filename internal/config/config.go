package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App          App          `mapstructure:",squash"`
	Server       Server       `mapstructure:",squash"`
	Database     Database     `mapstructure:",squash"`
	Meta         Meta         `mapstructure:",squash"`
	Proxy        Proxy        `mapstructure:",squash"`
	Auth         Auth         `mapstructure:",squash"`
	Redis        Redis        `mapstructure:",squash"`
	Storage      Storage      `mapstructure:",squash"`
	Publish      Publish      `mapstructure:",squash"`
	TokenRefresh TokenRefresh `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Server struct {
	Host           string   `mapstructure:"host"`
	Port           string   `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

// Meta contém a configuração da Graph API. AdAccountID, PageID, PixelID e AccessToken
// só são usados no modo direto (fallback de desenvolvimento).
type Meta struct {
	BaseURL        string        `mapstructure:"meta_base_url"`
	URL            string        `mapstructure:"meta_url"`
	Version        string        `mapstructure:"meta_version"`
	AccessToken    string        `mapstructure:"meta_access_token"`
	AppID          string        `mapstructure:"meta_app_id"`
	AppSecret      string        `mapstructure:"meta_app_secret"`
	AdAccountID    string        `mapstructure:"meta_ad_account_id"`
	PageID         string        `mapstructure:"meta_page_id"`
	PixelID        string        `mapstructure:"meta_pixel_id"`
	RequestTimeout time.Duration `mapstructure:"meta_request_timeout"`
}

// Proxy é o backend que guarda o token real da plataforma (transporte A)
type Proxy struct {
	URL     string        `mapstructure:"proxy_url"`
	Timeout time.Duration `mapstructure:"proxy_timeout"`
}

type Auth struct {
	Secret string `mapstructure:"auth_secret"`
}

type Redis struct {
	Addr           string        `mapstructure:"redis_addr"`
	Password       string        `mapstructure:"redis_password"`
	DB             int           `mapstructure:"redis_db"`
	CredentialsTTL time.Duration `mapstructure:"redis_credentials_ttl"`
}

type Storage struct {
	S3Region string `mapstructure:"storage_s3_region"`
}

type Publish struct {
	PropagationInitialDelay time.Duration `mapstructure:"publish_propagation_initial_delay"`
	PropagationInterval     time.Duration `mapstructure:"publish_propagation_interval"`
	PropagationMultiplier   float64       `mapstructure:"publish_propagation_multiplier"`
	PropagationMaxAttempts  int           `mapstructure:"publish_propagation_max_attempts"`
	ImageMaxDimension       int           `mapstructure:"publish_image_max_dimension"`
	ImageMaxBytes           int64         `mapstructure:"publish_image_max_bytes"`
}

type TokenRefresh struct {
	CronSchedule string `mapstructure:"token_refresh_cron"`
	Enabled      bool   `mapstructure:"token_refresh_enabled"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("ALLOWED_ORIGINS", "http://localhost:3000")

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/publisher")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("META_BASE_URL", "https://graph.facebook.com")
	viper.SetDefault("META_VERSION", "v22.0")
	viper.SetDefault("META_APP_ID", "")
	viper.SetDefault("META_APP_SECRET", "")
	viper.SetDefault("META_ACCESS_TOKEN", "") // ONLY LOCAL
	viper.SetDefault("META_AD_ACCOUNT_ID", "")
	viper.SetDefault("META_PAGE_ID", "")
	viper.SetDefault("META_PIXEL_ID", "")
	viper.SetDefault("META_REQUEST_TIMEOUT", "60s")

	viper.SetDefault("PROXY_URL", "http://localhost:8000")
	viper.SetDefault("PROXY_TIMEOUT", "90s")

	viper.SetDefault("AUTH_SECRET", "your_secret_key")

	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("REDIS_CREDENTIALS_TTL", "12h")

	viper.SetDefault("STORAGE_S3_REGION", "us-east-1")

	// A campanha recém-criada pode demorar alguns segundos para ficar visível
	viper.SetDefault("PUBLISH_PROPAGATION_INITIAL_DELAY", "3s")
	viper.SetDefault("PUBLISH_PROPAGATION_INTERVAL", "1s")
	viper.SetDefault("PUBLISH_PROPAGATION_MULTIPLIER", 2.0)
	viper.SetDefault("PUBLISH_PROPAGATION_MAX_ATTEMPTS", 4)
	viper.SetDefault("PUBLISH_IMAGE_MAX_DIMENSION", 4096)
	viper.SetDefault("PUBLISH_IMAGE_MAX_BYTES", 30<<20) // 30MB, limite da plataforma

	viper.SetDefault("TOKEN_REFRESH_CRON", "0 3 * * *") // Todos os dias às 3h da manhã
	viper.SetDefault("TOKEN_REFRESH_ENABLED", false)

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("config: using variables loaded by godotenv (viper could not read .env): ", err)
	} else {
		logrus.Info("config: .env read by viper")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.Meta.URL = fmt.Sprintf("%s/%s", config.Meta.BaseURL, config.Meta.Version)

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

// loadEnvFile carrega o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("config: could not get working directory: ", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Info("config: .env loaded from ", location)
			return
		}
	}

	logrus.Debug("config: no .env file found")
}
