package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/motorlane-hq/carmd-go/pkg/carmd"
	"github.com/spf13/viper"
)

// Config holds the bootstrap configuration for the carmd CLI, loaded
// from configs/.env and process environment variables.
type Config struct {
	Key                string        `mapstructure:"carmd_key"`
	Secret             string        `mapstructure:"carmd_secret"`
	BaseURL            string        `mapstructure:"base_url"`
	LogLevel           string        `mapstructure:"log_level"`
	HTTPTimeoutSeconds int64         `mapstructure:"http_timeout_seconds"`
	HTTPTimeout        time.Duration `mapstructure:"-"`
}

// Load reads configuration from environment variables and configs/.env.
// Credential lookup happens here, once, so the client itself never
// touches the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load("configs/.env")

	v := viper.New()

	v.SetDefault("carmd_key", "")
	v.SetDefault("carmd_secret", "")
	v.SetDefault("base_url", carmd.DefaultBaseURL)
	v.SetDefault("log_level", "info")
	v.SetDefault("http_timeout_seconds", 15)

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.Key == "" || cfg.Secret == "" {
		return nil, fmt.Errorf("missing CarMD credentials: set CARMD_KEY and CARMD_SECRET")
	}
	if cfg.HTTPTimeoutSeconds <= 0 {
		return nil, fmt.Errorf("invalid http_timeout_seconds (must be positive seconds)")
	}
	cfg.HTTPTimeout = time.Duration(cfg.HTTPTimeoutSeconds) * time.Second

	return &cfg, nil
}
