// Package config loads khalari settings from an optional YAML file and the
// environment using viper.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/khalari/khalari/internal/llm"
	"github.com/khalari/khalari/internal/logging"
	"github.com/khalari/khalari/internal/store"
	"github.com/khalari/khalari/internal/video"
)

// EnvPrefix prefixes every variable that maps onto a config key:
// llm.gemini.api_key is read from KHALARI_LLM_GEMINI_API_KEY.
const EnvPrefix = "KHALARI"

type Config struct {
	DB      DBConfig       `mapstructure:"db"`
	Log     logging.Config `mapstructure:"log"`
	LLM     llm.Config     `mapstructure:"llm"`
	Video   video.Config   `mapstructure:"video"`
	Payment PaymentConfig  `mapstructure:"payment"`
	Server  ServerConfig   `mapstructure:"server"`
}

type DBConfig struct {
	Path string `mapstructure:"path"`
}

// PaymentConfig holds the checkout key and the webhook signing secret.
type PaymentConfig struct {
	KeyID         string `mapstructure:"key_id"`
	WebhookSecret string `mapstructure:"webhook_secret"`
}

// ServerConfig configures the local HTTP API.
type ServerConfig struct {
	Addr      string        `mapstructure:"addr"`
	JWTSecret string        `mapstructure:"jwt_secret"`
	TokenTTL  time.Duration `mapstructure:"token_ttl"`
}

// ErrNoJWTSecret is returned by ServerConfig.Validate when no signing
// secret is configured.
var ErrNoJWTSecret = errors.New("server.jwt_secret (or KHALARI_SERVER_JWT_SECRET) is required")

// Validate checks the settings needed to mint and verify API tokens.
func (c ServerConfig) Validate() error {
	if c.JWTSecret == "" {
		return ErrNoJWTSecret
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("server.token_ttl must be positive, got %s", c.TokenTTL)
	}
	return nil
}

// Options tweak Load. Zero values use the defaults.
type Options struct {
	// File is an explicit config file. When set it must exist.
	File string
	// Dir is searched for config.yaml when File is empty.
	Dir string
}

// Dir returns $XDG_CONFIG_HOME/khalari, falling back to ~/.config/khalari.
func Dir() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "khalari")
}

// Load reads the config file (if any), applies KHALARI_* overrides and
// discovers vendor API keys for whatever is still unset.
func Load(opts Options) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Standard vendor variables, after the prefixed ones.
	_ = v.BindEnv("video.api_key", "KHALARI_VIDEO_API_KEY", "YOUTUBE_API_KEY")
	_ = v.BindEnv("payment.key_id", "KHALARI_PAYMENT_KEY_ID", "RAZORPAY_KEY_ID")
	_ = v.BindEnv("payment.webhook_secret", "KHALARI_PAYMENT_WEBHOOK_SECRET", "RAZORPAY_WEBHOOK_SECRET")

	if opts.File != "" {
		v.SetConfigFile(opts.File)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", opts.File, err)
		}
	} else {
		dir := opts.Dir
		if dir == "" {
			dir = Dir()
		}
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if cfg.DB.Path == "" {
		p, err := store.DefaultDBPath()
		if err != nil {
			return nil, err
		}
		cfg.DB.Path = p
	}

	// A provider picked explicitly keeps its setting; otherwise the first
	// vendor key found in the environment wins.
	if !cfg.LLM.HasKey() && !v.InConfig("llm.provider") && os.Getenv(EnvPrefix+"_LLM_PROVIDER") == "" {
		if discovered, ok := llm.DiscoverConfig(cfg.LLM); ok {
			cfg.LLM = discovered
		}
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("db.path", "")

	v.SetDefault("log.file", logging.DefaultFile())
	v.SetDefault("log.level", "info")
	v.SetDefault("log.max_size_mb", 10)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age_days", 28)
	v.SetDefault("log.console", false)

	l := llm.DefaultConfig()
	v.SetDefault("llm.provider", l.Provider)
	v.SetDefault("llm.anthropic.api_key", "")
	v.SetDefault("llm.anthropic.model", l.Anthropic.Model)
	v.SetDefault("llm.openai.api_key", "")
	v.SetDefault("llm.openai.model", l.OpenAI.Model)
	v.SetDefault("llm.openai.base_url", l.OpenAI.BaseURL)
	v.SetDefault("llm.gemini.api_key", "")
	v.SetDefault("llm.gemini.model", l.Gemini.Model)
	v.SetDefault("llm.openrouter.api_key", "")
	v.SetDefault("llm.openrouter.model", l.OpenRouter.Model)
	v.SetDefault("llm.openrouter.base_url", l.OpenRouter.BaseURL)
	v.SetDefault("llm.retry.max_attempts", l.Retry.MaxAttempts)
	v.SetDefault("llm.retry.initial_wait", l.Retry.InitialWait)
	v.SetDefault("llm.retry.max_wait", l.Retry.MaxWait)
	v.SetDefault("llm.retry.multiplier", l.Retry.Multiplier)
	v.SetDefault("llm.rate.per_minute", l.Rate.PerMinute)
	v.SetDefault("llm.rate.burst", l.Rate.Burst)
	v.SetDefault("llm.timeout", l.Timeout)

	vc := video.DefaultConfig()
	v.SetDefault("video.api_key", "")
	v.SetDefault("video.base_url", vc.BaseURL)
	v.SetDefault("video.max_results", vc.MaxResults)
	v.SetDefault("video.timeout", vc.Timeout)

	v.SetDefault("payment.key_id", "rzp_test_khalari")
	v.SetDefault("payment.webhook_secret", "")

	v.SetDefault("server.addr", "127.0.0.1:8787")
	v.SetDefault("server.jwt_secret", "")
	v.SetDefault("server.token_ttl", 30*24*time.Hour)
}
