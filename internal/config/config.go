package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type APIConfig struct {
	BaseURL        string  `mapstructure:"base_url"`
	TimeoutSeconds int     `mapstructure:"timeout_seconds"`
	RateLimitRPS   float64 `mapstructure:"rate_limit_rps"`
	RateLimitBurst int     `mapstructure:"rate_limit_burst"`
	CacheTTLSecs   int     `mapstructure:"cache_ttl_seconds"`
}

func (c APIConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

func (c APIConfig) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSecs) * time.Second
}

type Config struct {
	API         APIConfig `mapstructure:"api"`
	SessionFile string    `mapstructure:"session_file"`
	LogLevel    string    `mapstructure:"log_level"`
}

// Load reads an optional config file and MEDIBOOK_* env overrides. A
// missing file is fine; the defaults point at a local dev server.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if dir, err := os.UserConfigDir(); err == nil {
		v.AddConfigPath(filepath.Join(dir, "medibook"))
	}

	v.SetEnvPrefix("MEDIBOOK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("api.base_url", "http://127.0.0.1:8000")
	v.SetDefault("api.timeout_seconds", 30)
	v.SetDefault("api.rate_limit_rps", 10.0)
	v.SetDefault("api.rate_limit_burst", 20)
	v.SetDefault("api.cache_ttl_seconds", 60)
	v.SetDefault("session_file", "")
	v.SetDefault("log_level", "info")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}
