package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const envPrefix = "docdesk"

type envConfig struct {
	ServerURL           string        `envconfig:"SERVER_URL"`
	APIPrefix           string        `envconfig:"API_PREFIX"`
	StatePath           string        `envconfig:"STATE_PATH"`
	RequestTimeout      time.Duration `envconfig:"REQUEST_TIMEOUT"`
	OnlineCheckInterval time.Duration `envconfig:"ONLINE_CHECK_INTERVAL"`
	LogLevel            string        `envconfig:"LOG_LEVEL"`
	LogFormat           string        `envconfig:"LOG_FORMAT"`
	Debug               bool          `envconfig:"DEBUG"`
}

// parseEnv overlays cfg with DOCDESK_* variables. envconfig leaves fields
// whose variable is unset alone, so the struct is seeded from cfg.
func parseEnv(cfg *Config) error {
	ec := envConfig{
		ServerURL:           cfg.ServerURL,
		APIPrefix:           cfg.APIPrefix,
		StatePath:           cfg.StatePath,
		RequestTimeout:      cfg.RequestTimeout,
		OnlineCheckInterval: cfg.OnlineCheckInterval,
		LogLevel:            cfg.LogLevel,
		LogFormat:           cfg.LogFormat,
		Debug:               cfg.Debug,
	}
	if err := envconfig.Process(envPrefix, &ec); err != nil {
		return fmt.Errorf("read environment: %w", err)
	}

	cfg.ServerURL = ec.ServerURL
	cfg.APIPrefix = ec.APIPrefix
	cfg.StatePath = ec.StatePath
	cfg.RequestTimeout = ec.RequestTimeout
	cfg.OnlineCheckInterval = ec.OnlineCheckInterval
	cfg.LogLevel = ec.LogLevel
	cfg.LogFormat = ec.LogFormat
	cfg.Debug = ec.Debug
	return nil
}
