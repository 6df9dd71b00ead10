package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/dmitrijs2005/docdesk/internal/logging"
)

// Config holds runtime settings for the docdesk client.
type Config struct {
	ServerURL           string
	APIPrefix           string
	StatePath           string
	RequestTimeout      time.Duration
	OnlineCheckInterval time.Duration
	LogLevel            string
	LogFormat           string
	Debug               bool
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:8000"
	c.APIPrefix = "/api/v1"
	c.StatePath = "docdesk.db"
	c.RequestTimeout = 30 * time.Second
	c.OnlineCheckInterval = 10 * time.Second
	c.LogLevel = "info"
	c.LogFormat = "text"
	c.Debug = false
}

// Validate reports settings the client cannot start with.
func (c *Config) Validate() error {
	u, err := url.Parse(c.ServerURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("server url %q must be an absolute http(s) URL", c.ServerURL)
	}
	if c.StatePath == "" {
		return fmt.Errorf("state path must not be empty")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be > 0")
	}
	if c.OnlineCheckInterval < 0 {
		return fmt.Errorf("online check interval must not be negative")
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.LogFormat)
	}
	return nil
}

// Load builds a Config from defaults, the JSON file, the environment and
// args (os.Args[1:] in production). Later sources win.
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJSON(cfg, args); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
