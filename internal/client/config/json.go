package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/docdesk/internal/flagx"
	"github.com/dmitrijs2005/docdesk/internal/timex"
)

// JSONConfig is the on-disk shape of the config file. Pointer fields tell
// "absent" from "zero", so a file only overrides what it mentions.
type JSONConfig struct {
	ServerURL           *string         `json:"server_url"`
	APIPrefix           *string         `json:"api_prefix"`
	StatePath           *string         `json:"state_path"`
	RequestTimeout      *timex.Duration `json:"request_timeout"`
	OnlineCheckInterval *timex.Duration `json:"online_check_interval"`
	LogLevel            *string         `json:"log_level"`
	LogFormat           *string         `json:"log_format"`
	Debug               *bool           `json:"debug"`
}

// parseJSON overlays cfg with the file named by -c/-config in args. Without
// such a flag it does nothing.
func parseJSON(cfg *Config, args []string) error {
	path := flagx.ConfigFile(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var jc JSONConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	jc.apply(cfg)
	return nil
}

func (jc JSONConfig) apply(cfg *Config) {
	if jc.ServerURL != nil {
		cfg.ServerURL = *jc.ServerURL
	}
	if jc.APIPrefix != nil {
		cfg.APIPrefix = *jc.APIPrefix
	}
	if jc.StatePath != nil {
		cfg.StatePath = *jc.StatePath
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.OnlineCheckInterval != nil {
		cfg.OnlineCheckInterval = jc.OnlineCheckInterval.Duration
	}
	if jc.LogLevel != nil {
		cfg.LogLevel = *jc.LogLevel
	}
	if jc.LogFormat != nil {
		cfg.LogFormat = *jc.LogFormat
	}
	if jc.Debug != nil {
		cfg.Debug = *jc.Debug
	}
}
