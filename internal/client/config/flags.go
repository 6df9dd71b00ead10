package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/docdesk/internal/flagx"
)

// FlagNames and SwitchNames are the flags Load consumes; FlagNames take a
// value, SwitchNames do not. Other components (the command tree) must leave
// them alone.
var (
	FlagNames   = []string{"-a", "-p", "-s", "-t", "-i", "-l", "-c", "-config"}
	SwitchNames = []string{"-d"}
)

// parseFlags overlays cfg with the flags it owns, ignoring the rest of args.
func parseFlags(cfg *Config, args []string) error {
	args = append(
		flagx.FilterArgs(args, []string{"-a", "-p", "-s", "-t", "-i", "-l"}),
		flagx.FilterSwitches(args, SwitchNames)...,
	)

	fs := flag.NewFlagSet("docdesk", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.ServerURL, "a", cfg.ServerURL, "server base URL")
	fs.StringVar(&cfg.APIPrefix, "p", cfg.APIPrefix, "API prefix")
	fs.StringVar(&cfg.StatePath, "s", cfg.StatePath, "local state file")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	interval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.BoolVar(&cfg.Debug, "d", cfg.Debug, "dump HTTP traffic")

	if err := fs.Parse(args); err != nil {
		return err
	}

	// Whole seconds only replace the durations when given explicitly, so a
	// "1500ms" from the file survives.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "t":
			cfg.RequestTimeout = time.Duration(*timeout) * time.Second
		case "i":
			cfg.OnlineCheckInterval = time.Duration(*interval) * time.Second
		}
	})
	return nil
}
