package config

import (
	"time"

	"github.com/urfave/cli/v2"
)

// CLIOptions represents command-line configuration options.
type CLIOptions struct {
	Backend      string
	DataDir      string
	Addr         string
	LogLevel     string
	SaveInterval string
	Verbose      bool
	Local        bool
}

// WithCLIConfig returns an Option that loads configuration from CLI flags.
func WithCLIConfig(ctx *cli.Context) Option {
	return func(c *Config) error {
		opts := CLIOptions{
			Backend:      ctx.String("backend"),
			DataDir:      ctx.String("data-dir"),
			Addr:         ctx.String("addr"),
			LogLevel:     ctx.String("log-level"),
			SaveInterval: ctx.String("save-interval"),
			Verbose:      ctx.Bool("verbose"),
			Local:        ctx.Bool("local"),
		}

		return applyCLIOptions(c, opts)
	}
}

// applyCLIOptions applies CLI options to the config. Empty values leave the
// file settings untouched.
func applyCLIOptions(c *Config, opts CLIOptions) error {
	if opts.Backend != "" {
		c.Storage.Backend = opts.Backend
	}

	if opts.DataDir != "" {
		c.Storage.Dir = opts.DataDir
	}

	if opts.Addr != "" {
		c.Server.Addr = opts.Addr
	}

	if opts.LogLevel != "" {
		c.Log.Level = opts.LogLevel
	}

	if opts.SaveInterval != "" {
		dur, err := time.ParseDuration(opts.SaveInterval)
		if err != nil {
			return errInvalidCLIDuration.Fmt("save-interval", err)
		}

		c.Tracking.SaveInterval = dur
	}

	c.CLI.Verbose = opts.Verbose
	c.CLI.Local = opts.Local

	return nil
}
