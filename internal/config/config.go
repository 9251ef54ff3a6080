// Package config loads and validates WinTrace settings
package config

import (
	"io"
	"os"
	"time"

	"github.com/slihbo/WinTrace/internal/pathutil"
)

type (
	// Config holds all configuration settings
	Config struct {
		Paths    *pathutil.Paths `mapstructure:"-"`
		Storage  StorageConfig   `mapstructure:"storage"`
		Server   ServerConfig    `mapstructure:"server"`
		Log      LogConfig       `mapstructure:"log"`
		CLI      CLIConfig       `mapstructure:"-"`
		Tracking TrackingConfig  `mapstructure:"tracking"`
		Display  DisplayConfig   `mapstructure:"display"`
	}

	// TrackingConfig controls the poller and the flush cadence.
	TrackingConfig struct {
		TickInterval  time.Duration `mapstructure:"tick_interval"`
		SampleTimeout time.Duration `mapstructure:"sample_timeout"`
		SaveInterval  time.Duration `mapstructure:"save_interval"`
	}

	// StorageConfig selects the persistence backend.
	StorageConfig struct {
		Backend string `mapstructure:"backend"`
		Dir     string `mapstructure:"dir"`
	}

	// ServerConfig holds the local API settings.
	ServerConfig struct {
		Addr string `mapstructure:"addr"`
	}

	// LogConfig controls the diagnostic log file.
	LogConfig struct {
		Level      string `mapstructure:"level"`
		MaxSizeMB  int    `mapstructure:"max_size_mb"`
		MaxBackups int    `mapstructure:"max_backups"`
		MaxAgeDays int    `mapstructure:"max_age_days"`
	}

	// DisplayConfig holds display-related settings
	DisplayConfig struct {
		TopApps   int  `mapstructure:"top_apps"`
		DarkTheme bool `mapstructure:"dark_theme"`
	}

	// CLIConfig holds settings that only live for one invocation.
	CLIConfig struct {
		Verbose bool
		Local   bool
	}

	// Option is a function that modifies Config
	Option func(*Config) error
)

const Version = "v1.0.0"

const (
	BackendJSON   = "json"
	BackendBolt   = "bolt"
	BackendSQLite = "sqlite"
)

var (
	Stdin  io.Reader = os.Stdin
	Stdout io.Writer = os.Stdout
	Stderr io.Writer = os.Stderr
)

// New creates a new Config and applies options in order.
func New(opts ...Option) (*Config, error) {
	cfg := &Config{}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, errConfigOption.Wrap(err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, errConfigValidation.Wrap(err)
	}

	return cfg, nil
}

// WithPaths attaches resolved file locations, relocating data files when
// storage.dir is set.
func WithPaths(p *pathutil.Paths) Option {
	return func(c *Config) error {
		c.Paths = p.WithDataDir(c.Storage.Dir)

		return nil
	}
}
