package config

import (
	"log/slog"
	"strings"
	"time"
)

var (
	minTickInterval = 200 * time.Millisecond
	maxTickInterval = 60 * time.Second

	minSampleTimeout = 10 * time.Millisecond

	maxSaveInterval = 24 * time.Hour

	minTopApps = 1
	maxTopApps = 100
)

// Validate performs validation checks on the Config struct and its fields.
func (c *Config) Validate() error {
	if err := c.validateTracking(); err != nil {
		return err
	}

	switch c.Storage.Backend {
	case BackendJSON, BackendBolt, BackendSQLite:
	default:
		return errUnknownBackend.Fmt(c.Storage.Backend)
	}

	if strings.TrimSpace(c.Server.Addr) == "" {
		return errEmptyAddr
	}

	if _, err := c.LogLevel(); err != nil {
		return err
	}

	if c.Display.TopApps < minTopApps || c.Display.TopApps > maxTopApps {
		return errInvalidTopApps.Fmt(minTopApps, maxTopApps)
	}

	return nil
}

func (c *Config) validateTracking() error {
	t := c.Tracking

	if t.TickInterval < minTickInterval || t.TickInterval > maxTickInterval {
		return errInvalidDuration.Fmt(
			"tracking.tick_interval",
			minTickInterval,
			maxTickInterval,
			t.TickInterval,
		)
	}

	if t.SampleTimeout < minSampleTimeout {
		return errInvalidDuration.Fmt(
			"tracking.sample_timeout",
			minSampleTimeout,
			t.TickInterval,
			t.SampleTimeout,
		)
	}

	if t.SampleTimeout >= t.TickInterval {
		return errTimeoutTooLong.Fmt(t.SampleTimeout, t.TickInterval)
	}

	if t.SaveInterval < t.TickInterval {
		return errSaveTooFrequent.Fmt(t.SaveInterval, t.TickInterval)
	}

	if t.SaveInterval > maxSaveInterval {
		return errInvalidDuration.Fmt(
			"tracking.save_interval",
			t.TickInterval,
			maxSaveInterval,
			t.SaveInterval,
		)
	}

	return nil
}

// LogLevel parses log.level into a slog level.
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level

	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return level, errUnknownLogLevel.Fmt(c.Log.Level)
	}

	return level, nil
}
