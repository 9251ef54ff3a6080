package config

import (
	"errors"
	"os"
	"strings"

	"github.com/spf13/viper"
)

const (
	keyTickInterval  = "tracking.tick_interval"
	keySampleTimeout = "tracking.sample_timeout"
	keySaveInterval  = "tracking.save_interval"
	keyBackend       = "storage.backend"
	keyStorageDir    = "storage.dir"
	keyServerAddr    = "server.addr"
	keyLogLevel      = "log.level"
	keyLogMaxSize    = "log.max_size_mb"
	keyLogMaxBackups = "log.max_backups"
	keyLogMaxAge     = "log.max_age_days"
	keyDarkTheme     = "display.dark_theme"
	keyTopApps       = "display.top_apps"

	envPrefix = "WINTRACE"
)

// WithViperConfig returns an Option that loads configuration from Viper.
// A missing file is created with the defaults (and any values already set on
// the Config by a previous option such as the first-run prompt).
func WithViperConfig(configPath string) Option {
	return func(c *Config) error {
		v := viper.New()

		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")
		v.SetEnvPrefix(envPrefix)
		v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		v.AutomaticEnv()

		setupViper(v)

		err := v.ReadInConfig()
		if err == nil {
			return loadViperConfig(v, c)
		}

		var notFound viper.ConfigFileNotFoundError
		if !errors.Is(err, os.ErrNotExist) && !errors.As(err, &notFound) {
			return errReadConfig.Wrap(err)
		}

		applyPromptValues(v, c)

		if err := v.WriteConfig(); err != nil {
			return errWriteConfig.Wrap(err)
		}

		return loadViperConfig(v, c)
	}
}

// setupViper registers the defaults.
func setupViper(v *viper.Viper) {
	v.SetDefault(keyTickInterval, "1s")
	v.SetDefault(keySampleTimeout, "500ms")
	v.SetDefault(keySaveInterval, "1m")
	v.SetDefault(keyBackend, BackendJSON)
	v.SetDefault(keyStorageDir, "")
	v.SetDefault(keyServerAddr, "127.0.0.1:7420")
	v.SetDefault(keyLogLevel, "info")
	v.SetDefault(keyLogMaxSize, 10)
	v.SetDefault(keyLogMaxBackups, 3)
	v.SetDefault(keyLogMaxAge, 28)
	v.SetDefault(keyDarkTheme, true)
	v.SetDefault(keyTopApps, 10)
}

// applyPromptValues copies answers from the first-run prompt so that they end
// up in the written file.
func applyPromptValues(v *viper.Viper, c *Config) {
	if c.Storage.Backend != "" {
		v.Set(keyBackend, c.Storage.Backend)
	}

	if c.Tracking.SaveInterval != 0 {
		v.Set(keySaveInterval, c.Tracking.SaveInterval.String())
	}

	if c.Server.Addr != "" {
		v.Set(keyServerAddr, c.Server.Addr)
	}
}

// loadViperConfig loads configuration from Viper into the Config struct.
func loadViperConfig(v *viper.Viper, c *Config) error {
	if err := v.Unmarshal(c); err != nil {
		return errReadConfig.Wrap(err)
	}

	return nil
}
