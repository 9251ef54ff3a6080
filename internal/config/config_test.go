package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slihbo/WinTrace/internal/config"
)

// defaultConfig returns a new Config instance with default values.
func defaultConfig() *config.Config {
	return &config.Config{
		Tracking: config.TrackingConfig{
			TickInterval:  time.Second,
			SampleTimeout: 500 * time.Millisecond,
			SaveInterval:  time.Minute,
		},
		Storage: config.StorageConfig{
			Backend: config.BackendJSON,
		},
		Server: config.ServerConfig{
			Addr: "127.0.0.1:7420",
		},
		Log: config.LogConfig{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
		Display: config.DisplayConfig{
			DarkTheme: true,
			TopApps:   10,
		},
	}
}

func TestViperWriteConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yml")

	cfg, err := config.New(config.WithViperConfig(configPath))
	require.NoError(t, err)

	if diff := cmp.Diff(defaultConfig(), cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}

	_, err = os.Stat(configPath)
	assert.NoError(t, err, "default config should be written to disk")
}

func TestViperReadConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yml")

	content := `tracking:
  tick_interval: 2s
  sample_timeout: 1s
  save_interval: 5m
storage:
  backend: sqlite
server:
  addr: 127.0.0.1:9000
`

	require.NoError(t, os.WriteFile(configPath, []byte(content), 0o600))

	cfg, err := config.New(config.WithViperConfig(configPath))
	require.NoError(t, err)

	assert.Equal(t, 2*time.Second, cfg.Tracking.TickInterval)
	assert.Equal(t, time.Second, cfg.Tracking.SampleTimeout)
	assert.Equal(t, 5*time.Minute, cfg.Tracking.SaveInterval)
	assert.Equal(t, config.BackendSQLite, cfg.Storage.Backend)
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
	// untouched keys keep their defaults
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestViperEnvOverride(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yml")

	t.Setenv("WINTRACE_STORAGE_BACKEND", "bolt")

	cfg, err := config.New(config.WithViperConfig(configPath))
	require.NoError(t, err)

	assert.Equal(t, config.BackendBolt, cfg.Storage.Backend)
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		mutate func(c *config.Config)
		name   string
		ok     bool
	}{
		{
			name:   "defaults are valid",
			mutate: func(_ *config.Config) {},
			ok:     true,
		},
		{
			name: "tick too short",
			mutate: func(c *config.Config) {
				c.Tracking.TickInterval = time.Millisecond
			},
		},
		{
			name: "sample timeout not shorter than tick",
			mutate: func(c *config.Config) {
				c.Tracking.SampleTimeout = time.Second
			},
		},
		{
			name: "save more often than tick",
			mutate: func(c *config.Config) {
				c.Tracking.SaveInterval = 500 * time.Millisecond
			},
		},
		{
			name: "unknown backend",
			mutate: func(c *config.Config) {
				c.Storage.Backend = "postgres"
			},
		},
		{
			name: "empty address",
			mutate: func(c *config.Config) {
				c.Server.Addr = " "
			},
		},
		{
			name: "unknown log level",
			mutate: func(c *config.Config) {
				c.Log.Level = "chatty"
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := defaultConfig()
			tc.mutate(cfg)

			err := cfg.Validate()
			if tc.ok {
				assert.NoError(t, err)
				return
			}

			assert.Error(t, err)
		})
	}
}
