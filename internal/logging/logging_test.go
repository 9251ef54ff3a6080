package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slihbo/WinTrace/internal/config"
	"github.com/slihbo/WinTrace/internal/pathutil"
)

func TestNewWritesToRotatingFile(t *testing.T) {
	dir := t.TempDir()

	cfg := &config.Config{
		Paths: (&pathutil.Paths{}).WithDataDir(dir),
		Log: config.LogConfig{
			Level:      "info",
			MaxSizeMB:  1,
			MaxBackups: 1,
			MaxAgeDays: 1,
		},
	}

	l, err := New(cfg)
	require.NoError(t, err)

	l.Info("tracker started", slog.String("component", "tracker"))
	require.NoError(t, l.Close())

	b, err := os.ReadFile(filepath.Join(dir, "log", "wintrace.log"))
	require.NoError(t, err)
	assert.Contains(t, string(b), `"msg":"tracker started"`)
	assert.Contains(t, string(b), `"component":"tracker"`)
}

func TestVerboseAlsoWritesToStderr(t *testing.T) {
	testCases := []struct {
		name    string
		verbose bool
	}{
		{name: "quiet"},
		{name: "verbose", verbose: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var file, stderr bytes.Buffer

			opts := &slog.HandlerOptions{Level: slog.LevelInfo}
			logger := slog.New(newHandler(&file, &stderr, tc.verbose, opts))

			logger.Debug("sample skipped")
			logger.Warn("archive unreadable", slog.String("component", "store"))

			assert.Contains(t, file.String(), `"msg":"archive unreadable"`)
			assert.NotContains(t, file.String(), "sample skipped")

			if !tc.verbose {
				assert.Empty(t, stderr.String())
				return
			}

			assert.Contains(t, stderr.String(), "msg=\"archive unreadable\"")
			assert.Contains(t, stderr.String(), "component=store")
			assert.NotContains(t, stderr.String(), "sample skipped")
		})
	}
}
