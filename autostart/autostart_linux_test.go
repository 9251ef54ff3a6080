package autostart

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnableDisableLinux(t *testing.T) {
	dir := t.TempDir()

	t.Setenv("XDG_CONFIG_HOME", dir)
	xdg.Reload()

	assert.Equal(t, filepath.Join(dir, "autostart", "wintrace.desktop"), Path())

	enabled, err := Enabled()
	require.NoError(t, err)
	assert.False(t, enabled)

	require.NoError(t, Enable("/usr/local/bin/wintrace"))

	enabled, err = Enabled()
	require.NoError(t, err)
	assert.True(t, enabled)

	b, err := os.ReadFile(Path())
	require.NoError(t, err)
	assert.Contains(t, string(b), "Exec=/usr/local/bin/wintrace run")

	require.NoError(t, Disable())
	require.NoError(t, Disable())

	enabled, err = Enabled()
	require.NoError(t, err)
	assert.False(t, enabled)
}
