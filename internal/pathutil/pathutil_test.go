package pathutil_test

import (
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slihbo/WinTrace/internal/pathutil"
)

func TestResolveHonoursEnv(t *testing.T) {
	t.Setenv(pathutil.EnvName, "test")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	xdg.Reload()

	p, err := pathutil.Resolve()
	require.NoError(t, err)

	assert.Equal(t, "config_test.yml", filepath.Base(p.ConfigFile))
	assert.Equal(t, "usage_data_test.json", filepath.Base(p.ArchiveFile))
	assert.Equal(t, "user_categories_test.json", filepath.Base(p.OverridesFile))
}

func TestWithDataDir(t *testing.T) {
	t.Setenv(pathutil.EnvName, "")

	dir := t.TempDir()
	p := (&pathutil.Paths{}).WithDataDir(dir)

	assert.Equal(t, filepath.Join(dir, "usage_data.json"), p.ArchiveFile)
	assert.Equal(t, filepath.Join(dir, "user_categories.json"), p.OverridesFile)
	assert.Equal(t, filepath.Join(dir, "log", "wintrace.log"), p.LogFile)
}
