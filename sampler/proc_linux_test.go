package sampler

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeProc(t *testing.T) string {
	t.Helper()

	root := t.TempDir()
	old := procRoot
	procRoot = root

	t.Cleanup(func() { procRoot = old })

	return root
}

func TestProcessNamePrefersExe(t *testing.T) {
	root := fakeProc(t)
	dir := filepath.Join(root, "100")

	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.Symlink("/usr/lib/firefox/firefox", filepath.Join(dir, "exe")))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "comm"), []byte("GeckoMain\n"), 0o600))

	name, err := processName(100)
	require.NoError(t, err)
	assert.Equal(t, "firefox", name)
}

func TestProcessNameFallsBackToComm(t *testing.T) {
	root := fakeProc(t)
	dir := filepath.Join(root, "200")

	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "comm"), []byte("code\n"), 0o600))

	name, err := processName(200)
	require.NoError(t, err)
	assert.Equal(t, "code", name)
}

func TestProcessNameGone(t *testing.T) {
	fakeProc(t)

	_, err := processName(300)
	assert.ErrorIs(t, err, ErrProcessGone)
}

func TestParseGnomeFocus(t *testing.T) {
	fakeProc(t)

	name, err := parseGnomeFocus(`"{\"pid\":0,\"wm_class\":\"org.gnome.Nautilus\"}"`)
	require.NoError(t, err)
	assert.Equal(t, "org.gnome.Nautilus", name)

	_, err = parseGnomeFocus(`""`)
	assert.ErrorIs(t, err, ErrNoForeground)

	_, err = parseGnomeFocus(`not json`)
	assert.Error(t, err)
}
