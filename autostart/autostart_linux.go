package autostart

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"

	"github.com/slihbo/WinTrace/internal/osutil"
)

// Path returns the location of the autostart entry.
func Path() string {
	return filepath.Join(xdg.ConfigHome, "autostart", desktopFile)
}

// Enable writes the desktop entry for exe.
func Enable(exe string) error {
	path := Path()

	if err := os.MkdirAll(filepath.Dir(path), osutil.DirPermission); err != nil {
		return errEnable.Wrap(err)
	}

	if err := os.WriteFile(path, []byte(DesktopEntry(exe)), 0o644); err != nil {
		return errEnable.Wrap(err)
	}

	return nil
}

// Disable removes the desktop entry. A missing entry is not an error.
func Disable() error {
	err := os.Remove(Path())
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return errDisable.Wrap(err)
	}

	return nil
}

// Enabled reports whether the desktop entry exists.
func Enabled() (bool, error) {
	_, err := os.Stat(Path())
	if err == nil {
		return true, nil
	}

	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}

	return false, err
}
