package autostart

import (
	"errors"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"

	"github.com/slihbo/WinTrace/internal/osutil"
)

// Path returns the location of the LaunchAgent.
func Path() string {
	home, _ := os.UserHomeDir()

	return filepath.Join(home, "Library", "LaunchAgents", Label+".plist")
}

func domain() string {
	return "gui/" + strconv.Itoa(os.Getuid())
}

// Enable writes the LaunchAgent for exe and loads it.
func Enable(exe string) error {
	path := Path()
	dir := filepath.Dir(path)

	if err := os.MkdirAll(dir, osutil.DirPermission); err != nil {
		return errEnable.Wrap(err)
	}

	if err := os.WriteFile(path, []byte(LaunchAgentPlist(exe, dir)), 0o644); err != nil {
		return errEnable.Wrap(err)
	}

	if err := exec.Command("launchctl", "bootstrap", domain(), path).Run(); err != nil {
		if err := exec.Command("launchctl", "load", "-w", path).Run(); err != nil {
			return errEnable.Wrap(err)
		}
	}

	return nil
}

// Disable unloads and removes the LaunchAgent. A missing agent is not an
// error.
func Disable() error {
	path := Path()

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	if err := exec.Command("launchctl", "bootout", domain()+"/"+Label).Run(); err != nil {
		_ = exec.Command("launchctl", "unload", "-w", path).Run()
	}

	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return errDisable.Wrap(err)
	}

	return nil
}

// Enabled reports whether the LaunchAgent is installed.
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
