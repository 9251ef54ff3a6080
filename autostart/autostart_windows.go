package autostart

import (
	"errors"
	"strings"

	"golang.org/x/sys/windows"
	"golang.org/x/sys/windows/registry"
)

const runKey = `Software\Microsoft\Windows\CurrentVersion\Run`

// Path returns the registry location of the autostart entry.
func Path() string {
	return `HKCU\` + runKey + `\` + AppName
}

func command(exe string) string {
	parts := []string{windows.EscapeArg(exe)}
	for _, a := range Args {
		parts = append(parts, windows.EscapeArg(a))
	}

	return strings.Join(parts, " ")
}

// Enable registers exe under the current user's Run key.
func Enable(exe string) error {
	k, _, err := registry.CreateKey(registry.CURRENT_USER, runKey, registry.SET_VALUE)
	if err != nil {
		return errEnable.Wrap(err)
	}
	defer k.Close()

	if err := k.SetStringValue(AppName, command(exe)); err != nil {
		return errEnable.Wrap(err)
	}

	return nil
}

// Disable deletes the Run value. A missing value is not an error.
func Disable() error {
	k, err := registry.OpenKey(registry.CURRENT_USER, runKey, registry.SET_VALUE)
	if err != nil {
		if errors.Is(err, registry.ErrNotExist) {
			return nil
		}

		return errDisable.Wrap(err)
	}
	defer k.Close()

	if err := k.DeleteValue(AppName); err != nil && !errors.Is(err, registry.ErrNotExist) {
		return errDisable.Wrap(err)
	}

	return nil
}

// Enabled reports whether the Run value exists.
func Enabled() (bool, error) {
	k, err := registry.OpenKey(registry.CURRENT_USER, runKey, registry.QUERY_VALUE)
	if err != nil {
		if errors.Is(err, registry.ErrNotExist) {
			return false, nil
		}

		return false, err
	}
	defer k.Close()

	_, _, err = k.GetStringValue(AppName)
	if errors.Is(err, registry.ErrNotExist) {
		return false, nil
	}

	return err == nil, err
}
