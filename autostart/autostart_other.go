//go:build !linux && !darwin && !windows

package autostart

import "runtime"

// Path returns an empty string on unsupported platforms.
func Path() string {
	return ""
}

func Enable(string) error {
	return ErrUnsupported.Fmt(runtime.GOOS)
}

func Disable() error {
	return ErrUnsupported.Fmt(runtime.GOOS)
}

func Enabled() (bool, error) {
	return false, ErrUnsupported.Fmt(runtime.GOOS)
}
