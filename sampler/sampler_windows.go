package sampler

import (
	"context"

	"golang.org/x/sys/windows"
)

// Windows resolves the foreground window to the image name of its process.
type Windows struct{}

// Default returns the Win32 sampler.
func Default() Sampler {
	return Windows{}
}

func (Windows) Sample(_ context.Context) (string, error) {
	hwnd := windows.GetForegroundWindow()
	if hwnd == 0 {
		return "", ErrNoForeground
	}

	var pid uint32
	if _, err := windows.GetWindowThreadProcessId(hwnd, &pid); err != nil {
		return "", ErrNoForeground.Wrap(err)
	}

	if pid == 0 {
		return "", ErrNoForeground
	}

	h, err := windows.OpenProcess(windows.PROCESS_QUERY_LIMITED_INFORMATION, false, pid)
	if err != nil {
		return "", ErrProcessGone.Fmt(pid).Wrap(err)
	}
	defer windows.CloseHandle(h)

	buf := make([]uint16, windows.MAX_LONG_PATH)
	size := uint32(len(buf))

	if err := windows.QueryFullProcessImageName(h, 0, &buf[0], &size); err != nil {
		return "", ErrProcessGone.Fmt(pid).Wrap(err)
	}

	// Normalize keeps only the base name of the returned path.
	return windows.UTF16ToString(buf[:size]), nil
}
