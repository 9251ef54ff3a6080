package sampler

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

var procRoot = "/proc"

// processName resolves pid to its executable name, preferring the target of
// /proc/<pid>/exe and falling back to comm for processes we may not inspect.
func processName(pid uint32) (string, error) {
	dir := filepath.Join(procRoot, strconv.FormatUint(uint64(pid), 10))

	if exe, err := os.Readlink(filepath.Join(dir, "exe")); err == nil {
		exe = strings.TrimSuffix(exe, " (deleted)")
		if name := filepath.Base(exe); name != "" && name != "." && name != "/" {
			return name, nil
		}
	}

	comm, err := os.ReadFile(filepath.Join(dir, "comm"))
	if err != nil {
		return "", ErrProcessGone.Fmt(pid).Wrap(err)
	}

	name := strings.TrimSpace(string(comm))
	if name == "" {
		return "", ErrProcessGone.Fmt(pid)
	}

	return name, nil
}
