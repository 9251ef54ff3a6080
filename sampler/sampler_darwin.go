package sampler

import (
	"context"
	"os/exec"
	"strings"
)

const frontmostScript = `tell application "System Events" to get name of first application process whose frontmost is true`

// AppleScript asks System Events for the frontmost process. The first call
// triggers the macOS automation permission prompt; until it is granted every
// sample fails.
type AppleScript struct{}

// Default returns the AppleScript sampler.
func Default() Sampler {
	return AppleScript{}
}

func (AppleScript) Sample(ctx context.Context) (string, error) {
	out, err := exec.CommandContext(ctx, "osascript", "-e", frontmostScript).Output()
	if err != nil {
		return "", err
	}

	name := strings.TrimSpace(string(out))
	if name == "" {
		return "", ErrNoForeground
	}

	return name, nil
}
