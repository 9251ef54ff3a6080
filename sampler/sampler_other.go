//go:build !linux && !windows && !darwin

package sampler

import (
	"context"
	"runtime"
)

// Default returns a sampler that always reports ErrUnsupported.
func Default() Sampler {
	return Func(func(_ context.Context) (string, error) {
		return "", ErrUnsupported.Fmt(runtime.GOOS)
	})
}
