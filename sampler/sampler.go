// Package sampler asks the operating system which application holds the
// foreground focus.
package sampler

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/slihbo/WinTrace/internal/apperr"
)

var (
	// ErrNoForeground means no focusable window has an owning process.
	ErrNoForeground = &apperr.Error{
		Message: "no foreground window",
	}

	// ErrProcessGone means the owning process exited while being queried.
	ErrProcessGone = &apperr.Error{
		Message: "process %d is no longer available",
	}

	// ErrSampleTimeout means the OS query did not answer in time.
	ErrSampleTimeout = &apperr.Error{
		Message: "foreground query timed out after %v",
	}

	// ErrUnsupported is returned on platforms without a sampler.
	ErrUnsupported = &apperr.Error{
		Message: "foreground tracking is not supported on %s",
	}
)

// Sampler reports the raw executable name of the focused application.
// Implementations should honour ctx but Poller does not rely on it.
type Sampler interface {
	Sample(ctx context.Context) (string, error)
}

// Func adapts a plain function to Sampler.
type Func func(ctx context.Context) (string, error)

func (f Func) Sample(ctx context.Context) (string, error) {
	return f(ctx)
}

// Chain tries each sampler in order and returns the first identity found.
type Chain []Sampler

func (c Chain) Sample(ctx context.Context) (string, error) {
	var errs []error

	for _, s := range c {
		id, err := s.Sample(ctx)
		if err == nil && id != "" {
			return id, nil
		}

		if err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) == 0 {
		return "", ErrNoForeground
	}

	return "", errors.Join(errs...)
}

// Normalize turns a raw executable name or path into an identity. An empty
// result means there is no usable identity.
func Normalize(raw string) string {
	raw = strings.TrimSpace(strings.TrimRight(raw, "\x00"))
	if raw == "" {
		return ""
	}

	if strings.ContainsAny(raw, `/\`) {
		raw = filepath.Base(strings.ReplaceAll(raw, `\`, "/"))
	}

	return strings.ToLower(raw)
}

type result struct {
	err error
	id  string
}

// Poller wraps a Sampler with a timeout guard. Poll never blocks longer than
// the timeout and never returns an error: every failure is a skipped tick.
type Poller struct {
	sampler Sampler
	logger  *slog.Logger
	timeout time.Duration
	// busy is set while a sample is outstanding. A query that hangs past its
	// timeout keeps it set, so hung OS calls never pile up.
	busy atomic.Bool
}

// NewPoller returns a Poller bounding each sample to timeout.
func NewPoller(s Sampler, timeout time.Duration, logger *slog.Logger) *Poller {
	return &Poller{
		sampler: s,
		timeout: timeout,
		logger:  logger.With(slog.String("component", "sampler")),
	}
}

// Poll returns the focused application's identity, or false when none could
// be determined this tick.
func (p *Poller) Poll(ctx context.Context) (string, bool) {
	if !p.busy.CompareAndSwap(false, true) {
		p.logger.Debug("sample skipped, previous query still running")
		return "", false
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	ch := make(chan result, 1)

	go func() {
		defer p.busy.Store(false)

		id, err := p.sampler.Sample(ctx)
		ch <- result{id: id, err: err}
	}()

	select {
	case r := <-ch:
		if r.err != nil {
			p.logger.Debug("sample failed", slog.Any("error", r.err))
			return "", false
		}

		id := Normalize(r.id)

		return id, id != ""
	case <-ctx.Done():
		p.logger.Debug("sample failed", slog.Any("error", ErrSampleTimeout.Fmt(p.timeout)))
		return "", false
	}
}
