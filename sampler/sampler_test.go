package sampler_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/slihbo/WinTrace/internal/logging"
	"github.com/slihbo/WinTrace/sampler"
)

func TestNormalize(t *testing.T) {
	testCases := map[string]string{
		"Chrome.exe":                               "chrome.exe",
		"  code.exe\x00":                           "code.exe",
		`C:\Program Files\Google\Chrome\chrome.exe`: "chrome.exe",
		"/usr/lib/firefox/firefox":                 "firefox",
		"Google Chrome":                            "google chrome",
		"":                                         "",
		"   ":                                      "",
	}

	for raw, want := range testCases {
		assert.Equal(t, want, sampler.Normalize(raw), "raw: %q", raw)
	}
}

func TestPollReturnsIdentity(t *testing.T) {
	p := sampler.NewPoller(sampler.Func(func(context.Context) (string, error) {
		return "Code.EXE", nil
	}), time.Second, logging.Discard())

	id, ok := p.Poll(context.Background())
	assert.True(t, ok)
	assert.Equal(t, "code.exe", id)
}

func TestPollSwallowsErrors(t *testing.T) {
	testCases := []struct {
		err  error
		name string
		id   string
	}{
		{name: "no foreground", err: sampler.ErrNoForeground},
		{name: "process gone", err: sampler.ErrProcessGone.Fmt(42)},
		{name: "arbitrary failure", err: errors.New("access denied")},
		{name: "empty identity"},
		{name: "whitespace identity", id: "  "},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := sampler.NewPoller(sampler.Func(func(context.Context) (string, error) {
				return tc.id, tc.err
			}), time.Second, logging.Discard())

			id, ok := p.Poll(context.Background())
			assert.False(t, ok)
			assert.Empty(t, id)
		})
	}
}

func TestPollTimeoutGuard(t *testing.T) {
	release := make(chan struct{})
	defer close(release)

	var calls atomic.Int32

	hung := sampler.Func(func(context.Context) (string, error) {
		calls.Add(1)
		<-release // ignores ctx, like a stuck OS call

		return "late.exe", nil
	})

	p := sampler.NewPoller(hung, 20*time.Millisecond, logging.Discard())

	start := time.Now()
	id, ok := p.Poll(context.Background())

	assert.False(t, ok)
	assert.Empty(t, id)
	assert.Less(t, time.Since(start), 500*time.Millisecond)

	// while the first query is still stuck no new query is started
	_, ok = p.Poll(context.Background())
	assert.False(t, ok)
	assert.Equal(t, int32(1), calls.Load())
}

func TestPollRecoversAfterHungQuery(t *testing.T) {
	release := make(chan struct{})

	var calls atomic.Int32

	s := sampler.Func(func(context.Context) (string, error) {
		if calls.Add(1) == 1 {
			<-release
		}

		return "code.exe", nil
	})

	p := sampler.NewPoller(s, 20*time.Millisecond, logging.Discard())

	_, ok := p.Poll(context.Background())
	assert.False(t, ok)

	close(release)

	assert.Eventually(t, func() bool {
		id, ok := p.Poll(context.Background())
		return ok && id == "code.exe"
	}, time.Second, 10*time.Millisecond)
}

func TestChain(t *testing.T) {
	failing := sampler.Func(func(context.Context) (string, error) {
		return "", errors.New("no display")
	})
	empty := sampler.Func(func(context.Context) (string, error) {
		return "", nil
	})
	working := sampler.Func(func(context.Context) (string, error) {
		return "firefox", nil
	})

	id, err := sampler.Chain{failing, empty, working}.Sample(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, "firefox", id)

	_, err = sampler.Chain{empty}.Sample(context.Background())
	assert.ErrorIs(t, err, sampler.ErrNoForeground)

	_, err = sampler.Chain{failing}.Sample(context.Background())
	assert.Error(t, err)
}
