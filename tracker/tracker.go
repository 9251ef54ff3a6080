// Package tracker runs the sampling loop and answers report queries.
//
// A Tracker is the one object that owns the poller, the live accumulator,
// the store and the classifier. It is built once at startup and handed to
// whatever serves queries.
package tracker

import (
	"context"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/slihbo/WinTrace/category"
	"github.com/slihbo/WinTrace/internal/config"
	"github.com/slihbo/WinTrace/internal/models"
	"github.com/slihbo/WinTrace/internal/timeutil"
	"github.com/slihbo/WinTrace/report"
	"github.com/slihbo/WinTrace/sampler"
	"github.com/slihbo/WinTrace/store"
)

// Tracker is safe for concurrent use.
type Tracker struct {
	now        func() time.Time
	poller     *sampler.Poller
	acc        *Accumulator
	store      *store.Store
	classifier *category.Classifier
	aggregator *report.Aggregator
	logger     *slog.Logger
	cancel     context.CancelFunc
	done       chan struct{}
	statusPath string
	started    time.Time
	tick       time.Duration
	save       time.Duration
	// lifecycle guards cancel, done and started.
	lifecycle sync.Mutex
	// flushMu orders flushes against rollover so the store never receives
	// an older copy of a day after a newer one.
	flushMu sync.Mutex
}

// Option customises a Tracker.
type Option func(*Tracker)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) {
		t.now = now
	}
}

// New builds a tracker. The live day is seeded from whatever the store
// already holds for today, so a restart continues the day's totals.
func New(
	cfg *config.Config,
	s sampler.Sampler,
	st *store.Store,
	logger *slog.Logger,
	opts ...Option,
) *Tracker {
	t := &Tracker{
		now:        time.Now,
		store:      st,
		classifier: category.New(st),
		logger:     logger.With(slog.String("component", "tracker")),
		tick:       cfg.Tracking.TickInterval,
		save:       cfg.Tracking.SaveInterval,
	}

	if cfg.Paths != nil {
		t.statusPath = cfg.Paths.StatusFile
	}

	for _, opt := range opts {
		opt(t)
	}

	t.poller = sampler.NewPoller(s, cfg.Tracking.SampleTimeout, logger)
	t.aggregator = report.New(t.classifier).WithClock(t.now)

	today := timeutil.DateKey(t.now())
	usage, hours := st.Day(today)
	t.acc = NewAccumulator(today, usage, hours, t.tick.Seconds())

	return t
}

// Running reports whether the sampling loop is active.
func (t *Tracker) Running() bool {
	t.lifecycle.Lock()
	defer t.lifecycle.Unlock()

	return t.cancel != nil
}

// Start launches the sampling and flush loops. Calling Start on a running
// tracker does nothing. The loops end when ctx is cancelled or Stop is
// called; only Stop performs the final flush.
func (t *Tracker) Start(ctx context.Context) {
	t.lifecycle.Lock()
	defer t.lifecycle.Unlock()

	if t.cancel != nil {
		return
	}

	ctx, t.cancel = context.WithCancel(ctx)
	t.done = make(chan struct{})
	t.started = t.now()

	var wg sync.WaitGroup

	wg.Add(2)

	go func() {
		defer wg.Done()
		t.sampleLoop(ctx)
	}()

	go func() {
		defer wg.Done()
		t.flushLoop(ctx)
	}()

	go func(done chan struct{}) {
		wg.Wait()
		close(done)
	}(t.done)

	t.logger.Info(
		"tracking started",
		slog.Duration("tick", t.tick),
		slog.Duration("save_interval", t.save),
		slog.String("day", t.acc.Day()),
	)

	t.writeStatus(true)
}

// Stop halts both loops, waits for the last tick to be applied and flushes
// the live day to the store. Calling Stop on a stopped tracker does nothing.
func (t *Tracker) Stop() error {
	t.lifecycle.Lock()
	defer t.lifecycle.Unlock()

	if t.cancel == nil {
		return nil
	}

	t.cancel()
	<-t.done

	t.cancel, t.done = nil, nil

	err := t.Flush()

	t.writeStatus(false)
	t.logger.Info("tracking stopped", slog.String("day", t.acc.Day()))

	return err
}

func (t *Tracker) sampleLoop(ctx context.Context) {
	ticker := time.NewTicker(t.tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			t.step(ctx, t.now())
		}
	}
}

func (t *Tracker) flushLoop(ctx context.Context) {
	ticker := time.NewTicker(t.save)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			// failures are logged by the store and retried next time
			_ = t.Flush()

			t.writeStatus(true)
		}
	}
}

// step runs one tick at the given instant. A date change is handled before
// the tick so that the tick belongs to the new day only.
func (t *Tracker) step(ctx context.Context, at time.Time) {
	if key := timeutil.DateKey(at); key != t.acc.Day() {
		t.rollover(key)
	}

	id, ok := t.poller.Poll(ctx)
	if !ok {
		id = ""
	}

	t.acc.Tick(at, id)
}

func (t *Tracker) rollover(key string) {
	t.flushMu.Lock()
	defer t.flushMu.Unlock()

	prev := t.acc.Snapshot()

	// the old day reaches the store before the accumulator moves on so
	// that readers always find it in one of the two
	t.store.PutDay(prev.Day, prev.Usage, prev.Hours)

	usage, hours := t.store.Day(key)
	t.acc.Rollover(key, usage, hours)

	t.logger.Info(
		"day rolled over",
		slog.String("from", prev.Day),
		slog.String("to", key),
		slog.Float64("seconds", prev.Usage.Total()),
	)

	_ = t.store.Save()
}

// Flush writes the live day to the store and saves it.
func (t *Tracker) Flush() error {
	t.flushMu.Lock()
	defer t.flushMu.Unlock()

	snap := t.acc.Snapshot()

	if len(snap.Usage) > 0 || snap.Hours.Total() > 0 {
		t.store.PutDay(snap.Day, snap.Usage, snap.Hours)
	}

	return t.store.Save()
}

// Snapshot returns the live day.
func (t *Tracker) Snapshot() models.Snapshot {
	snap := t.acc.Snapshot()
	snap.Tracking = t.Running()

	return snap
}

// Dataset merges the live day into a copy of the stored archive.
func (t *Tracker) Dataset() report.Dataset {
	// snapshot first: a rollover in between has already stored the old day
	snap := t.acc.Snapshot()
	archive := t.store.Archive()

	if len(snap.Usage) > 0 {
		archive.Days[snap.Day] = snap.Usage
	}

	if snap.Hours.Total() > 0 {
		archive.Hours[snap.Day] = snap.Hours
	}

	return report.Dataset{
		Archive:  archive,
		LastSeen: snap.LastSeen,
		Location: t.now().Location(),
	}
}

// Stats answers a period query.
func (t *Tracker) Stats(q report.Query) (*models.PeriodStats, error) {
	return t.aggregator.Stats(t.Dataset(), q)
}

// YearlyRecap summarises the given year.
func (t *Tracker) YearlyRecap(year int) *models.YearlyRecap {
	return t.aggregator.YearlyRecap(t.Dataset(), year)
}

// SetCategory records a category override. It reports false with the
// reason when the override was rejected or could not be saved.
func (t *Tracker) SetCategory(id, name string) (bool, error) {
	if err := t.classifier.SetOverride(id, name); err != nil {
		t.logger.Warn(
			"category override rejected",
			slog.String("id", id),
			slog.String("category", name),
			slog.Any("error", err),
		)

		return false, err
	}

	return true, nil
}

// Classify returns the category currently in effect for id.
func (t *Tracker) Classify(id string) models.Category {
	return t.classifier.Classify(id)
}

// Overrides lists the user's category overrides.
func (t *Tracker) Overrides() models.Overrides {
	return t.store.Overrides()
}

func (t *Tracker) writeStatus(tracking bool) {
	if t.statusPath == "" {
		return
	}

	snap := t.acc.Snapshot()

	s := &Status{
		PID:      os.Getpid(),
		Started:  t.started,
		Updated:  t.now(),
		Day:      snap.Day,
		Current:  snap.Current,
		Tracking: tracking,
	}

	if err := writeStatus(t.statusPath, s); err != nil {
		t.logger.Warn("status file not written", slog.Any("error", err))
	}
}
