package tracker

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slihbo/WinTrace/category"
	"github.com/slihbo/WinTrace/internal/config"
	"github.com/slihbo/WinTrace/internal/logging"
	"github.com/slihbo/WinTrace/internal/models"
	"github.com/slihbo/WinTrace/internal/pathutil"
	"github.com/slihbo/WinTrace/internal/testutil"
	"github.com/slihbo/WinTrace/report"
	"github.com/slihbo/WinTrace/sampler"
	"github.com/slihbo/WinTrace/store"
)

// script is a fake sampler that replays a fixed sequence of identities and
// then repeats the last one. An empty entry means no foreground window.
type script struct {
	ids []string
	mu  sync.Mutex
	pos int
}

func (s *script) Sample(context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.ids) == 0 {
		return "", sampler.ErrNoForeground
	}

	id := s.ids[min(s.pos, len(s.ids)-1)]
	s.pos++

	if id == "" {
		return "", sampler.ErrNoForeground
	}

	return id, nil
}

// clock is a settable time source.
type clock struct {
	now time.Time
	mu  sync.Mutex
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.now
}

func (c *clock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.now = t
}

type fixture struct {
	cfg   *config.Config
	store *store.Store
	clock *clock
	dir   string
}

func testConfig(dir string) *config.Config {
	return &config.Config{
		Paths: (&pathutil.Paths{}).WithDataDir(dir),
		Tracking: config.TrackingConfig{
			TickInterval:  time.Second,
			SampleTimeout: 200 * time.Millisecond,
			SaveInterval:  time.Minute,
		},
	}
}

func newFixture(t *testing.T, seed models.Archive, now time.Time) *fixture {
	t.Helper()

	dir := t.TempDir()
	cfg := testConfig(dir)

	if !seed.IsEmpty() {
		b := store.NewJSONFile(cfg.Paths.ArchiveFile, cfg.Paths.OverridesFile)
		require.NoError(t, b.SaveArchive(seed))
	}

	return &fixture{
		cfg:   cfg,
		store: openStore(cfg),
		clock: &clock{now: now},
		dir:   dir,
	}
}

func openStore(cfg *config.Config) *store.Store {
	return store.New(
		store.NewJSONFile(cfg.Paths.ArchiveFile, cfg.Paths.OverridesFile),
		logging.Discard(),
	)
}

func (f *fixture) tracker(s sampler.Sampler) *Tracker {
	return New(f.cfg, s, f.store, logging.Discard(), WithClock(f.clock.Now))
}

// persisted reloads the archive from disk.
func (f *fixture) persisted() models.Archive {
	return openStore(f.cfg).Archive()
}

func at(day string, hour int) time.Time {
	t, err := time.ParseInLocation("2006-01-02", day, time.UTC)
	if err != nil {
		panic(err)
	}

	return t.Add(time.Duration(hour) * time.Hour)
}

func TestStepAttributesTicks(t *testing.T) {
	f := newFixture(t, models.NewArchive(), at("2024-01-01", 9))
	tr := f.tracker(&script{ids: []string{"Code.exe", "", "code.exe", "chrome.exe"}})

	for i := 0; i < 4; i++ {
		tr.step(context.Background(), f.clock.Now())
	}

	snap := tr.Snapshot()
	assert.Equal(t, models.DailyUsage{"code.exe": 2, "chrome.exe": 1}, snap.Usage)
	assert.InDelta(t, 3, snap.Hours[9], 0)
	assert.Equal(t, "chrome.exe", snap.Current)
	assert.False(t, snap.Tracking)
}

func TestRolloverKeepsDaysApart(t *testing.T) {
	f := newFixture(t, models.NewArchive(), at("2024-01-01", 23))
	tr := f.tracker(&script{ids: []string{"code.exe"}})
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		tr.step(ctx, f.clock.Now())
	}

	f.clock.Set(at("2024-01-02", 0))

	tr.step(ctx, f.clock.Now())

	// the old day was flushed by the rollover itself
	want := testutil.WithHours(
		testutil.Archive(testutil.Days{"2024-01-01": {"code.exe": 5}}),
		"2024-01-01",
		map[int]float64{23: 5},
	)

	if diff := cmp.Diff(want, f.persisted()); diff != "" {
		t.Fatalf("archive after rollover mismatch (-want +got):\n%s", diff)
	}

	for i := 0; i < 2; i++ {
		tr.step(ctx, f.clock.Now())
	}

	require.NoError(t, tr.Flush())

	want = testutil.WithHours(
		testutil.WithHours(
			testutil.Archive(testutil.Days{
				"2024-01-01": {"code.exe": 5},
				"2024-01-02": {"code.exe": 3},
			}),
			"2024-01-01",
			map[int]float64{23: 5},
		),
		"2024-01-02",
		map[int]float64{0: 3},
	)

	if diff := cmp.Diff(want, f.persisted()); diff != "" {
		t.Fatalf("archive after flush mismatch (-want +got):\n%s", diff)
	}
}

func TestRestartContinuesTheDay(t *testing.T) {
	seed := testutil.Archive(testutil.Days{"2024-01-01": {"code.exe": 100}})
	f := newFixture(t, seed, at("2024-01-01", 12))
	tr := f.tracker(&script{ids: []string{"code.exe"}})

	tr.step(context.Background(), f.clock.Now())
	require.NoError(t, tr.Flush())

	assert.InDelta(t, 101, f.persisted().Days["2024-01-01"]["code.exe"], 0)
}

func TestRolloverSeedsFromStore(t *testing.T) {
	seed := testutil.Archive(testutil.Days{"2024-01-02": {"slack.exe": 40}})
	f := newFixture(t, seed, at("2024-01-01", 23))
	tr := f.tracker(&script{ids: []string{"code.exe"}})

	f.clock.Set(at("2024-01-02", 1))
	tr.step(context.Background(), f.clock.Now())

	assert.Equal(t, models.DailyUsage{"slack.exe": 40, "code.exe": 1}, tr.Snapshot().Usage)
}

func TestStopFlushesEveryTick(t *testing.T) {
	f := newFixture(t, models.NewArchive(), time.Now())
	f.cfg.Tracking.TickInterval = 5 * time.Millisecond
	f.cfg.Tracking.SampleTimeout = 2 * time.Millisecond
	f.cfg.Tracking.SaveInterval = time.Hour

	tr := New(f.cfg, &script{ids: []string{"code.exe"}}, f.store, logging.Discard())

	tr.Start(context.Background())
	tr.Start(context.Background())

	assert.True(t, tr.Running())

	status, err := ReadStatus(f.cfg.Paths.StatusFile)
	require.NoError(t, err)
	require.NotNil(t, status)
	assert.True(t, status.Tracking)

	weight := f.cfg.Tracking.TickInterval.Seconds()

	require.Eventually(t, func() bool {
		return tr.Snapshot().Usage["code.exe"] >= 3*weight
	}, 2*time.Second, 5*time.Millisecond)

	require.NoError(t, tr.Stop())
	require.NoError(t, tr.Stop())

	assert.False(t, tr.Running())

	snap := tr.Snapshot()
	saved := f.persisted()

	assert.Equal(t, snap.Usage, saved.Days[snap.Day])

	status, err = ReadStatus(f.cfg.Paths.StatusFile)
	require.NoError(t, err)
	assert.False(t, status.Tracking)
	assert.Equal(t, snap.Day, status.Day)
}

func TestRestartAfterStop(t *testing.T) {
	f := newFixture(t, models.NewArchive(), time.Now())
	f.cfg.Tracking.TickInterval = 5 * time.Millisecond
	f.cfg.Tracking.SampleTimeout = 2 * time.Millisecond

	tr := New(f.cfg, &script{ids: []string{"code.exe"}}, f.store, logging.Discard())

	tr.Start(context.Background())
	require.NoError(t, tr.Stop())

	before := tr.Snapshot().Usage["code.exe"]

	tr.Start(context.Background())

	assert.Eventually(t, func() bool {
		return tr.Snapshot().Usage["code.exe"] > before
	}, 2*time.Second, 5*time.Millisecond)

	require.NoError(t, tr.Stop())
}

func TestStatsIncludeTheLiveDay(t *testing.T) {
	seed := testutil.Archive(testutil.Days{"2024-01-01": {"code.exe": 10}})
	f := newFixture(t, seed, at("2024-01-02", 9))
	tr := f.tracker(&script{ids: []string{"chrome.exe"}})

	tr.step(context.Background(), f.clock.Now())

	stats, err := tr.Stats(report.Query{Mode: models.ViewWeekly, Anchor: f.clock.Now()})
	require.NoError(t, err)

	assert.InDelta(t, 11, stats.TotalSeconds, 0)
	require.Len(t, stats.Apps, 2)
	assert.Equal(t, "code.exe", stats.Apps[0].ID)
	assert.Equal(t, f.clock.Now(), stats.Apps[1].LastActive)

	// nothing was saved: the live day comes from memory
	assert.NotContains(t, f.persisted().Days, "2024-01-02")
}

func TestGetStatsAndSetCategory(t *testing.T) {
	seed := testutil.Archive(testutil.Days{
		"2024-01-01": {"chrome.exe": 3600, "code.exe": 1800},
	})
	f := newFixture(t, seed, at("2024-03-01", 12))
	tr := f.tracker(&script{})

	query := report.Query{Mode: models.ViewDaily, Anchor: at("2024-01-01", 0)}

	stats, err := tr.Stats(query)
	require.NoError(t, err)

	assert.InDelta(t, 5400, stats.TotalSeconds, 0)
	require.Len(t, stats.Apps, 2)
	assert.Equal(t, "chrome.exe", stats.Apps[0].ID)
	assert.InDelta(t, 3600, stats.Apps[0].DurationSeconds, 0)
	assert.Equal(t, "code.exe", stats.Apps[1].ID)
	assert.InDelta(t, 1800, stats.Apps[1].DurationSeconds, 0)
	assert.Equal(t, []models.CategoryShare{
		{Category: models.CategoryBrowsing, Seconds: 3600, Percentage: 67},
		{Category: models.CategoryDevelopment, Seconds: 1800, Percentage: 33},
	}, stats.CategoryBreakdown)

	ok, err := tr.SetCategory("chrome.exe", "Development")
	require.NoError(t, err)
	assert.True(t, ok)

	stats, err = tr.Stats(query)
	require.NoError(t, err)
	assert.Equal(t, []models.CategoryShare{
		{Category: models.CategoryDevelopment, Seconds: 5400, Percentage: 100},
	}, stats.CategoryBreakdown)

	// write-through: a fresh store sees the override
	assert.Equal(t, models.Overrides{"chrome.exe": models.CategoryDevelopment}, openStore(f.cfg).Overrides())

	ok, err = tr.SetCategory("chrome.exe", "Gardening")
	assert.False(t, ok)
	require.ErrorIs(t, err, category.ErrUnknownCategory)
	assert.Equal(t, models.CategoryDevelopment, tr.Classify("chrome.exe"))
}

func TestYearlyRecapThroughTracker(t *testing.T) {
	seed := testutil.Archive(testutil.Days{
		"2024-01-06": {"steam.exe": 7200},
		"2024-01-08": {"code.exe": 3600},
	})
	f := newFixture(t, seed, at("2024-02-01", 12))
	tr := f.tracker(&script{})

	recap := tr.YearlyRecap(2024)

	assert.Equal(t, 3, recap.TotalHours)
	assert.Equal(t, 67, recap.WeekendPercentage)
	require.NotNil(t, recap.TopApp)
	assert.Equal(t, "steam.exe", recap.TopApp.ID)
}

func TestReadStatusMissing(t *testing.T) {
	status, err := ReadStatus(filepath.Join(t.TempDir(), "status.json"))
	require.NoError(t, err)
	assert.Nil(t, status)
}
