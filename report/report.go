// Package report derives period statistics and the yearly recap from the
// usage archive. Every result is computed fresh from its inputs; nothing is
// cached across calls, so a category change shows up in the next query.
package report

import (
	"cmp"
	"slices"
	"time"

	"github.com/slihbo/WinTrace/internal/models"
	"github.com/slihbo/WinTrace/internal/timeutil"
)

// Classifier resolves the category of an application identity.
type Classifier interface {
	Classify(id string) models.Category
}

// Dataset is the input of every report: the persisted archive with the live
// day already merged in, and the instants at which the running tracker last
// saw each application.
type Dataset struct {
	LastSeen map[string]time.Time
	Location *time.Location
	Archive  models.Archive
}

func (ds Dataset) location() *time.Location {
	if ds.Location == nil {
		return time.Local
	}

	return ds.Location
}

// Range is an inclusive pair of calendar days.
type Range struct {
	Start time.Time
	End   time.Time
}

// Query selects the period of a stats report. Range is only consulted in
// custom mode; a custom query without one covers the anchor's day.
type Query struct {
	Anchor time.Time
	Range  *Range
	Mode   models.ViewMode
}

// Aggregator computes reports. It holds no data of its own.
type Aggregator struct {
	classifier Classifier
	now        func() time.Time
}

// New returns an Aggregator that classifies applications with c.
func New(c Classifier) *Aggregator {
	return &Aggregator{
		classifier: c,
		now:        time.Now,
	}
}

// WithClock replaces the clock used to decide how much of the current year
// has elapsed.
func (a *Aggregator) WithClock(now func() time.Time) *Aggregator {
	a.now = now
	return a
}

// Bounds returns the first and last day covered by q.
func Bounds(q Query) (start, end time.Time, err error) {
	anchor := timeutil.RoundToStart(q.Anchor)

	switch q.Mode {
	case models.ViewDaily, "":
		return anchor, anchor, nil
	case models.ViewWeekly:
		start, end = timeutil.WeekBounds(anchor)
		return start, end, nil
	case models.ViewMonthly:
		start, end = timeutil.MonthBounds(anchor)
		return start, end, nil
	case models.ViewYearly:
		start, end = timeutil.YearBounds(anchor.Year(), anchor.Location())
		return start, end, nil
	case models.ViewCustom:
		if q.Range == nil {
			return anchor, anchor, nil
		}

		start = timeutil.RoundToStart(q.Range.Start)
		end = timeutil.RoundToStart(q.Range.End)

		if start.After(end) {
			return start, end, ErrInvalidRange.Fmt(
				timeutil.DateKey(start),
				timeutil.DateKey(end),
			)
		}

		return start, end, nil
	}

	return start, end, ErrUnknownMode.Fmt(q.Mode)
}

// period accumulates the per-application totals of a set of days.
type period struct {
	apps   map[string]float64
	latest map[string]string
	total  float64
}

func newPeriod() *period {
	return &period{
		apps:   make(map[string]float64),
		latest: make(map[string]string),
	}
}

func (p *period) add(key string, day models.DailyUsage) {
	for id, secs := range day {
		if secs <= 0 || id == "" {
			continue
		}

		p.apps[id] += secs
		p.total += secs

		if key > p.latest[id] {
			p.latest[id] = key
		}
	}
}

// eachDay calls fn for every archived day between start and end inclusive.
// Keys that are not valid dates are skipped.
func eachDay(
	ds Dataset,
	start, end time.Time,
	fn func(key string, date time.Time, day models.DailyUsage),
) {
	from, to := timeutil.DateKey(start), timeutil.DateKey(end)
	loc := ds.location()

	for key, day := range ds.Archive.Days {
		if key < from || key > to {
			continue
		}

		date, err := timeutil.ParseDateKey(key, loc)
		if err != nil {
			continue
		}

		fn(key, date, day)
	}
}

// Stats answers a get_stats query.
func (a *Aggregator) Stats(ds Dataset, q Query) (*models.PeriodStats, error) {
	loc := ds.location()
	q.Anchor = q.Anchor.In(loc)

	if q.Range != nil {
		q.Range = &Range{
			Start: q.Range.Start.In(loc),
			End:   q.Range.End.In(loc),
		}
	}

	start, end, err := Bounds(q)
	if err != nil {
		return nil, err
	}

	mode := q.Mode
	if mode == "" {
		mode = models.ViewDaily
	}

	p := newPeriod()

	eachDay(ds, start, end, func(key string, _ time.Time, day models.DailyUsage) {
		p.add(key, day)
	})

	apps := a.rank(ds, p, start, end)

	stats := &models.PeriodStats{
		Date:              Label(mode, start, end),
		ViewMode:          mode,
		Start:             timeutil.DateKey(start),
		End:               timeutil.DateKey(end),
		Apps:              apps,
		CategoryBreakdown: breakdownOf(apps, p.total),
		TotalSeconds:      p.total,
		ProductivityScore: productivityScore(apps, p.total),
	}

	return stats, nil
}

// rank builds the per-application records of p ordered by duration, longest
// first, with ties broken by identity.
func (a *Aggregator) rank(
	ds Dataset,
	p *period,
	start, end time.Time,
) []models.AppUsage {
	apps := make([]models.AppUsage, 0, len(p.apps))
	loc := ds.location()

	for id, secs := range p.apps {
		c := a.classifier.Classify(id)

		apps = append(apps, models.AppUsage{
			ID:              id,
			Name:            DisplayName(id),
			Category:        c,
			DurationSeconds: secs,
			IsProductive:    c.IsProductive(),
			LastActive:      lastActive(ds.LastSeen[id], p.latest[id], start, end, loc),
		})
	}

	slices.SortFunc(apps, func(x, y models.AppUsage) int {
		if c := cmp.Compare(y.DurationSeconds, x.DurationSeconds); c != 0 {
			return c
		}

		return cmp.Compare(x.ID, y.ID)
	})

	return apps
}

// lastActive prefers the live last-seen instant when it falls inside the
// period and otherwise uses midnight of the latest day with usage.
func lastActive(
	seen time.Time,
	latestKey string,
	start, end time.Time,
	loc *time.Location,
) time.Time {
	if !seen.IsZero() {
		day := timeutil.RoundToStart(seen.In(loc))
		if !day.Before(start) && !day.After(end) {
			return seen
		}
	}

	t, err := timeutil.ParseDateKey(latestKey, loc)
	if err != nil {
		return time.Time{}
	}

	return t
}

func productivityScore(apps []models.AppUsage, total float64) int {
	if total <= 0 {
		return 0
	}

	var productive float64

	for i := range apps {
		if apps[i].IsProductive {
			productive += apps[i].DurationSeconds
		}
	}

	return timeutil.Round(productive / total * 100)
}

func breakdownOf(apps []models.AppUsage, total float64) []models.CategoryShare {
	totals := make(map[models.Category]float64)

	for i := range apps {
		totals[apps[i].Category] += apps[i].DurationSeconds
	}

	return Breakdown(totals, total)
}
