package tracker

import (
	"maps"
	"sync"
	"time"

	"github.com/slihbo/WinTrace/internal/models"
)

// Accumulator holds the live day. Tick is called from a single goroutine;
// Snapshot may be called from any number of others.
type Accumulator struct {
	lastSeen map[string]time.Time
	usage    models.DailyUsage
	day      string
	current  string
	hours    models.HourlyUsage
	weight   float64
	mu       sync.RWMutex
}

// NewAccumulator starts accumulating day on top of the seeded totals. Each
// tick adds weight seconds.
func NewAccumulator(
	day string,
	usage models.DailyUsage,
	hours models.HourlyUsage,
	weight float64,
) *Accumulator {
	return &Accumulator{
		day:      day,
		usage:    usage.Clone(),
		hours:    hours,
		weight:   weight,
		lastSeen: make(map[string]time.Time),
	}
}

// Tick credits one tick to id at the given instant. An empty id is a tick
// without a foreground application and adds nothing.
func (a *Accumulator) Tick(at time.Time, id string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.current = id

	if id == "" {
		return
	}

	a.usage[id] += a.weight
	a.hours[at.Hour()] += a.weight
	a.lastSeen[id] = at
}

// Day returns the date-key being accumulated.
func (a *Accumulator) Day() string {
	a.mu.RLock()
	defer a.mu.RUnlock()

	return a.day
}

// Snapshot returns a copy of the live day.
func (a *Accumulator) Snapshot() models.Snapshot {
	a.mu.RLock()
	defer a.mu.RUnlock()

	return models.Snapshot{
		Day:      a.day,
		Usage:    a.usage.Clone(),
		Hours:    a.hours,
		Current:  a.current,
		LastSeen: maps.Clone(a.lastSeen),
	}
}

// Rollover switches to day, seeded with any totals already stored for it,
// and returns the final state of the previous day. Last-seen instants carry
// over since they are not tied to a day.
func (a *Accumulator) Rollover(
	day string,
	usage models.DailyUsage,
	hours models.HourlyUsage,
) models.Snapshot {
	a.mu.Lock()
	defer a.mu.Unlock()

	prev := models.Snapshot{
		Day:      a.day,
		Usage:    a.usage,
		Hours:    a.hours,
		Current:  a.current,
		LastSeen: maps.Clone(a.lastSeen),
	}

	a.day = day
	a.usage = usage.Clone()
	a.hours = hours

	return prev
}
