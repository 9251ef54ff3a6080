// Package models holds the typed schema shared by the tracker, the store and
// the report aggregator.
package models

import (
	"maps"
	"time"
)

// HoursInADay is the number of hourly buckets kept per day.
const HoursInADay = 24

type (
	// DailyUsage maps an application identity to the seconds it held
	// foreground focus on one calendar day.
	DailyUsage map[string]float64

	// HourlyUsage holds the seconds of foreground activity per local hour of
	// one calendar day, regardless of application.
	HourlyUsage [HoursInADay]float64

	// Archive is the full tracked history indexed by date-key (YYYY-MM-DD).
	Archive struct {
		Days  map[string]DailyUsage  `json:"days"`
		Hours map[string]HourlyUsage `json:"hours,omitempty"`
	}

	// Overrides maps an application identity to a user-chosen category.
	Overrides map[string]Category
)

// NewArchive returns an empty archive ready for writes.
func NewArchive() Archive {
	return Archive{
		Days:  make(map[string]DailyUsage),
		Hours: make(map[string]HourlyUsage),
	}
}

// Total returns the sum of all durations in the day.
func (d DailyUsage) Total() float64 {
	var total float64

	for _, secs := range d {
		total += secs
	}

	return total
}

// Clone returns an independent copy of d.
func (d DailyUsage) Clone() DailyUsage {
	if d == nil {
		return DailyUsage{}
	}

	return maps.Clone(d)
}

// Total returns the sum of all hourly buckets.
func (h HourlyUsage) Total() float64 {
	var total float64

	for _, secs := range h {
		total += secs
	}

	return total
}

// Clone returns a deep copy of the archive. Nil maps are replaced with empty
// ones.
func (a Archive) Clone() Archive {
	out := NewArchive()

	for key, day := range a.Days {
		out.Days[key] = day.Clone()
	}

	for key, hours := range a.Hours {
		out.Hours[key] = hours
	}

	return out
}

// IsEmpty reports whether the archive holds no days.
func (a Archive) IsEmpty() bool {
	return len(a.Days) == 0 && len(a.Hours) == 0
}

// Snapshot is a read-only copy of the live day held by the accumulator.
type Snapshot struct {
	LastSeen map[string]time.Time `json:"lastSeen"`
	Usage    DailyUsage           `json:"usage"`
	Day      string               `json:"day"`
	Current  string               `json:"current,omitempty"`
	Hours    HourlyUsage          `json:"hours"`
	Tracking bool                 `json:"tracking"`
}
