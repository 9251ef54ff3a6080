// Package timeutil provides date-key helpers and calendar period bounds.
package timeutil

import (
	"math"
	"strings"
	"time"

	"github.com/markusmobius/go-dateparser"

	"github.com/slihbo/WinTrace/internal/apperr"
)

// DateKeyLayout is the layout of archive date-keys.
const DateKeyLayout = "2006-01-02"

const (
	DaysInAWeek    = 7
	MonthsInAYear  = 12
	SecondsInAHour = 3600
)

// ErrInvalidDate is returned when a date string cannot be parsed.
var ErrInvalidDate = &apperr.Error{
	Message: "invalid date %q: expected YYYY-MM-DD or a relative date such as 'yesterday'",
}

// DateKey returns the archive key of the local calendar day containing t.
func DateKey(t time.Time) string {
	return t.Format(DateKeyLayout)
}

// ParseDateKey parses a YYYY-MM-DD key as local midnight in loc.
func ParseDateKey(key string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(DateKeyLayout, key, loc)
	if err != nil {
		return time.Time{}, ErrInvalidDate.Fmt(key).Wrap(err)
	}

	return t, nil
}

// ParseDate accepts a date-key or a natural language date ("last monday",
// "3 days ago") interpreted relative to now. The result is truncated to the
// start of its day.
func ParseDate(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return RoundToStart(now), nil
	}

	if t, err := time.ParseInLocation(DateKeyLayout, s, now.Location()); err == nil {
		return t, nil
	}

	cfg := &dateparser.Configuration{
		CurrentTime: now,
	}

	dt, err := dateparser.Parse(cfg, s)
	if err != nil {
		return time.Time{}, ErrInvalidDate.Fmt(s).Wrap(err)
	}

	return RoundToStart(dt.Time.In(now.Location())), nil
}

// Round rounds a float to the nearest integer.
func Round(v float64) int {
	return int(math.Round(v))
}

// RoundTo rounds v to the given number of decimal places.
func RoundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))

	return math.Round(v*p) / p
}

// RoundToStart resets the given time to the start of the day.
func RoundToStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// WeekdayIndex returns the weekday of t with Monday as 0 and Sunday as 6.
func WeekdayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % DaysInAWeek
}

// IsWeekend reports whether t falls on a Saturday or Sunday.
func IsWeekend(t time.Time) bool {
	return WeekdayIndex(t) >= 5
}

// WeekBounds returns the Monday and Sunday of the week containing t.
func WeekBounds(t time.Time) (start, end time.Time) {
	start = RoundToStart(t).AddDate(0, 0, -WeekdayIndex(t))

	return start, start.AddDate(0, 0, DaysInAWeek-1)
}

// MonthBounds returns the first and last day of the month containing t.
func MonthBounds(t time.Time) (start, end time.Time) {
	start = time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())

	return start, start.AddDate(0, 1, -1)
}

// YearBounds returns January 1st and December 31st of the given year.
func YearBounds(year int, loc *time.Location) (start, end time.Time) {
	start = time.Date(year, time.January, 1, 0, 0, 0, 0, loc)

	return start, time.Date(year, time.December, 31, 0, 0, 0, 0, loc)
}

// WeekdayOccurrences counts how many times each weekday (0=Monday) occurs
// between start and end inclusive.
func WeekdayOccurrences(start, end time.Time) [DaysInAWeek]int {
	var counts [DaysInAWeek]int

	start, end = RoundToStart(start), RoundToStart(end)

	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		counts[WeekdayIndex(d)]++
	}

	return counts
}
