package timeutil_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slihbo/WinTrace/internal/timeutil"
)

func mustDate(t *testing.T, key string) time.Time {
	t.Helper()

	d, err := timeutil.ParseDateKey(key, time.UTC)
	require.NoError(t, err)

	return d
}

func TestWeekdayIndex(t *testing.T) {
	cases := map[string]int{
		"2024-01-01": 0, // Monday
		"2024-01-06": 5,
		"2024-01-07": 6,
		"2024-01-10": 2,
	}

	for key, want := range cases {
		t.Run(key, func(t *testing.T) {
			assert.Equal(t, want, timeutil.WeekdayIndex(mustDate(t, key)))
		})
	}
}

func TestWeekBoundsStartOnMonday(t *testing.T) {
	testCases := []struct {
		anchor string
		start  string
		end    string
	}{
		{"2024-01-03", "2024-01-01", "2024-01-07"},
		{"2024-01-07", "2024-01-01", "2024-01-07"},
		{"2024-01-08", "2024-01-08", "2024-01-14"},
		{"2024-03-01", "2024-02-26", "2024-03-03"},
	}

	for _, tc := range testCases {
		t.Run(tc.anchor, func(t *testing.T) {
			start, end := timeutil.WeekBounds(mustDate(t, tc.anchor))

			assert.Equal(t, tc.start, timeutil.DateKey(start))
			assert.Equal(t, tc.end, timeutil.DateKey(end))
		})
	}
}

func TestMonthBounds(t *testing.T) {
	start, end := timeutil.MonthBounds(mustDate(t, "2024-02-14"))

	assert.Equal(t, "2024-02-01", timeutil.DateKey(start))
	assert.Equal(t, "2024-02-29", timeutil.DateKey(end))
}

func TestWeekdayOccurrences(t *testing.T) {
	start, end := timeutil.YearBounds(2024, time.UTC)

	counts := timeutil.WeekdayOccurrences(start, end)

	// 2024 is a leap year starting on a Monday
	assert.Equal(t, [7]int{53, 53, 52, 52, 52, 52, 52}, counts)
}

func TestParseDate(t *testing.T) {
	now := time.Date(2024, 5, 15, 13, 30, 0, 0, time.UTC)

	d, err := timeutil.ParseDate("2024-05-01", now)
	require.NoError(t, err)
	assert.Equal(t, "2024-05-01", timeutil.DateKey(d))

	d, err = timeutil.ParseDate("", now)
	require.NoError(t, err)
	assert.Equal(t, "2024-05-15", timeutil.DateKey(d))

	_, err = timeutil.ParseDateKey("2024-13-45", time.UTC)
	assert.ErrorIs(t, err, timeutil.ErrInvalidDate)
}
