package report_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slihbo/WinTrace/internal/models"
	"github.com/slihbo/WinTrace/report"
)

var now = time.Date(2024, 3, 13, 16, 30, 0, 0, time.UTC)

func TestParseQuery(t *testing.T) {
	testCases := []struct {
		name   string
		mode   string
		date   string
		start  string
		end    string
		want   models.ViewMode
		anchor string
		rng    [2]string
	}{
		{name: "defaults", want: models.ViewDaily, anchor: "2024-03-13"},
		{name: "date key", mode: "Weekly", date: "2024-01-03", want: models.ViewWeekly, anchor: "2024-01-03"},
		{name: "relative date", mode: "daily", date: "yesterday", want: models.ViewDaily, anchor: "2024-03-12"},
		{
			name:   "custom range",
			mode:   "custom",
			start:  "2024-01-01",
			end:    "2024-01-31",
			want:   models.ViewCustom,
			anchor: "2024-03-13",
			rng:    [2]string{"2024-01-01", "2024-01-31"},
		},
		{name: "custom without range", mode: "custom", want: models.ViewCustom, anchor: "2024-03-13"},
		{name: "range ignored outside custom", mode: "monthly", start: "2024-02-01", end: "2024-01-01", want: models.ViewMonthly, anchor: "2024-03-13"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			q, err := report.ParseQuery(tc.mode, tc.date, tc.start, tc.end, now)
			require.NoError(t, err)

			assert.Equal(t, tc.want, q.Mode)
			assert.Equal(t, tc.anchor, q.Anchor.Format("2006-01-02"))

			if tc.rng[0] == "" {
				assert.Nil(t, q.Range)
				return
			}

			require.NotNil(t, q.Range)
			assert.Equal(t, tc.rng[0], q.Range.Start.Format("2006-01-02"))
			assert.Equal(t, tc.rng[1], q.Range.End.Format("2006-01-02"))
		})
	}
}

func TestParseQueryErrors(t *testing.T) {
	_, err := report.ParseQuery("hourly", "", "", "", now)
	assert.ErrorIs(t, err, report.ErrUnknownMode)

	_, err = report.ParseQuery("custom", "", "2024-01-01", "", now)
	assert.ErrorIs(t, err, report.ErrIncompleteRange)

	_, err = report.ParseQuery("custom", "", "2024-02-01", "2024-01-01", now)
	assert.ErrorIs(t, err, report.ErrInvalidRange)
}

func TestParseYear(t *testing.T) {
	year, err := report.ParseYear("", now)
	require.NoError(t, err)
	assert.Equal(t, 2024, year)

	year, err = report.ParseYear(" 2022 ", now)
	require.NoError(t, err)
	assert.Equal(t, 2022, year)

	for _, bad := range []string{"twenty", "-1", "123456"} {
		_, err = report.ParseYear(bad, now)
		assert.ErrorIs(t, err, report.ErrInvalidYear, bad)
	}
}

func TestLabel(t *testing.T) {
	testCases := []struct {
		mode       models.ViewMode
		start, end string
		want       string
	}{
		{models.ViewDaily, "2024-01-01", "2024-01-01", "Monday, January 1, 2024"},
		{models.ViewWeekly, "2024-01-01", "2024-01-07", "Jan 1 - Jan 7, 2024"},
		{models.ViewWeekly, "2024-12-30", "2025-01-05", "Dec 30, 2024 - Jan 5, 2025"},
		{models.ViewMonthly, "2024-02-01", "2024-02-29", "February 2024"},
		{models.ViewYearly, "2024-01-01", "2024-12-31", "2024"},
		{models.ViewCustom, "2024-05-05", "2024-05-05", "May 5, 2024"},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.want, report.Label(tc.mode, day(tc.start), day(tc.end)))
	}
}

func TestDisplayName(t *testing.T) {
	testCases := map[string]string{
		"chrome.exe":    "Chrome",
		"CODE.EXE":      "CODE",
		"firefox":       "Firefox",
		"my app.exe":    "My app",
		".exe":          ".exe",
		"":              "",
		"élan.exe":      "Élan",
		"notepad++.exe": "Notepad++",
	}

	for id, want := range testCases {
		assert.Equal(t, want, report.DisplayName(id), id)
	}
}
