package report

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/slihbo/WinTrace/internal/models"
	"github.com/slihbo/WinTrace/internal/timeutil"
)

// ParseQuery builds a Query from user input. date, start and end accept an
// ISO date-key or a natural phrase such as "last monday". An empty mode is
// daily and an empty date is today.
func ParseQuery(mode, date, start, end string, now time.Time) (Query, error) {
	var q Query

	m := models.ViewMode(strings.ToLower(strings.TrimSpace(mode)))
	if m == "" {
		m = models.ViewDaily
	}

	if !isViewMode(m) {
		return q, ErrUnknownMode.Fmt(mode)
	}

	q.Mode = m
	q.Anchor = timeutil.RoundToStart(now)

	if date != "" {
		t, err := timeutil.ParseDate(date, now)
		if err != nil {
			return q, err
		}

		q.Anchor = t
	}

	if m != models.ViewCustom || (start == "" && end == "") {
		return q, nil
	}

	if start == "" || end == "" {
		return q, ErrIncompleteRange
	}

	s, err := timeutil.ParseDate(start, now)
	if err != nil {
		return q, err
	}

	e, err := timeutil.ParseDate(end, now)
	if err != nil {
		return q, err
	}

	q.Range = &Range{Start: s, End: e}

	if s.After(e) {
		return q, ErrInvalidRange.Fmt(timeutil.DateKey(s), timeutil.DateKey(e))
	}

	return q, nil
}

// ParseYear parses a recap year. An empty string is the year of now.
func ParseYear(s string, now time.Time) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return now.Year(), nil
	}

	year, err := strconv.Atoi(s)
	if err != nil || year < 1970 || year > 9999 {
		return 0, ErrInvalidYear.Fmt(s)
	}

	return year, nil
}

func isViewMode(m models.ViewMode) bool {
	for _, v := range models.ViewModes {
		if v == m {
			return true
		}
	}

	return false
}

// Label returns the human-readable name of a report period.
func Label(mode models.ViewMode, start, end time.Time) string {
	switch mode {
	case models.ViewDaily:
		return start.Format("Monday, January 2, 2006")
	case models.ViewWeekly, models.ViewCustom:
		if start.Equal(end) {
			return start.Format("Jan 2, 2006")
		}

		if start.Year() == end.Year() {
			return fmt.Sprintf(
				"%s - %s",
				start.Format("Jan 2"),
				end.Format("Jan 2, 2006"),
			)
		}

		return fmt.Sprintf(
			"%s - %s",
			start.Format("Jan 2, 2006"),
			end.Format("Jan 2, 2006"),
		)
	case models.ViewMonthly:
		return start.Format("January 2006")
	case models.ViewYearly:
		return strconv.Itoa(start.Year())
	}

	return timeutil.DateKey(start)
}

// DisplayName turns an identity into a name fit for display: a trailing
// ".exe" is dropped and the first letter upper-cased.
func DisplayName(id string) string {
	name := id
	if len(name) > len(".exe") && strings.EqualFold(name[len(name)-4:], ".exe") {
		name = name[:len(name)-4]
	}

	r, size := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		return name
	}

	return string(unicode.ToUpper(r)) + name[size:]
}
