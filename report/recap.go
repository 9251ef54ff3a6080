package report

import (
	"fmt"
	"time"

	"github.com/slihbo/WinTrace/internal/models"
	"github.com/slihbo/WinTrace/internal/timeutil"
)

// YearlyRecap summarises one calendar year. Weekday indexes run from
// 0=Monday to 6=Sunday.
func (a *Aggregator) YearlyRecap(ds Dataset, year int) *models.YearlyRecap {
	loc := ds.location()
	start, end := timeutil.YearBounds(year, loc)

	var (
		months   [timeutil.MonthsInAYear]float64
		weekdays [timeutil.DaysInAWeek]float64
		hours    models.HourlyUsage
		weekend  float64
	)

	p := newPeriod()

	eachDay(ds, start, end, func(key string, date time.Time, day models.DailyUsage) {
		before := p.total
		p.add(key, day)
		secs := p.total - before

		months[date.Month()-1] += secs
		weekdays[timeutil.WeekdayIndex(date)] += secs

		if timeutil.IsWeekend(date) {
			weekend += secs
		}

		if h, ok := ds.Archive.Hours[key]; ok {
			for i := range h {
				hours[i] += h[i]
			}
		}
	})

	apps := a.rank(ds, p, start, end)

	recap := &models.YearlyRecap{
		Year:              year,
		TotalSeconds:      p.total,
		TotalHours:        timeutil.Round(p.total / timeutil.SecondsInAHour),
		Apps:              apps,
		CategoryBreakdown: breakdownOf(apps, p.total),
		MonthlyUsage:      monthlyUsage(months),
		PeakHour:          peakHour(hours),
	}

	if p.total > 0 {
		recap.WeekendPercentage = timeutil.Round(weekend / p.total * 100)
	}

	if len(apps) > 0 {
		top := apps[0]
		recap.TopApp = &top
	}

	if len(recap.CategoryBreakdown) > 0 {
		recap.TopCategory = recap.CategoryBreakdown[0].Category
	}

	// only the elapsed part of the current year counts towards averages
	today := timeutil.RoundToStart(a.now().In(loc))
	if today.Before(end) {
		end = today
	}

	recap.DailyAverages, recap.MostProductiveDay = dailyAverages(
		weekdays,
		timeutil.WeekdayOccurrences(start, end),
	)

	return recap
}

func monthlyUsage(months [timeutil.MonthsInAYear]float64) []models.MonthlyUsage {
	out := make([]models.MonthlyUsage, len(months))

	for i, secs := range months {
		out[i] = models.MonthlyUsage{
			Month:   i + 1,
			Hours:   timeutil.Round(secs / timeutil.SecondsInAHour),
			Seconds: secs,
		}
	}

	return out
}

// dailyAverages divides each weekday's total by the number of times that
// weekday occurred. The index of the highest average is returned alongside.
func dailyAverages(
	totals [timeutil.DaysInAWeek]float64,
	occurrences [timeutil.DaysInAWeek]int,
) ([]models.WeekdayAverage, int) {
	out := make([]models.WeekdayAverage, timeutil.DaysInAWeek)
	best, bestAvg := 0, 0.0

	for i := range totals {
		var avg float64
		if occurrences[i] > 0 {
			avg = totals[i] / float64(occurrences[i])
		}

		out[i] = models.WeekdayAverage{
			Day:   i,
			Hours: timeutil.RoundTo(avg/timeutil.SecondsInAHour, 1),
		}

		if avg > bestAvg {
			best, bestAvg = i, avg
		}
	}

	return out, best
}

// peakHour returns the busiest hour as "HH:00", or an empty string when no
// hourly data was recorded.
func peakHour(hours models.HourlyUsage) string {
	peak := -1
	most := 0.0

	for h, secs := range hours {
		if secs > most {
			peak, most = h, secs
		}
	}

	if peak < 0 {
		return ""
	}

	return fmt.Sprintf("%02d:00", peak)
}
