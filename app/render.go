package app

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/maruel/natural"
	"github.com/pterm/pterm"
	"gopkg.in/yaml.v3"

	"github.com/slihbo/WinTrace/internal/models"
	"github.com/slihbo/WinTrace/internal/timeutil"
	"github.com/slihbo/WinTrace/internal/ui"
)

const noUsageMsg = "No usage recorded for the specified period"

var weekdayNames = [timeutil.DaysInAWeek]string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// encode writes v as JSON or YAML. It reports false when neither format was
// requested.
func encode(w io.Writer, v any, asJSON, asYAML bool) (bool, error) {
	switch {
	case asJSON:
		b, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return true, err
		}

		_, err = fmt.Fprintln(w, string(b))

		return true, err
	case asYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)

		if err := enc.Encode(v); err != nil {
			return true, err
		}

		return true, enc.Close()
	}

	return false, nil
}

func header(text string) string {
	return pterm.DefaultHeader.WithBackgroundStyle(pterm.NewStyle(pterm.BgYellow)).
		WithTextStyle(pterm.NewStyle(pterm.FgBlack)).
		Sprintln(text)
}

func appsTable(w io.Writer, apps []models.AppUsage, total float64, top int) {
	if top > 0 && len(apps) > top {
		apps = apps[:top]
	}

	rows := make([][]string, 0, len(apps))

	for i := range apps {
		a := apps[i]

		share := 0.0
		if total > 0 {
			share = a.DurationSeconds / total * 100
		}

		lastActive := ""
		if !a.LastActive.IsZero() {
			lastActive = a.LastActive.Local().Format("Jan 02, 2006 03:04 PM")
		}

		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			a.Name,
			ui.Category(a.Category),
			ui.Duration(a.DurationSeconds),
			fmt.Sprintf("%.1f%%", share),
			lastActive,
		})
	}

	ui.PrintTable(w, []string{"#", "APPLICATION", "CATEGORY", "TIME", "SHARE", "LAST ACTIVE"}, rows)
}

func categoryChart(breakdown []models.CategoryShare) string {
	bars := make([]ui.Bar, len(breakdown))

	for i, c := range breakdown {
		bars[i] = ui.Bar{Label: string(c.Category), Value: c.Percentage}
	}

	return ui.BarChart("Categories (%)", bars)
}

func printStats(w io.Writer, stats *models.PeriodStats, top int) {
	fmt.Fprint(w, header(stats.Date))

	if stats.TotalSeconds == 0 {
		pterm.Info.Println(noUsageMsg)
		return
	}

	var summary strings.Builder

	fmt.Fprintf(&summary, "%s: %s\n", ui.Blue("Total time"), ui.Highlight(ui.Duration(stats.TotalSeconds)))
	fmt.Fprintf(&summary, "%s: %s\n", ui.Blue("Productivity"), ui.Highlight(fmt.Sprintf("%d%%", stats.ProductivityScore)))
	fmt.Fprintf(&summary, "%s: %s\n", ui.Blue("Applications"), ui.Highlight(len(stats.Apps)))

	fmt.Fprintln(w, summary.String())

	appsTable(w, stats.Apps, stats.TotalSeconds, top)

	fmt.Fprintln(w, categoryChart(stats.CategoryBreakdown))
}

func printRecap(w io.Writer, recap *models.YearlyRecap, top int) {
	fmt.Fprint(w, header(fmt.Sprintf("%d in review", recap.Year)))

	if recap.TotalSeconds == 0 {
		pterm.Info.Println(noUsageMsg)
		return
	}

	var summary strings.Builder

	fmt.Fprintf(&summary, "%s: %s\n", ui.Blue("Total time"), ui.Highlight(fmt.Sprintf("%d hours", recap.TotalHours)))

	if recap.TopApp != nil {
		fmt.Fprintf(&summary, "%s: %s (%s)\n", ui.Blue("Top application"), ui.Highlight(recap.TopApp.Name), ui.Duration(recap.TopApp.DurationSeconds))
	}

	fmt.Fprintf(&summary, "%s: %s\n", ui.Blue("Top category"), ui.Category(recap.TopCategory))

	if recap.PeakHour != "" {
		fmt.Fprintf(&summary, "%s: %s\n", ui.Blue("Peak hour"), ui.Highlight(recap.PeakHour))
	}

	fmt.Fprintf(&summary, "%s: %s\n", ui.Blue("Weekend share"), ui.Highlight(fmt.Sprintf("%d%%", recap.WeekendPercentage)))
	fmt.Fprintf(&summary, "%s: %s\n", ui.Blue("Busiest weekday"), ui.Highlight(weekdayNames[recap.MostProductiveDay]))

	fmt.Fprintln(w, summary.String())

	appsTable(w, recap.Apps, recap.TotalSeconds, top)

	months := make([]ui.Bar, len(recap.MonthlyUsage))
	for i, m := range recap.MonthlyUsage {
		months[i] = ui.Bar{Label: time.Month(m.Month).String(), Value: m.Hours}
	}

	// averages are shown in minutes since whole hours flatten most days
	days := make([]ui.Bar, len(recap.DailyAverages))
	for i, d := range recap.DailyAverages {
		days[i] = ui.Bar{Label: weekdayNames[d.Day], Value: timeutil.Round(d.Hours * 60)}
	}

	fmt.Fprint(w,
		categoryChart(recap.CategoryBreakdown),
		ui.BarChart("Monthly breakdown (hours)", months),
		ui.BarChart("Average day (minutes)", days),
	)
	fmt.Fprintln(w)
}

func printOverrides(w io.Writer, overrides models.Overrides) {
	if len(overrides) == 0 {
		pterm.Info.Println("No category overrides set")
		return
	}

	ids := make([]string, 0, len(overrides))
	for id := range overrides {
		ids = append(ids, id)
	}

	sort.Sort(natural.StringSlice(ids))

	rows := make([][]string, 0, len(ids))
	for _, id := range ids {
		rows = append(rows, []string{id, ui.Category(overrides[id])})
	}

	ui.PrintTable(w, []string{"APPLICATION", "CATEGORY"}, rows)
}
