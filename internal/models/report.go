package models

import "time"

// ViewMode selects the calendar period of a stats query.
type ViewMode string

const (
	ViewDaily   ViewMode = "daily"
	ViewWeekly  ViewMode = "weekly"
	ViewMonthly ViewMode = "monthly"
	ViewYearly  ViewMode = "yearly"
	ViewCustom  ViewMode = "custom"
)

// ViewModes lists the supported modes.
var ViewModes = []ViewMode{
	ViewDaily,
	ViewWeekly,
	ViewMonthly,
	ViewYearly,
	ViewCustom,
}

type (
	// AppUsage is the per-application row of a report. It is derived on every
	// query and never persisted.
	AppUsage struct {
		LastActive      time.Time `json:"lastActive"      yaml:"last_active"`
		ID              string    `json:"id"              yaml:"id"`
		Name            string    `json:"name"            yaml:"name"`
		Category        Category  `json:"category"        yaml:"category"`
		DurationSeconds float64   `json:"durationSeconds" yaml:"duration_seconds"`
		IsProductive    bool      `json:"isProductive"    yaml:"is_productive"`
	}

	// CategoryShare is one entry of a category percentage breakdown.
	CategoryShare struct {
		Category   Category `json:"category"   yaml:"category"`
		Seconds    float64  `json:"seconds"    yaml:"seconds"`
		Percentage int      `json:"percentage" yaml:"percentage"`
	}

	// PeriodStats answers a get_stats query.
	PeriodStats struct {
		Date              string          `json:"date"                 yaml:"date"`
		ViewMode          ViewMode        `json:"viewMode"             yaml:"view_mode"`
		Start             string          `json:"start"                yaml:"start"`
		End               string          `json:"end"                  yaml:"end"`
		Apps              []AppUsage      `json:"apps"                 yaml:"apps"`
		CategoryBreakdown []CategoryShare `json:"categoryBreakdown"    yaml:"category_breakdown"`
		TotalSeconds      float64         `json:"totalDurationSeconds" yaml:"total_seconds"`
		ProductivityScore int             `json:"productivityScore"    yaml:"productivity_score"`
	}

	// MonthlyUsage is the total of one calendar month.
	MonthlyUsage struct {
		Month   int     `json:"month"   yaml:"month"`
		Hours   int     `json:"hours"   yaml:"hours"`
		Seconds float64 `json:"seconds" yaml:"seconds"`
	}

	// WeekdayAverage is the mean daily activity of one weekday, indexed
	// 0=Monday through 6=Sunday.
	WeekdayAverage struct {
		Day   int     `json:"day"   yaml:"day"`
		Hours float64 `json:"hours" yaml:"hours"`
	}

	// YearlyRecap answers a get_yearly_recap query.
	YearlyRecap struct {
		TopApp            *AppUsage        `json:"topApp,omitempty"      yaml:"top_app,omitempty"`
		PeakHour          string           `json:"peakHour,omitempty"    yaml:"peak_hour,omitempty"`
		TopCategory       Category         `json:"topCategory,omitempty" yaml:"top_category,omitempty"`
		CategoryBreakdown []CategoryShare  `json:"categoryBreakdown"     yaml:"category_breakdown"`
		MonthlyUsage      []MonthlyUsage   `json:"monthlyUsage"          yaml:"monthly_usage"`
		DailyAverages     []WeekdayAverage `json:"dailyAverages"         yaml:"daily_averages"`
		Apps              []AppUsage       `json:"apps"                  yaml:"apps"`
		Year              int              `json:"year"                  yaml:"year"`
		TotalHours        int              `json:"totalHours"            yaml:"total_hours"`
		TotalSeconds      float64          `json:"totalSeconds"          yaml:"total_seconds"`
		WeekendPercentage int              `json:"weekendPercentage"     yaml:"weekend_percentage"`
		MostProductiveDay int              `json:"mostProductiveDay"     yaml:"most_productive_day"`
	}
)
