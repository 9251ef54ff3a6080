package models

import "strings"

// Category groups applications for the breakdown reports.
type Category string

const (
	CategoryProductivity  Category = "Productivity"
	CategoryDevelopment   Category = "Development"
	CategoryCommunication Category = "Communication"
	CategoryEntertainment Category = "Entertainment"
	CategoryGames         Category = "Games"
	CategoryBrowsing      Category = "Browsing"
	CategorySystem        Category = "System"
	CategoryDesignMedia   Category = "DesignMedia"
	CategoryCloud         Category = "Cloud"
	CategoryOther         Category = "Other"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryProductivity,
	CategoryDevelopment,
	CategoryCommunication,
	CategoryEntertainment,
	CategoryGames,
	CategoryBrowsing,
	CategorySystem,
	CategoryDesignMedia,
	CategoryCloud,
	CategoryOther,
}

var productiveCategories = map[Category]bool{
	CategoryProductivity: true,
	CategoryDevelopment:  true,
	CategoryDesignMedia:  true,
}

// ParseCategory resolves a category name case-insensitively.
func ParseCategory(name string) (Category, bool) {
	name = strings.TrimSpace(name)

	for _, c := range Categories {
		if strings.EqualFold(string(c), name) {
			return c, true
		}
	}

	return "", false
}

// IsProductive reports whether time spent in c counts towards the
// productivity score.
func (c Category) IsProductive() bool {
	return productiveCategories[c]
}

func (c Category) String() string {
	return string(c)
}
