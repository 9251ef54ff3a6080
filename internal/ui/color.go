// Package ui holds the terminal presentation helpers shared by the CLI
// commands.
package ui

import (
	"github.com/pterm/pterm"

	"github.com/slihbo/WinTrace/internal/models"
)

// DarkTheme selects the light variants of each colour, which read better on
// dark backgrounds.
var DarkTheme bool

func Green(a any) string {
	if DarkTheme {
		return pterm.LightGreen(a)
	}

	return pterm.Green(a)
}

func Cyan(a any) string {
	if DarkTheme {
		return pterm.LightCyan(a)
	}

	return pterm.Cyan(a)
}

func Magenta(a any) string {
	if DarkTheme {
		return pterm.LightMagenta(a)
	}

	return pterm.Magenta(a)
}

func Blue(a any) string {
	if DarkTheme {
		return pterm.LightBlue(a)
	}

	return pterm.Blue(a)
}

func Yellow(a any) string {
	if DarkTheme {
		return pterm.LightYellow(a)
	}

	return pterm.Yellow(a)
}

func Red(a any) string {
	if DarkTheme {
		return pterm.LightRed(a)
	}

	return pterm.Red(a)
}

func Highlight(a any) string {
	if DarkTheme {
		return pterm.LightWhite(a)
	}

	return pterm.Black(a)
}

// Category colours a category name consistently across reports.
func Category(c models.Category) string {
	switch c {
	case models.CategoryProductivity, models.CategoryDevelopment, models.CategoryDesignMedia:
		return Green(c)
	case models.CategoryCommunication, models.CategoryCloud:
		return Cyan(c)
	case models.CategoryEntertainment, models.CategoryGames:
		return Magenta(c)
	case models.CategoryBrowsing:
		return Blue(c)
	case models.CategorySystem:
		return Yellow(c)
	}

	return Highlight(c)
}
