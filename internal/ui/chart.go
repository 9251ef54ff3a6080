package ui

import (
	"github.com/pterm/pterm"
)

const barChartChar = "▇"

// Bar is one labelled value of a bar chart.
type Bar struct {
	Label string
	Value int
}

// BarChart renders bars horizontally under a coloured header. An empty
// string is returned when there is nothing to draw.
func BarChart(header string, bars []Bar) string {
	if len(bars) == 0 {
		return ""
	}

	pbars := make(pterm.Bars, len(bars))

	for i, b := range bars {
		pbars[i] = pterm.Bar{
			Label: b.Label,
			Value: b.Value,
		}
	}

	chart, err := pterm.DefaultBarChart.WithHorizontalBarCharacter(barChartChar).
		WithHorizontal().
		WithShowValue().
		WithBars(pbars).
		Srender()
	if err != nil {
		pterm.Error.Println(err)
		return ""
	}

	return Blue("\n"+header) + "\n" + chart
}
