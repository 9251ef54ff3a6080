package ui

import (
	"fmt"
	"io"

	"github.com/pterm/pterm"
)

// PrintTable writes rows under header as a boxed table. Nothing is written
// when there are no rows.
func PrintTable(w io.Writer, header []string, rows [][]string) {
	if len(rows) == 0 {
		return
	}

	data := make(pterm.TableData, 0, len(rows)+1)
	data = append(data, header)
	data = append(data, rows...)

	str, err := pterm.DefaultTable.
		WithBoxed().
		WithHasHeader().
		WithHeaderStyle(pterm.NewStyle(pterm.Bold)).
		WithData(data).
		Srender()
	if err != nil {
		pterm.Error.Printfln("Failed to render table: %s", err.Error())
		return
	}

	fmt.Fprintln(w, str)
}
