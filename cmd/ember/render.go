package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"ember/internal/abi"
)

var (
	keyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
)

// renderFactsTable prints the resolved facts as an aligned two-column table.
func renderFactsTable(out io.Writer, f *abi.Facts, colored bool) {
	rows := factRows(f)
	keyWidth := 0
	for _, row := range rows {
		if w := runewidth.StringWidth(row[0]); w > keyWidth {
			keyWidth = w
		}
	}
	for _, row := range rows {
		key := row[0] + strings.Repeat(" ", keyWidth-runewidth.StringWidth(row[0]))
		value := row[1]
		if colored {
			key = keyStyle.Render(key)
			value = valueStyle.Render(value)
		}
		fmt.Fprintf(out, "  %s  %s\n", key, value)
	}
}
