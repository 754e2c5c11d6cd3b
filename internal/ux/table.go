package ux

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	cellStyle   = lipgloss.NewStyle()
)

// Table is a simple Tabular backed by a header and rows. List commands
// build one from the API result after client-side filtering and paging.
type Table struct {
	Head []string
	Data [][]string
}

// Header implements Tabular.
func (t Table) Header() []string { return t.Head }

// Rows implements Tabular.
func (t Table) Rows() [][]string { return t.Data }

// writeTable renders a padded text table.
func writeTable(w io.Writer, tab Tabular) error {
	header := tab.Header()
	rows := tab.Rows()

	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	var b strings.Builder
	for i, h := range header {
		b.WriteString(headerStyle.Render(pad(h, widths[i])))
		if i < len(header)-1 {
			b.WriteString("  ")
		}
	}
	b.WriteString("\n")

	for _, row := range rows {
		for i, cell := range row {
			if i >= len(widths) {
				break
			}
			b.WriteString(cellStyle.Render(pad(cell, widths[i])))
			if i < len(row)-1 {
				b.WriteString("  ")
			}
		}
		b.WriteString("\n")
	}

	_, err := fmt.Fprint(w, b.String())
	return err
}

func pad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
