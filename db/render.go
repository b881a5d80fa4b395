package db

import (
	"fmt"
	"io"
	"strings"

	"github.com/nickyhof/MiniDB/core"
)

// SimpleTable draws an ASCII grid of header and rows.
type SimpleTable struct {
	writer  io.Writer
	headers []string
	rows    [][]string
}

func NewSimpleTable(w io.Writer) *SimpleTable {
	return &SimpleTable{
		writer: w,
		rows:   make([][]string, 0),
	}
}

func (t *SimpleTable) Header(headers []string) {
	t.headers = headers
}

func (t *SimpleTable) Row(row []string) {
	t.rows = append(t.rows, row)
}

// Render writes the grid. Nothing is written for an empty table.
func (t *SimpleTable) Render() {
	if len(t.headers) == 0 && len(t.rows) == 0 {
		return
	}

	widths := t.widths()
	separator := separatorLine(widths)

	fmt.Fprintln(t.writer, separator)
	if len(t.headers) > 0 {
		fmt.Fprintln(t.writer, paddedLine(t.headers, widths))
		fmt.Fprintln(t.writer, separator)
	}
	for _, row := range t.rows {
		fmt.Fprintln(t.writer, paddedLine(row, widths))
	}
	fmt.Fprintln(t.writer, separator)
}

func (t *SimpleTable) widths() []int {
	numCols := len(t.headers)
	for _, row := range t.rows {
		numCols = max(numCols, len(row))
	}

	widths := make([]int, numCols)
	for i, header := range t.headers {
		widths[i] = max(widths[i], len(header))
	}
	for _, row := range t.rows {
		for i, cell := range row {
			widths[i] = max(widths[i], len(cell))
		}
	}
	for i := range widths {
		widths[i] = max(widths[i], 1)
	}

	return widths
}

func separatorLine(widths []int) string {
	parts := make([]string, len(widths))
	for i, w := range widths {
		parts[i] = strings.Repeat("-", w+2)
	}
	return "+" + strings.Join(parts, "+") + "+"
}

func paddedLine(cells []string, widths []int) string {
	parts := make([]string, len(widths))
	for i, w := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		parts[i] = " " + cell + strings.Repeat(" ", w-len(cell)+1)
	}
	return "|" + strings.Join(parts, "|") + "|"
}

// formatRow lays out row in column order. Missing fields render empty,
// present nulls as NULL.
func formatRow(columns []string, row core.Row) []string {
	cells := make([]string, len(columns))
	for i, column := range columns {
		if value, ok := row[column]; ok {
			cells[i] = value.String()
		}
	}
	return cells
}
