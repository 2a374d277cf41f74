package stats

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// table lays out plain-text columns padded to terminal cell width, so wide
// characters from a corpus keep the columns straight.
type table struct {
	headers    []string
	rows       [][]string
	alignRight map[int]bool
}

func formatTable(headers []string, rows [][]string, alignRight map[int]bool) []string {
	return table{headers: headers, rows: rows, alignRight: alignRight}.lines()
}

func (t table) lines() []string {
	widths := t.columnWidths()
	if len(widths) == 0 {
		return nil
	}
	out := make([]string, 0, len(t.rows)+1)
	if len(t.headers) > 0 {
		out = append(out, t.line(t.headers, widths))
	}
	for _, row := range t.rows {
		out = append(out, t.line(row, widths))
	}
	return out
}

func (t table) columnWidths() []int {
	cols := len(t.headers)
	for _, row := range t.rows {
		cols = max(cols, len(row))
	}
	widths := make([]int, cols)
	measure := func(row []string) {
		for i, cell := range row {
			widths[i] = max(widths[i], cellWidth(cell))
		}
	}
	measure(t.headers)
	for _, row := range t.rows {
		measure(row)
	}
	return widths
}

func (t table) line(row []string, widths []int) string {
	cells := make([]string, len(widths))
	for i, width := range widths {
		var cell string
		if i < len(row) {
			cell = row[i]
		}
		cells[i] = pad(cell, width, t.alignRight[i])
	}
	return strings.Join(cells, " ")
}

func pad(cell string, width int, right bool) string {
	gap := width - cellWidth(cell)
	if gap <= 0 {
		return cell
	}
	if right {
		return strings.Repeat(" ", gap) + cell
	}
	return cell + strings.Repeat(" ", gap)
}

func cellWidth(s string) int {
	return runewidth.StringWidth(s)
}
