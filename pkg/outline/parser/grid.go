// Package parser recovers the hierarchy of an indented spreadsheet outline.
package parser

import "strings"

// Grid is a rectangular block of string cells with one nesting level per row.
type Grid struct {
	// Cells holds the cell text, row-major. Every row has Width cells.
	Cells [][]string
	// Levels holds the nesting level assigned to each row during parsing.
	Levels []int
	// Width is the number of columns in every row.
	Width int
}

// NewGrid pads ragged rows into a rectangle and drops the first dropLeading
// columns of every row.
func NewGrid(rows [][]string, dropLeading int) *Grid {
	width := 0
	for _, row := range rows {
		if n := len(row) - dropLeading; n > width {
			width = n
		}
	}

	cells := make([][]string, len(rows))
	for i, row := range rows {
		cells[i] = make([]string, width)
		if len(row) > dropLeading {
			copy(cells[i], row[dropLeading:])
		}
	}

	return &Grid{
		Cells:  cells,
		Levels: make([]int, len(rows)),
		Width:  width,
	}
}

// Len returns the number of rows.
func (g *Grid) Len() int {
	return len(g.Cells)
}

// Cell returns the cell at (row, col), or "" when out of range.
func (g *Grid) Cell(row, col int) string {
	if row < 0 || row >= len(g.Cells) || col < 0 || col >= g.Width {
		return ""
	}
	return g.Cells[row][col]
}

// SetCell overwrites the cell at (row, col). Out of range writes are ignored.
func (g *Grid) SetCell(row, col int, value string) {
	if row < 0 || row >= len(g.Cells) || col < 0 || col >= g.Width {
		return
	}
	g.Cells[row][col] = value
}

// Truncate drops every row from n onwards.
func (g *Grid) Truncate(n int) {
	if n < 0 || n >= len(g.Cells) {
		return
	}
	g.Cells = g.Cells[:n]
	g.Levels = g.Levels[:n]
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
