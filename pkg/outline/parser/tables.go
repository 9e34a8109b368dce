package parser

// DataBounds is the bounding box of non-empty cells in a grid (0-based,
// inclusive). MinRow is -1 when the grid holds no data.
type DataBounds struct {
	MinRow, MaxRow int
	MinCol, MaxCol int
}

// Empty reports whether no non-empty cell was found.
func (b DataBounds) Empty() bool {
	return b.MinRow < 0
}

// DetectDataBounds finds the bounding box of non-empty cells.
func DetectDataBounds(g *Grid) DataBounds {
	b := DataBounds{MinRow: -1, MaxRow: -1, MinCol: -1, MaxCol: -1}

	for rowIdx, row := range g.Cells {
		for colIdx, cell := range row {
			if isBlank(cell) {
				continue
			}
			if b.MinRow < 0 || rowIdx < b.MinRow {
				b.MinRow = rowIdx
			}
			if b.MaxRow < 0 || rowIdx > b.MaxRow {
				b.MaxRow = rowIdx
			}
			if b.MinCol < 0 || colIdx < b.MinCol {
				b.MinCol = colIdx
			}
			if b.MaxCol < 0 || colIdx > b.MaxCol {
				b.MaxCol = colIdx
			}
		}
	}

	return b
}

// TrimTrailing drops the empty rows after the last non-empty one.
func TrimTrailing(g *Grid) {
	b := DetectDataBounds(g)
	if b.Empty() {
		g.Truncate(0)
		return
	}
	g.Truncate(b.MaxRow + 1)
}

// FindFirstDataRow returns the first row after headerRow whose label cell is
// not blank, or -1 if there is none.
func FindFirstDataRow(g *Grid, headerRow, labelCol int) int {
	start := headerRow + 1
	if start < 0 {
		start = 0
	}
	for r := start; r < g.Len(); r++ {
		if !isBlank(g.Cell(r, labelCol)) {
			return r
		}
	}
	return -1
}
