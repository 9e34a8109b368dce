package parser

import "log/slog"

// Outline is a parsed grid: levels assigned, forest built.
type Outline struct {
	Grid   *Grid
	Forest *Forest
	Layout Layout
	// FirstRow is the resolved first data row.
	FirstRow int
	// MaxLevel is the deepest level assigned to any data row.
	MaxLevel int
}

// LevelCount returns the number of distinct depths in the outline. Levels
// are 0-based, so this is MaxLevel+1 for a non-empty outline.
func (o *Outline) LevelCount() int {
	if o.FirstRow >= o.Grid.Len() {
		return 0
	}
	return o.MaxLevel + 1
}

// Label returns the (filled) label of row.
func (o *Outline) Label(row int) string {
	return o.Grid.Cell(row, o.Layout.LabelColumn)
}

// IsMarker reports whether row is an aggregate-marker row.
func (o *Outline) IsMarker(row int) bool {
	return o.Layout.markers().IsMarker(o.Label(row))
}

type parseState struct {
	grid       *Grid
	layout     Layout
	markers    *MarkerSet
	shape      ShapeFunc
	forest     *Forest
	log        *slog.Logger
	first      int
	openParent int
}

// Parse runs the forward pass over g: it fills merged-cell gaps in the label
// column, assigns a level to every row and builds the forest. Aggregate
// markers close their sections inline.
func Parse(g *Grid, layout Layout) (*Outline, error) {
	first := layout.FirstDataRow
	if first < 0 {
		first = FindFirstDataRow(g, layout.HeaderRow, layout.LabelColumn)
		if first < 0 {
			first = g.Len()
		}
	}

	p := &parseState{
		grid:       g,
		layout:     layout,
		markers:    layout.markers(),
		shape:      layout.shape(),
		forest:     NewForest(),
		log:        layout.logger(),
		first:      first,
		openParent: -1,
	}

	for r := first; r < g.Len(); r++ {
		if err := p.step(r); err != nil {
			return nil, err
		}
	}

	maxLevel := 0
	for r := first; r < g.Len(); r++ {
		if g.Levels[r] < 0 {
			return nil, structuralf(r, InvariantNegativeLevel, "level %d", g.Levels[r])
		}
		if g.Levels[r] > maxLevel {
			maxLevel = g.Levels[r]
		}
	}

	return &Outline{
		Grid:     g,
		Forest:   p.forest,
		Layout:   layout,
		FirstRow: first,
		MaxLevel: maxLevel,
	}, nil
}

func (p *parseState) label(row int) string {
	return p.grid.Cell(row, p.layout.LabelColumn)
}

func (p *parseState) isMarker(row int) bool {
	return p.markers.IsMarker(p.label(row))
}

func (p *parseState) prevLevel(row int) int {
	if row == 0 {
		return 0
	}
	return p.grid.Levels[row-1]
}

func (p *parseState) step(r int) error {
	g := p.grid
	col := p.layout.LabelColumn

	if r > 0 && isBlank(g.Cell(r, col)) {
		g.SetCell(r, col, g.Cell(r-1, col))
	}
	label := p.label(r)

	// Same label as the row above: a sibling under the open header.
	if r > p.first && label == p.label(r-1) {
		g.Levels[r] = g.Levels[r-1]
		p.forest.AddNode(r, label)
		if !p.forest.Link(p.openParent, r) {
			p.log.Debug("sibling link rejected", slog.Int("row", r), slog.Int("parent", p.openParent))
		}
		return nil
	}

	if rule, ok := p.markers.Match(label); ok {
		return p.closeSection(r, rule)
	}

	if r == p.first {
		g.Levels[r] = 0
	} else {
		g.Levels[r] = g.Levels[r-1] + 1
	}
	p.forest.AddNode(r, label)
	p.openParent = r
	return nil
}
