package parser

import "log/slog"

// Shape is how a closing marker treats the rows of its section.
type Shape int

const (
	// ShapeNormal links children at KeyLevel+1 as they are.
	ShapeNormal Shape = iota
	// ShapeMixed first pushes the rows after PrevRow one level down.
	ShapeMixed
)

func (s Shape) String() string {
	if s == ShapeMixed {
		return "mixed"
	}
	return "normal"
}

// SectionWindow is the span a closing marker acts on.
type SectionWindow struct {
	// Start is the first row of the run labelled with the search key.
	Start int
	// PrevRow is the nearest row above the marker labelled with the key.
	PrevRow int
	// Marker is the marker row.
	Marker int
	// KeyLevel is the level of PrevRow.
	KeyLevel int

	levels   []int
	isMarker func(int) bool
}

// Level returns the current level of row.
func (w SectionWindow) Level(row int) int {
	return w.levels[row]
}

// IsMarker reports whether row is an aggregate marker.
func (w SectionWindow) IsMarker(row int) bool {
	return w.isMarker(row)
}

// ShapeFunc decides the shape of a section.
type ShapeFunc func(w SectionWindow) Shape

// DetectShape reports ShapeMixed when a non-marker row between PrevRow and
// the marker is not nested below the key, meaning the forward pass
// under-counted its depth.
func DetectShape(w SectionWindow) Shape {
	for i := w.PrevRow + 1; i < w.Marker; i++ {
		if w.IsMarker(i) {
			continue
		}
		if w.Level(i) <= w.KeyLevel {
			return ShapeMixed
		}
	}
	return ShapeNormal
}

func (p *parseState) closeSection(r int, rule MarkerRule) error {
	g := p.grid

	if key := rule.SearchKey(p.label(r)); key != "" {
		prevRow := -1
		for i := r - 1; i >= p.first; i-- {
			if p.label(i) == key {
				prevRow = i
				break
			}
		}
		if prevRow < 0 {
			return structuralf(r, InvariantMarkerKey, "no row labelled %q above %q", key, p.label(r))
		}

		start := prevRow
		for start-1 >= p.first && p.label(start-1) == key {
			start--
		}

		w := SectionWindow{
			Start:    start,
			PrevRow:  prevRow,
			Marker:   r,
			KeyLevel: g.Levels[prevRow],
			levels:   g.Levels,
			isMarker: p.isMarker,
		}

		from := start + 1
		shape := p.shape(w)
		if shape == ShapeMixed {
			for i := prevRow + 1; i <= r; i++ {
				g.Levels[i]++
			}
			from = prevRow + 1
		}
		p.log.Debug("section closed",
			slog.Int("row", r),
			slog.String("key", key),
			slog.Int("start", start),
			slog.String("shape", shape.String()))

		p.linkChildren(start, from, r, w.KeyLevel+1)
	}

	level := p.prevLevel(r) - 1
	if level < 0 {
		return structuralf(r, InvariantNegativeLevel, "marker %q closes below the root (level %d)", p.label(r), level)
	}
	g.Levels[r] = level
	return nil
}

// linkChildren links parent to the first row of each distinct label in
// [from, to) that sits at level.
func (p *parseState) linkChildren(parent, from, to, level int) {
	seen := make(map[string]struct{})
	for i := from; i < to; i++ {
		if p.grid.Levels[i] != level || p.isMarker(i) {
			continue
		}
		label := p.label(i)
		if _, dup := seen[label]; dup {
			continue
		}
		seen[label] = struct{}{}
		if !p.forest.Link(parent, i) {
			p.log.Debug("child already linked", slog.Int("row", i), slog.Int("parent", parent))
		}
	}
}
