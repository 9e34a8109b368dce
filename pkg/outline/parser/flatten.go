package parser

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Leaf is one data-bearing row with its ancestor path.
type Leaf struct {
	// Row is the grid row index of the leaf.
	Row int
	// Fields holds the converted leaf field values, in Layout.Fields order.
	Fields []any
	// Path holds ancestor labels, root first, padded to the level count.
	Path []string
}

// AncestorColumns names n path columns: "Category", "Subdivision-1", ...
func AncestorColumns(n int) []string {
	cols := make([]string, n)
	for i := range cols {
		if i == 0 {
			cols[i] = "Category"
			continue
		}
		cols[i] = fmt.Sprintf("Subdivision-%d", i)
	}
	return cols
}

// FieldNames returns the column name of each leaf field: the override when
// set, otherwise the header row cell, otherwise "Column N".
func FieldNames(o *Outline) []string {
	names := make([]string, len(o.Layout.Fields))
	for i, f := range o.Layout.Fields {
		switch {
		case f.Name != "":
			names[i] = f.Name
		case o.Layout.HeaderRow >= 0 && !isBlank(o.Grid.Cell(o.Layout.HeaderRow, f.Column)):
			names[i] = strings.TrimSpace(o.Grid.Cell(o.Layout.HeaderRow, f.Column))
		default:
			names[i] = fmt.Sprintf("Column %d", f.Column+1)
		}
	}
	return names
}

// Flatten emits one Leaf per data-bearing row, in row order. levelCount is
// the width of every ancestor path.
func Flatten(o *Outline, levelCount int) ([]Leaf, error) {
	g := o.Grid
	leaves := make([]Leaf, 0, max(0, g.Len()-o.FirstRow))

	for r := o.FirstRow; r < g.Len(); r++ {
		if isBlank(g.Cell(r, o.Layout.ValueColumn)) || o.IsMarker(r) {
			continue
		}

		path := o.Forest.Ancestors(r)
		if len(path) == 0 {
			return nil, structuralf(r, InvariantNoAncestors, "leaf %q has no parent", o.Label(r))
		}
		if len(path) > levelCount {
			return nil, structuralf(r, InvariantAncestorOverflow,
				"leaf %q has %d ancestors, only %d levels", o.Label(r), len(path), levelCount)
		}
		for len(path) < levelCount {
			path = append(path, "")
		}

		fields := make([]any, len(o.Layout.Fields))
		for i, f := range o.Layout.Fields {
			v, err := convertField(g.Cell(r, f.Column), f.Kind)
			if err != nil {
				return nil, structuralf(r, InvariantInvalidField, "column %d: %v", f.Column+1, err)
			}
			fields[i] = v
		}

		leaves = append(leaves, Leaf{Row: r, Fields: fields, Path: path})
	}

	return leaves, nil
}

// convertField converts a cell by kind. Blank numeric cells become nil.
func convertField(s string, kind FieldKind) (any, error) {
	switch kind {
	case FieldInt:
		n := normalizeNumber(s)
		if n == "" {
			return nil, nil
		}
		if i, err := strconv.ParseInt(n, 10, 64); err == nil {
			return i, nil
		}
		// Excel often stores whole numbers as "3.0"
		f, err := strconv.ParseFloat(n, 64)
		if err != nil || f != math.Trunc(f) {
			return nil, fmt.Errorf("%q is not an integer", s)
		}
		return int64(f), nil
	case FieldFloat:
		n := normalizeNumber(s)
		if n == "" {
			return nil, nil
		}
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return nil, fmt.Errorf("%q is not a number", s)
		}
		return f, nil
	default:
		return s, nil
	}
}

// normalizeNumber drops digit-group spaces and turns a decimal comma into a
// point.
func normalizeNumber(s string) string {
	s = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\u00a0', '\u202f':
			return -1
		}
		return r
	}, s)
	return strings.ReplaceAll(s, ",", ".")
}
