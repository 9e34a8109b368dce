package parser

import "log/slog"

// FieldKind selects how a leaf field cell is converted.
type FieldKind string

const (
	FieldText  FieldKind = "text"
	FieldInt   FieldKind = "int"
	FieldFloat FieldKind = "float"
)

// Field is one business value copied from a leaf row into the flat table.
type Field struct {
	// Column is the 0-based grid column.
	Column int
	// Kind selects the conversion. Empty means FieldText.
	Kind FieldKind
	// Name overrides the column name read from the header row.
	Name string
}

// Layout describes where things live in a grid.
type Layout struct {
	// FirstDataRow is the first row of the outline. Negative means "first
	// row after HeaderRow with a label".
	FirstDataRow int
	// HeaderRow holds the field column names. Negative means none.
	HeaderRow int
	// LabelColumn holds the outline labels.
	LabelColumn int
	// ValueColumn decides whether a row is a leaf: blank means header only.
	ValueColumn int
	// Fields are copied from every leaf row.
	Fields []Field
	// Markers recognizes aggregate-marker rows. Nil means DefaultMarkers.
	Markers *MarkerSet
	// Shape decides how a closing marker repairs its section. Nil means
	// DetectShape.
	Shape ShapeFunc
	// Logger receives debug records about links and closed sections. Nil
	// means slog.Default().
	Logger *slog.Logger
}

// DefaultLayout returns the layout of the branch report export, after its
// empty leading column has been dropped.
func DefaultLayout() Layout {
	return Layout{
		FirstDataRow: 18,
		HeaderRow:    14,
		LabelColumn:  0,
		ValueColumn:  2,
		Fields: []Field{
			{Column: 2, Kind: FieldText},
			{Column: 3, Kind: FieldInt},
			{Column: 4, Kind: FieldFloat},
			{Column: 11, Kind: FieldFloat},
			{Column: 16, Kind: FieldText},
		},
		Markers: DefaultMarkers(),
	}
}

func (l Layout) markers() *MarkerSet {
	if l.Markers == nil {
		return DefaultMarkers()
	}
	return l.Markers
}

func (l Layout) shape() ShapeFunc {
	if l.Shape == nil {
		return DetectShape
	}
	return l.Shape
}

func (l Layout) logger() *slog.Logger {
	if l.Logger == nil {
		return slog.Default()
	}
	return l.Logger
}
