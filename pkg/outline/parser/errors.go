package parser

import "fmt"

// Invariant names a structural rule an outline broke.
type Invariant string

const (
	InvariantNegativeLevel    Invariant = "negative-level"
	InvariantNoAncestors      Invariant = "no-ancestors"
	InvariantAncestorOverflow Invariant = "ancestor-overflow"
	InvariantMarkerKey        Invariant = "marker-key-not-found"
	InvariantInvalidField     Invariant = "invalid-field"
)

// StructuralError is a fatal inconsistency in one outline. It aborts the
// table being parsed.
type StructuralError struct {
	// Row is the 0-based grid row index.
	Row       int
	Invariant Invariant
	Detail    string
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("structural error at row %d (sheet row %d): %s: %s",
		e.Row, e.Row+1, e.Invariant, e.Detail)
}

func structuralf(row int, inv Invariant, format string, args ...any) *StructuralError {
	return &StructuralError{
		Row:       row,
		Invariant: inv,
		Detail:    fmt.Sprintf(format, args...),
	}
}
