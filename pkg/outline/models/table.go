// Package models defines the flat tables produced from outlines.
package models

// Table is a flattened outline: one row per leaf.
type Table struct {
	// ID is the table identifier, e.g. a branch code.
	ID string `json:"id"`
	// Source is the name of the grid the table was read from.
	Source string `json:"source,omitempty"`
	// Columns names every column of Rows.
	Columns []string `json:"columns"`
	// Rows holds cell values: string, int64, float64 or nil.
	Rows [][]any `json:"rows"`
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// ColumnIndex returns the position of the named column, or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}
