package models

import "fmt"

// Miss kinds reported by RecognitionMiss.
const (
	MissTableID   = "table-id"
	MissDuplicate = "duplicate-table-id"
	MissTable     = "expected-table"
	MissCategory  = "expected-category"
)

// RecognitionMiss is a non-fatal warning: an expected label was not found.
type RecognitionMiss struct {
	// Table is the table the miss belongs to; empty for run-wide misses.
	Table string `json:"table,omitempty"`
	Kind  string `json:"kind"`
	Label string `json:"label"`
}

func (m RecognitionMiss) Error() string {
	if m.Table == "" {
		return fmt.Sprintf("%s %q not found", m.Kind, m.Label)
	}
	return fmt.Sprintf("table %s: %s %q not found", m.Table, m.Kind, m.Label)
}

// Failure records a table that could not be processed.
type Failure struct {
	Table   string `json:"table"`
	Source  string `json:"source"`
	Message string `json:"error"`
	Err     error  `json:"-"`
}

// Result is the outcome of one extraction run.
type Result struct {
	// Tables holds the flattened tables in source order.
	Tables []*Table `json:"tables"`
	// LevelCount is the width of the ancestor path shared by all tables.
	LevelCount int               `json:"level_count"`
	Failures   []Failure         `json:"failures,omitempty"`
	Warnings   []RecognitionMiss `json:"warnings,omitempty"`
}

// Table returns the table with the given id.
func (r *Result) Table(id string) (*Table, bool) {
	for _, t := range r.Tables {
		if t.ID == id {
			return t, true
		}
	}
	return nil, false
}
