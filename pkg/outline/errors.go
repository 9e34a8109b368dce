package outline

import (
	"errors"
	"fmt"

	"github.com/ukaji3/outline-go/pkg/outline/models"
	"github.com/ukaji3/outline-go/pkg/outline/parser"
)

// ErrFileNotFound indicates an input path does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrInvalidFormat indicates an input file has an unsupported extension.
var ErrInvalidFormat = errors.New("invalid input format")

// ErrNoSources indicates there was nothing to extract.
var ErrNoSources = errors.New("no input sources")

// StructuralError is a fatal inconsistency in one outline.
type StructuralError = parser.StructuralError

// RecognitionMiss is a non-fatal warning about an expected label.
type RecognitionMiss = models.RecognitionMiss

// Stages reported by TableError.
const (
	StageRead    = "read"
	StageParse   = "parse"
	StageFlatten = "flatten"
)

// TableError represents a failure while processing one table.
type TableError struct {
	Table  string
	Source string
	Stage  string
	Err    error
}

func (e *TableError) Error() string {
	return fmt.Sprintf("table %q (%s) failed to %s: %v", e.Table, e.Source, e.Stage, e.Err)
}

func (e *TableError) Unwrap() error {
	return e.Err
}

// NewTableError creates a new TableError.
func NewTableError(table, source, stage string, err error) *TableError {
	return &TableError{
		Table:  table,
		Source: source,
		Stage:  stage,
		Err:    err,
	}
}
