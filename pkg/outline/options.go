// Package outline turns indented spreadsheet outlines into flat tables.
package outline

import (
	"log/slog"
	"runtime"

	"github.com/ukaji3/outline-go/pkg/outline/parser"
)

// Options configures extraction.
type Options struct {
	// Layout locates labels, values and fields in every grid.
	Layout parser.Layout
	// DropLeadingColumns removes this many columns from the left of every
	// grid before the layout is applied.
	DropLeadingColumns int
	// TitleRow and TitleColumn locate the cell the table id is derived from.
	// A negative TitleRow disables recognition and uses the source name.
	TitleRow    int
	TitleColumn int
	// TableColumn names the first output column, holding the table id.
	TableColumn string
	// LevelCount fixes the ancestor path width. Zero means the deepest
	// outline across all tables.
	LevelCount int
	// Workers bounds the number of tables processed at once. Zero means
	// GOMAXPROCS.
	Workers int
	// ExpectedTables lists table ids that should be produced.
	ExpectedTables []string
	// ExpectedCategories lists labels every table should contain.
	ExpectedCategories []string
	// Logger receives progress and warnings. Nil means slog.Default().
	Logger *slog.Logger
}

// DefaultOptions returns the options of the branch report export.
func DefaultOptions() Options {
	return Options{
		Layout:             parser.DefaultLayout(),
		DropLeadingColumns: 1,
		TitleRow:           9,
		TitleColumn:        0,
		TableColumn:        "Branch",
	}
}

func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.Default()
	}
	return o.Logger
}

func (o Options) workers() int {
	if o.Workers > 0 {
		return o.Workers
	}
	return runtime.GOMAXPROCS(0)
}
