package config

import (
	"log/slog"

	"github.com/ukaji3/outline-go/pkg/outline"
	"github.com/ukaji3/outline-go/pkg/outline/parser"
)

// defaultResidualSuffix is trimmed from residual keys when TrimSuffix is empty.
const defaultResidualSuffix = ".):"

// Options converts the configuration into extraction options.
func (c *Config) Options(logger *slog.Logger) outline.Options {
	fields := make([]parser.Field, len(c.Layout.Fields))
	for i, f := range c.Layout.Fields {
		fields[i] = parser.Field{
			Column: f.Column,
			Kind:   parser.FieldKind(f.Kind),
			Name:   f.Name,
		}
	}

	return outline.Options{
		Layout: parser.Layout{
			FirstDataRow: c.Layout.FirstDataRow,
			HeaderRow:    c.Layout.HeaderRow,
			LabelColumn:  c.Layout.LabelColumn,
			ValueColumn:  c.Layout.ValueColumn,
			Fields:       fields,
			Markers:      c.MarkerSet(),
		},
		DropLeadingColumns: c.Layout.DropLeadingColumns,
		TitleRow:           c.Table.TitleRow,
		TitleColumn:        c.Table.TitleColumn,
		TableColumn:        c.Table.Column,
		LevelCount:         c.Layout.LevelCount,
		Workers:            c.Workers,
		ExpectedTables:     c.Table.Expected,
		ExpectedCategories: c.Table.ExpectedCategories,
		Logger:             logger,
	}
}

// MarkerSet builds the marker rules in configuration order.
func (c *Config) MarkerSet() *parser.MarkerSet {
	rules := make([]parser.MarkerRule, len(c.Markers))
	for i, m := range c.Markers {
		rule := parser.MarkerRule{Token: m.Token, PrefixWidth: m.PrefixWidth}
		if m.Residual {
			suffix := m.TrimSuffix
			if suffix == "" {
				suffix = defaultResidualSuffix
			}
			rule.Normalizer = parser.CapitalizeKey(suffix)
		}
		rules[i] = rule
	}
	return parser.NewMarkerSet(rules...)
}

// DiscoverOptions converts the input section.
func (c *Config) DiscoverOptions() outline.DiscoverOptions {
	var comma rune
	if c.Input.Delimiter != "" {
		comma = []rune(c.Input.Delimiter)[0]
	}
	return outline.DiscoverOptions{
		Extensions: c.Input.Extensions,
		Sheet:      c.Input.Sheet,
		Encoding:   c.Input.Encoding,
		Comma:      comma,
	}
}
