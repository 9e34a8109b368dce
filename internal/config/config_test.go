package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukaji3/outline-go/pkg/outline/parser"
)

func writeYAML(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "outline.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 18, cfg.Layout.FirstDataRow)
	assert.Equal(t, 1, cfg.Layout.DropLeadingColumns)
	assert.Equal(t, "Branch", cfg.Table.Column)
	assert.Equal(t, "xlsx", cfg.Output.Format)
	assert.Len(t, cfg.Markers, 4)
	assert.Len(t, cfg.Layout.Fields, 5)
}

func TestLoadFromFile(t *testing.T) {
	path := writeYAML(t, `
layout:
  first_data_row: 3
  header_row: 1
  fields:
    - column: 1
      kind: int
      name: Count
markers:
  - token: Sum
    prefix_width: 4
table:
  groups:
    - name: South
      members: [юз, з]
output:
  format: json
  pretty: true
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Layout.FirstDataRow)
	assert.Equal(t, 1, cfg.Layout.HeaderRow)
	assert.Equal(t, []FieldConfig{{Column: 1, Kind: "int", Name: "Count"}}, cfg.Layout.Fields)
	assert.Equal(t, []MarkerConfig{{Token: "Sum", PrefixWidth: 4}}, cfg.Markers)
	assert.Equal(t, []GroupConfig{{Name: "South", Members: []string{"юз", "з"}}}, cfg.Table.Groups)
	assert.Equal(t, "json", cfg.Output.Format)
	assert.True(t, cfg.Output.Pretty)

	// untouched sections keep their defaults
	assert.Equal(t, "Branch", cfg.Table.Column)
	assert.Equal(t, "out", cfg.Output.Dir)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("OUTLINE_WORKERS", "4")
	t.Setenv("OUTLINE_OUTPUT_DIR", "/tmp/reports")
	t.Setenv("OUTLINE_INPUT_PATHS", "a.xlsx,b.xlsx")
	t.Setenv("OUTLINE_LOGGING_LEVEL", "debug")

	cfg, err := Load(writeYAML(t, "workers: 2\n"))
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, "/tmp/reports", cfg.Output.Dir)
	assert.Equal(t, []string{"a.xlsx", "b.xlsx"}, cfg.Input.Paths)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to load config from file")

	_, err = Load(writeYAML(t, "output: [broken"))
	assert.Error(t, err)

	_, err = Load(writeYAML(t, "output:\n  format: csv\n"))
	assert.ErrorContains(t, err, "config validation failed")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"header after data", func(c *Config) { c.Layout.HeaderRow = 18 }},
		{"no markers", func(c *Config) { c.Markers = nil }},
		{"marker without token", func(c *Config) { c.Markers = []MarkerConfig{{PrefixWidth: 3}} }},
		{"bad field kind", func(c *Config) { c.Layout.Fields = []FieldConfig{{Column: 1, Kind: "date"}} }},
		{"bad encoding", func(c *Config) { c.Input.Encoding = "latin-9" }},
		{"long delimiter", func(c *Config) { c.Input.Delimiter = ";;" }},
		{"empty group", func(c *Config) { c.Table.Groups = []GroupConfig{{Name: "South"}} }},
		{"negative workers", func(c *Config) { c.Workers = -1 }},
		{"bad log output", func(c *Config) { c.Logging.Output = "syslog" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}

	cfg := Default()
	cfg.Layout.FirstDataRow = -1
	cfg.Layout.HeaderRow = 20
	assert.NoError(t, cfg.Validate(), "header order is not checked when the first row is detected")
}

func TestOptions(t *testing.T) {
	cfg := Default()
	cfg.Workers = 3
	cfg.Table.Expected = []string{"ц"}

	opts := cfg.Options(nil)

	assert.Equal(t, 3, opts.Workers)
	assert.Equal(t, 1, opts.DropLeadingColumns)
	assert.Equal(t, 9, opts.TitleRow)
	assert.Equal(t, []string{"ц"}, opts.ExpectedTables)
	assert.Equal(t, parser.FieldInt, opts.Layout.Fields[1].Kind)
	assert.Equal(t, 2, opts.Layout.ValueColumn)
}

func TestMarkerSet(t *testing.T) {
	cfg := Default()
	cfg.Markers = append(cfg.Markers, MarkerConfig{Token: "Прочие", PrefixWidth: 7, Residual: true, TrimSuffix: "!"})
	m := cfg.MarkerSet()

	rule, ok := m.Match("Остаток: грузовые.")
	require.True(t, ok)
	assert.Equal(t, "Грузовые", rule.SearchKey("Остаток: грузовые."))

	rule, ok = m.Match("Прочие: fleet!")
	require.True(t, ok)
	assert.Equal(t, "Fleet", rule.SearchKey("Прочие: fleet!"))

	rule, ok = m.Match("Итого: Fleet")
	require.True(t, ok)
	assert.Equal(t, "Fleet", rule.SearchKey("Итого: Fleet"))
}

func TestDiscoverOptions(t *testing.T) {
	cfg := Default()
	cfg.Input.Delimiter = ","
	cfg.Input.Encoding = "cp1251"
	cfg.Input.Sheet = "Data"

	opts := cfg.DiscoverOptions()
	assert.Equal(t, ',', opts.Comma)
	assert.Equal(t, "cp1251", opts.Encoding)
	assert.Equal(t, "Data", opts.Sheet)

	assert.Zero(t, Default().DiscoverOptions().Comma)
}

func TestLoadExampleConfig(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "configs", "outline.example.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "cp1251", cfg.Input.Encoding)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, "both", cfg.Logging.Output)
	assert.Len(t, cfg.Table.Groups, 1)
	assert.Len(t, cfg.MarkerSet().Rules(), 4)
}
