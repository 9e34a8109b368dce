// Package config loads the extraction settings from YAML and the environment.
package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override, e.g. OUTLINE_WORKERS.
const EnvPrefix = "OUTLINE"

// Config represents the complete application configuration
type Config struct {
	Input   InputConfig    `yaml:"input" envconfig:"INPUT"`
	Layout  LayoutConfig   `yaml:"layout" envconfig:"LAYOUT"`
	Markers []MarkerConfig `yaml:"markers" ignored:"true" validate:"dive"`
	Table   TableConfig    `yaml:"table" envconfig:"TABLE"`
	Output  OutputConfig   `yaml:"output" envconfig:"OUTPUT"`
	Logging LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
	Workers int            `yaml:"workers" envconfig:"WORKERS" validate:"min=0"`
}

// InputConfig selects the files to read
type InputConfig struct {
	Paths      []string `yaml:"paths" envconfig:"PATHS"`
	Extensions []string `yaml:"extensions" envconfig:"EXTENSIONS"`
	Sheet      string   `yaml:"sheet" envconfig:"SHEET"`
	Encoding   string   `yaml:"encoding" envconfig:"ENCODING" validate:"omitempty,oneof=utf-8 utf8 cp1251 windows-1251 koi8-r"`
	Delimiter  string   `yaml:"delimiter" envconfig:"DELIMITER" validate:"omitempty,len=1"`
}

// LayoutConfig locates the outline inside every grid
type LayoutConfig struct {
	FirstDataRow       int           `yaml:"first_data_row" envconfig:"FIRST_DATA_ROW" validate:"min=-1"`
	HeaderRow          int           `yaml:"header_row" envconfig:"HEADER_ROW" validate:"min=-1"`
	LabelColumn        int           `yaml:"label_column" envconfig:"LABEL_COLUMN" validate:"min=0"`
	ValueColumn        int           `yaml:"value_column" envconfig:"VALUE_COLUMN" validate:"min=0"`
	DropLeadingColumns int           `yaml:"drop_leading_columns" envconfig:"DROP_LEADING_COLUMNS" validate:"min=0"`
	LevelCount         int           `yaml:"level_count" envconfig:"LEVEL_COUNT" validate:"min=0"`
	Fields             []FieldConfig `yaml:"fields" ignored:"true" validate:"dive"`
}

// FieldConfig is one leaf field copied into the output
type FieldConfig struct {
	Column int    `yaml:"column" validate:"min=0"`
	Kind   string `yaml:"kind" validate:"omitempty,oneof=text int float"`
	Name   string `yaml:"name"`
}

// MarkerConfig recognizes one kind of subtotal or residual row
type MarkerConfig struct {
	Token       string `yaml:"token" validate:"required"`
	PrefixWidth int    `yaml:"prefix_width" validate:"min=0"`
	Residual    bool   `yaml:"residual"`
	TrimSuffix  string `yaml:"trim_suffix"`
}

// TableConfig controls table identification and grouping
type TableConfig struct {
	TitleRow           int           `yaml:"title_row" envconfig:"TITLE_ROW" validate:"min=-1"`
	TitleColumn        int           `yaml:"title_column" envconfig:"TITLE_COLUMN" validate:"min=0"`
	Column             string        `yaml:"column" envconfig:"COLUMN" validate:"required"`
	Expected           []string      `yaml:"expected" envconfig:"EXPECTED"`
	ExpectedCategories []string      `yaml:"expected_categories" envconfig:"EXPECTED_CATEGORIES"`
	Groups             []GroupConfig `yaml:"groups" ignored:"true" validate:"dive"`
}

// GroupConfig merges several tables into one output sheet
type GroupConfig struct {
	Name    string   `yaml:"name" validate:"required"`
	Members []string `yaml:"members" validate:"min=1"`
}

// OutputConfig controls where results are written
type OutputConfig struct {
	Dir          string `yaml:"dir" envconfig:"DIR" validate:"required"`
	Format       string `yaml:"format" envconfig:"FORMAT" validate:"oneof=xlsx json"`
	Pretty       bool   `yaml:"pretty" envconfig:"PRETTY"`
	TablesFile   string `yaml:"tables_file" envconfig:"TABLES_FILE" validate:"required"`
	GroupsFile   string `yaml:"groups_file" envconfig:"GROUPS_FILE" validate:"required"`
	CombinedFile string `yaml:"combined_file" envconfig:"COMBINED_FILE" validate:"required"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn warning error"`
	Format   string `yaml:"format" envconfig:"FORMAT" validate:"oneof=json text"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=stdout stderr file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// Default returns the configuration of the branch report export.
func Default() *Config {
	return &Config{
		Layout: LayoutConfig{
			FirstDataRow:       18,
			HeaderRow:          14,
			LabelColumn:        0,
			ValueColumn:        2,
			DropLeadingColumns: 1,
			Fields: []FieldConfig{
				{Column: 2, Kind: "text"},
				{Column: 3, Kind: "int"},
				{Column: 4, Kind: "float"},
				{Column: 11, Kind: "float"},
				{Column: 16, Kind: "text"},
			},
		},
		Markers: []MarkerConfig{
			{Token: "Итого", PrefixWidth: 6},
			{Token: "Total", PrefixWidth: 6},
			{Token: "Остаток", PrefixWidth: 8, Residual: true},
			{Token: "Residual", PrefixWidth: 9, Residual: true},
		},
		Table: TableConfig{
			TitleRow:    9,
			TitleColumn: 0,
			Column:      "Branch",
		},
		Output: OutputConfig{
			Dir:          "out",
			Format:       "xlsx",
			TablesFile:   "By branch",
			GroupsFile:   "Branches merged",
			CombinedFile: "All branches",
		},
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "stderr",
			FilePath: "logs/outline.log",
		},
	}
}

// Load builds the configuration: defaults, then the YAML file at path (if
// path is not empty), then OUTLINE_* environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := loadFromFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// loadFromFile overlays the YAML file onto cfg
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// Validate checks field constraints and layout consistency.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return err
	}
	if c.Layout.FirstDataRow >= 0 && c.Layout.HeaderRow >= c.Layout.FirstDataRow {
		return fmt.Errorf("header_row %d must precede first_data_row %d", c.Layout.HeaderRow, c.Layout.FirstDataRow)
	}
	if len(c.Markers) == 0 {
		return fmt.Errorf("at least one marker is required")
	}
	return nil
}
