// Package main provides the CLI entry point for outline-go.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/ukaji3/outline-go/internal/config"
	"github.com/ukaji3/outline-go/internal/logging"
	"github.com/ukaji3/outline-go/pkg/outline"
	"github.com/ukaji3/outline-go/pkg/outline/models"
	"github.com/ukaji3/outline-go/pkg/outline/output"
	"github.com/ukaji3/outline-go/pkg/outline/parser"
)

var (
	configPath string
	outputDir  string
	format     string
	pretty     bool
	workers    int
	sheet      string
	firstRow   int
)

func main() {
	rootCmd := newRootCmd()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "outline [input.xlsx | dir]...",
		Short: "Flatten indented spreadsheet outlines into tables",
		Long: `outline-go rebuilds the category tree hidden in indented report
exports and writes one flat row per data line, annotated with its
full chain of categories.`,
		RunE:         run,
		SilenceUsage: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configPath, "config", "c", "", "YAML config file")
	flags.StringVar(&sheet, "sheet", "", "Sheet to read (default: first sheet)")
	flags.IntVar(&firstRow, "first-row", 0, "First data row, 0-based (-1: detect)")

	rootCmd.Flags().StringVarP(&outputDir, "output", "o", "", "Output directory")
	rootCmd.Flags().StringVar(&format, "format", "", "Output format: xlsx or json")
	rootCmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	rootCmd.Flags().IntVar(&workers, "workers", 0, "Tables processed at once (default: CPU count)")

	rootCmd.AddCommand(newTreeCmd())
	return rootCmd
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("output") {
		cfg.Output.Dir = outputDir
	}
	if flags.Changed("format") {
		cfg.Output.Format = format
	}
	if flags.Changed("pretty") {
		cfg.Output.Pretty = pretty
	}
	if flags.Changed("workers") {
		cfg.Workers = workers
	}
	if flags.Changed("sheet") {
		cfg.Input.Sheet = sheet
	}
	if flags.Changed("first-row") {
		cfg.Layout.FirstDataRow = firstRow
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid flags: %w", err)
	}
	return cfg, nil
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger, closeLog, err := logging.New(cfg.Logging)
	if err != nil {
		return err
	}
	defer closeLog()
	logger = logging.WithRun(logger)

	paths := args
	if len(paths) == 0 {
		paths = cfg.Input.Paths
	}
	if len(paths) == 0 {
		return fmt.Errorf("no input paths: pass files or set input.paths")
	}

	sources, err := outline.Discover(paths, cfg.DiscoverOptions())
	if err != nil {
		return err
	}
	logger.Info("sources discovered", slog.Int("count", len(sources)))

	res, err := outline.Extract(cmd.Context(), sources, cfg.Options(logger))
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}

	if err := writeResult(res, cfg, logger); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	for _, w := range res.Warnings {
		fmt.Fprintln(cmd.ErrOrStderr(), "warning:", w.Error())
	}
	for _, f := range res.Failures {
		fmt.Fprintln(cmd.ErrOrStderr(), "error:", f.Message)
	}
	if len(res.Failures) > 0 {
		return fmt.Errorf("%d of %d tables failed", len(res.Failures), len(sources))
	}
	return nil
}

func writeResult(res *models.Result, cfg *config.Config, logger *slog.Logger) error {
	now := time.Now()

	if cfg.Output.Format == "json" {
		data, err := output.ToJSON(res, cfg.Output.Pretty)
		if err != nil {
			return fmt.Errorf("serialization failed: %w", err)
		}
		path, err := output.StampedPath(cfg.Output.Dir, cfg.Output.CombinedFile, "json", now)
		if err != nil {
			return err
		}
		logger.Info("writing json", slog.String("path", path))
		return os.WriteFile(path, data, 0644)
	}

	if len(res.Tables) == 0 {
		logger.Warn("nothing to write")
		return nil
	}

	var perTable []output.Sheet
	for _, t := range res.Tables {
		perTable = append(perTable, output.Sheet{Name: t.ID, Table: t})
	}

	var groups []output.Sheet
	for _, g := range cfg.Table.Groups {
		var members []*models.Table
		for _, id := range g.Members {
			t, ok := res.Table(id)
			if !ok {
				logger.Warn("group member missing", slog.String("group", g.Name), slog.String("table", id))
				continue
			}
			members = append(members, t)
		}
		groups = append(groups, output.Sheet{Name: g.Name, Table: output.Concat(g.Name, members...)})
	}

	combined := []output.Sheet{{Name: "All", Table: output.Concat("all", res.Tables...)}}

	for _, wb := range []struct {
		name   string
		sheets []output.Sheet
	}{
		{cfg.Output.TablesFile, perTable},
		{cfg.Output.GroupsFile, groups},
		{cfg.Output.CombinedFile, combined},
	} {
		if len(wb.sheets) == 0 {
			continue
		}
		path, err := output.StampedPath(cfg.Output.Dir, wb.name, "xlsx", now)
		if err != nil {
			return err
		}
		if err := output.WriteWorkbook(path, wb.sheets); err != nil {
			if errors.Is(err, output.ErrEmptyWorkbook) {
				logger.Warn("workbook skipped, all sheets empty", slog.String("name", wb.name))
				continue
			}
			return err
		}
		logger.Info("workbook written", slog.String("path", path), slog.Int("sheets", len(wb.sheets)))
	}

	return nil
}

func newTreeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tree <input>",
		Short: "Print the category tree rebuilt from one input",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			sources, err := outline.Discover(args, cfg.DiscoverOptions())
			if err != nil {
				return err
			}
			if len(sources) != 1 {
				return fmt.Errorf("expected one input, found %d", len(sources))
			}

			rows, err := sources[0].ReadGrid(cmd.Context())
			if err != nil {
				return err
			}
			grid := parser.NewGrid(rows, cfg.Layout.DropLeadingColumns)
			parser.TrimTrailing(grid)

			opts := cfg.Options(nil)
			o, err := parser.Parse(grid, opts.Layout)
			if err != nil {
				return err
			}
			printTree(cmd.OutOrStdout(), o)
			return nil
		},
	}
}

func printTree(w io.Writer, o *parser.Outline) {
	var walk func(row, depth int)
	walk = func(row, depth int) {
		label, _ := o.Forest.Label(row)
		fmt.Fprintf(w, "%s%s [row %d, level %d]\n", strings.Repeat("  ", depth), label, row+1, o.Grid.Levels[row])
		for _, child := range o.Forest.Children(row) {
			walk(child, depth+1)
		}
	}
	for _, root := range o.Forest.Roots() {
		walk(root, 0)
	}
}
