package outline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/ukaji3/outline-go/pkg/outline/models"
	"github.com/ukaji3/outline-go/pkg/outline/parser"
)

// tableJob is owned by exactly one worker at a time.
type tableJob struct {
	src     parser.GridSource
	id      string
	outline *parser.Outline
	table   *models.Table
	misses  []models.RecognitionMiss
	err     *TableError
}

// Extract reads, parses and flattens every source. Tables are processed by
// independent workers; a table that fails is reported in Result.Failures and
// does not affect the others. All tables share one ancestor path width.
func Extract(ctx context.Context, sources []parser.GridSource, opts Options) (*models.Result, error) {
	if len(sources) == 0 {
		return nil, ErrNoSources
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	log := opts.logger()

	jobs := make([]*tableJob, len(sources))
	for i, src := range sources {
		jobs[i] = &tableJob{src: src}
	}

	// Parse every table.
	run(jobs, opts.workers(), func(j *tableJob) {
		parseTable(ctx, j, opts)
	})

	dedupeIDs(jobs)

	levelCount := opts.LevelCount
	if levelCount == 0 {
		for _, j := range jobs {
			if j.err == nil && j.outline.LevelCount() > levelCount {
				levelCount = j.outline.LevelCount()
			}
		}
	}

	// Flatten with the shared width.
	run(jobs, opts.workers(), func(j *tableJob) {
		if j.err != nil {
			return
		}
		flattenTable(j, levelCount, opts)
	})

	res := &models.Result{LevelCount: levelCount}
	produced := make(map[string]bool)
	for _, j := range jobs {
		res.Warnings = append(res.Warnings, j.misses...)
		if j.err != nil {
			log.Error("table failed",
				slog.String("table", j.id),
				slog.String("source", j.src.Name()),
				slog.String("stage", j.err.Stage),
				slog.String("error", j.err.Err.Error()))
			res.Failures = append(res.Failures, models.Failure{
				Table:   j.id,
				Source:  j.src.Name(),
				Message: j.err.Error(),
				Err:     j.err,
			})
			continue
		}
		produced[j.id] = true
		res.Tables = append(res.Tables, j.table)
		log.Info("table flattened",
			slog.String("table", j.id),
			slog.String("source", j.src.Name()),
			slog.Int("leaves", j.table.Len()),
			slog.Int("levels", j.outline.LevelCount()))
	}

	for _, id := range opts.ExpectedTables {
		if !produced[id] {
			res.Warnings = append(res.Warnings, models.RecognitionMiss{Kind: models.MissTable, Label: id})
		}
	}
	for _, w := range res.Warnings {
		log.Warn("recognition miss", slog.String("table", w.Table), slog.String("kind", w.Kind), slog.String("label", w.Label))
	}

	return res, nil
}

func run(jobs []*tableJob, workers int, fn func(*tableJob)) {
	var g errgroup.Group
	g.SetLimit(workers)
	for _, j := range jobs {
		g.Go(func() error {
			fn(j)
			return nil
		})
	}
	_ = g.Wait()
}

func parseTable(ctx context.Context, j *tableJob, opts Options) {
	j.id = j.src.Name()

	rows, err := j.src.ReadGrid(ctx)
	if err != nil {
		j.err = NewTableError(j.id, j.src.Name(), StageRead, err)
		return
	}

	grid := parser.NewGrid(rows, opts.DropLeadingColumns)
	parser.TrimTrailing(grid)

	if opts.TitleRow >= 0 {
		title := grid.Cell(opts.TitleRow, opts.TitleColumn)
		if code, ok := parser.TableCode(title); ok {
			j.id = code
		} else {
			j.misses = append(j.misses, models.RecognitionMiss{Table: j.id, Kind: models.MissTableID, Label: title})
		}
	}

	layout := opts.Layout
	layout.Logger = opts.logger().With(slog.String("table", j.id))

	o, err := parser.Parse(grid, layout)
	if err != nil {
		j.err = NewTableError(j.id, j.src.Name(), StageParse, err)
		return
	}
	j.outline = o

	// Only top-level headers count as categories.
	labels := make(map[string]bool)
	for _, root := range o.Forest.Roots() {
		labels[o.Label(root)] = true
	}
	for _, c := range opts.ExpectedCategories {
		if !labels[c] {
			j.misses = append(j.misses, models.RecognitionMiss{Table: j.id, Kind: models.MissCategory, Label: c})
		}
	}
}

func flattenTable(j *tableJob, levelCount int, opts Options) {
	leaves, err := parser.Flatten(j.outline, levelCount)
	if err != nil {
		j.err = NewTableError(j.id, j.src.Name(), StageFlatten, err)
		return
	}

	columns := []string{opts.TableColumn}
	columns = append(columns, parser.FieldNames(j.outline)...)
	columns = append(columns, parser.AncestorColumns(levelCount)...)

	rows := make([][]any, 0, len(leaves))
	for _, leaf := range leaves {
		row := make([]any, 0, len(columns))
		row = append(row, j.id)
		row = append(row, leaf.Fields...)
		for _, label := range leaf.Path {
			row = append(row, label)
		}
		rows = append(rows, row)
	}

	j.table = &models.Table{
		ID:      j.id,
		Source:  j.src.Name(),
		Columns: columns,
		Rows:    rows,
	}
}

// dedupeIDs suffixes repeated table ids in source order.
func dedupeIDs(jobs []*tableJob) {
	seen := make(map[string]int)
	for _, j := range jobs {
		seen[j.id]++
		if n := seen[j.id]; n > 1 {
			j.misses = append(j.misses, models.RecognitionMiss{Table: j.id, Kind: models.MissDuplicate, Label: j.src.Name()})
			j.id = fmt.Sprintf("%s-%d", j.id, n)
			if j.err != nil {
				j.err.Table = j.id
			}
		}
	}
}

// IsStructural reports whether err carries a StructuralError.
func IsStructural(err error) bool {
	var se *StructuralError
	return errors.As(err, &se)
}
