package output

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ukaji3/outline-go/pkg/outline/models"
	"github.com/xuri/excelize/v2"
)

// ErrEmptyWorkbook is returned when every sheet passed to WriteWorkbook is
// empty.
var ErrEmptyWorkbook = errors.New("no non-empty tables to write")

// maxSheetName is the Excel limit on sheet name length, in characters.
const maxSheetName = 31

// Sheet is one table written to its own worksheet.
type Sheet struct {
	Name  string
	Table *models.Table
}

// WriteWorkbook writes each non-empty table to its own sheet of a new
// workbook at path. Sheet names are made valid and unique.
func WriteWorkbook(path string, sheets []Sheet) error {
	f := excelize.NewFile()
	defer f.Close()

	defaultSheet := f.GetSheetName(0)
	used := make(map[string]bool)
	written := 0

	for _, s := range sheets {
		if s.Table == nil || s.Table.Len() == 0 {
			continue
		}

		name := uniqueSheetName(SheetName(s.Name), used)
		if written == 0 {
			if err := f.SetSheetName(defaultSheet, name); err != nil {
				return err
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return err
		}

		if err := writeTable(f, name, s.Table); err != nil {
			return fmt.Errorf("sheet %q: %w", name, err)
		}
		written++
	}

	if written == 0 {
		return ErrEmptyWorkbook
	}
	f.SetActiveSheet(0)
	return f.SaveAs(path)
}

func writeTable(f *excelize.File, sheet string, t *models.Table) error {
	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		return err
	}

	header := make([]any, len(t.Columns))
	for i, c := range t.Columns {
		header[i] = c
	}
	if err := sw.SetRow("A1", header); err != nil {
		return err
	}

	for i, row := range t.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := make([]any, len(row))
		for j, v := range row {
			if v == nil {
				v = ""
			}
			values[j] = v
		}
		if err := sw.SetRow(cell, values); err != nil {
			return err
		}
	}

	return sw.Flush()
}

// SheetName makes name a valid Excel sheet name.
func SheetName(name string) string {
	name = strings.Map(func(r rune) rune {
		if strings.ContainsRune(`:\/?*[]`, r) {
			return '_'
		}
		return r
	}, name)
	name = strings.Trim(strings.TrimSpace(name), "'")
	if name == "" {
		name = "Sheet"
	}
	return truncateRunes(name, maxSheetName)
}

func uniqueSheetName(name string, used map[string]bool) string {
	candidate := name
	for n := 2; used[strings.ToLower(candidate)]; n++ {
		suffix := fmt.Sprintf(" (%d)", n)
		candidate = truncateRunes(name, maxSheetName-len(suffix)) + suffix
	}
	used[strings.ToLower(candidate)] = true
	return candidate
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
