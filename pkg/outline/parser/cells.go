package parser

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// GridSource supplies the raw cells of one input table.
type GridSource interface {
	// Name identifies the source in logs and as a fallback table id.
	Name() string
	// ReadGrid returns the table as rows of string cells.
	ReadGrid(ctx context.Context) ([][]string, error)
}

// XLSXSource reads one sheet of an xlsx workbook.
type XLSXSource struct {
	Path string
	// Sheet selects the sheet. Empty means the first sheet.
	Sheet string
}

// Name returns the file name without extension.
func (s XLSXSource) Name() string {
	return stem(s.Path)
}

// ReadGrid opens the workbook and returns the selected sheet.
func (s XLSXSource) ReadGrid(ctx context.Context) ([][]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := excelize.OpenFile(s.Path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheet := s.Sheet
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	return ExtractCells(f, sheet)
}

// ExtractCells returns every row of a sheet as stored cell values, keeping
// empty rows so row indices match the sheet. Number formats are not applied,
// so "#,##0" counts come back as "1234" rather than "1,234".
func ExtractCells(f *excelize.File, sheetName string) ([][]string, error) {
	if idx, err := f.GetSheetIndex(sheetName); err != nil || idx < 0 {
		return nil, fmt.Errorf("sheet %q not found", sheetName)
	}
	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// StaticSource is an in-memory grid.
type StaticSource struct {
	ID   string
	Rows [][]string
}

// Name returns ID.
func (s StaticSource) Name() string {
	return s.ID
}

// ReadGrid returns a copy of Rows.
func (s StaticSource) ReadGrid(ctx context.Context) ([][]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([][]string, len(s.Rows))
	for i, row := range s.Rows {
		out[i] = append([]string(nil), row...)
	}
	return out, nil
}

func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
