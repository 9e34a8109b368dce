package parser

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// CSVSource reads a delimited text export.
type CSVSource struct {
	Path string
	// Encoding is "" or "utf-8" for UTF-8, "cp1251"/"windows-1251" for the
	// Cyrillic code page.
	Encoding string
	// Comma is the field delimiter. Zero means ';'.
	Comma rune
}

// Name returns the file name without extension.
func (s CSVSource) Name() string {
	return stem(s.Path)
}

// ReadGrid reads and decodes the file.
func (s CSVSource) ReadGrid(ctx context.Context) ([][]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.Path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r, err := decoder(f, s.Encoding)
	if err != nil {
		return nil, err
	}
	return ReadCSV(r, s.Comma)
}

// ReadCSV parses delimited rows from r. Rows may have different lengths.
func ReadCSV(r io.Reader, comma rune) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.Comma = ';'
	if comma != 0 {
		cr.Comma = comma
	}
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	return cr.ReadAll()
}

func decoder(r io.Reader, encoding string) (io.Reader, error) {
	switch strings.ToLower(encoding) {
	case "", "utf-8", "utf8":
		return r, nil
	case "cp1251", "windows-1251":
		return charmap.Windows1251.NewDecoder().Reader(r), nil
	case "koi8-r":
		return charmap.KOI8R.NewDecoder().Reader(r), nil
	default:
		return nil, fmt.Errorf("unsupported encoding %q", encoding)
	}
}
