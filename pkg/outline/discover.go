package outline

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/ukaji3/outline-go/pkg/outline/parser"
)

// DiscoverOptions controls how paths are turned into grid sources.
type DiscoverOptions struct {
	// Extensions are matched when scanning directories, without the dot.
	// Empty means xlsx, xlsm and csv.
	Extensions []string
	// Sheet is passed to every XLSXSource.
	Sheet string
	// Encoding and Comma are passed to every CSVSource.
	Encoding string
	Comma    rune
}

var defaultExtensions = []string{"xlsx", "xlsm", "csv"}

// Discover expands files and directories into grid sources. Directories are
// scanned one level deep, in name order; Office lock files are skipped.
func Discover(paths []string, opts DiscoverOptions) ([]parser.GridSource, error) {
	exts := opts.Extensions
	if len(exts) == 0 {
		exts = defaultExtensions
	}

	var sources []parser.GridSource
	for _, path := range paths {
		info, err := os.Stat(path)
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		if err != nil {
			return nil, err
		}

		if !info.IsDir() {
			src, err := sourceFor(path, opts)
			if err != nil {
				return nil, err
			}
			sources = append(sources, src)
			continue
		}

		entries, err := os.ReadDir(path)
		if err != nil {
			return nil, err
		}
		for _, entry := range entries {
			name := entry.Name()
			if entry.IsDir() || strings.HasPrefix(name, "~$") {
				continue
			}
			if !slices.Contains(exts, extension(name)) {
				continue
			}
			src, err := sourceFor(filepath.Join(path, name), opts)
			if err != nil {
				return nil, err
			}
			sources = append(sources, src)
		}
	}

	return sources, nil
}

func sourceFor(path string, opts DiscoverOptions) (parser.GridSource, error) {
	switch extension(path) {
	case "xlsx", "xlsm":
		return parser.XLSXSource{Path: path, Sheet: opts.Sheet}, nil
	case "csv":
		return parser.CSVSource{Path: path, Encoding: opts.Encoding, Comma: opts.Comma}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrInvalidFormat, path)
	}
}

func extension(path string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}
