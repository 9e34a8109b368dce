package output

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// StampedPath returns dir/name.ext, creating dir if needed. When the file
// already exists the name is stamped with now, so earlier results are kept.
func StampedPath(dir, name, ext string, now time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output dir: %w", err)
	}

	path := filepath.Join(dir, name+"."+ext)
	if _, err := os.Stat(path); err == nil {
		path = filepath.Join(dir, name+now.Format(" 02.01.2006 15-04-05")+"."+ext)
	}
	return path, nil
}
