package library

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// audioExtensions is the fixed set of indexed file extensions, compared
// case-insensitively.
var audioExtensions = map[string]struct{}{
	".mp3":  {},
	".wav":  {},
	".flac": {},
	".aac":  {},
	".ogg":  {},
	".wma":  {},
	".m4a":  {},
	".aiff": {},
	".opus": {},
}

// NormalizePath cleans a path and forces forward slashes so catalog paths
// compare equal regardless of platform.
func NormalizePath(path string) string {
	return filepath.ToSlash(filepath.Clean(path))
}

func unixSeconds(t time.Time) float64 {
	return float64(t.UnixNano()) / float64(time.Second)
}

// WalkLibrary enumerates all audio files under root and returns a map of
// normalized path to last-modified Unix seconds. Unreadable entries are
// skipped, never fatal. A missing root yields an empty map, not an error;
// callers decide how to treat that.
func WalkLibrary(root string) (map[string]float64, error) {
	found := make(map[string]float64)
	if _, err := os.Stat(root); err != nil {
		return found, nil
	}

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		if _, ok := audioExtensions[strings.ToLower(filepath.Ext(path))]; !ok {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil // vanished or unreadable mid-walk
		}
		found[NormalizePath(path)] = unixSeconds(info.ModTime())
		return nil
	})
	if err != nil {
		return found, err
	}
	return found, nil
}
