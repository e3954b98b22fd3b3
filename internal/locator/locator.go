// Package locator finds the per-ticker price files a build should read.
package locator

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrNoFiles is returned when none of the candidate directories hold a price file.
var ErrNoFiles = errors.New("no .txt/.csv price files found")

var priceExtensions = map[string]bool{
	".txt": true,
	".csv": true,
}

// DefaultDirs returns the candidate directories under root, nested ETF/stock
// folders first, then the top-level copies.
func DefaultDirs(root string) []string {
	return []string{
		filepath.Join(root, "data", "ETFs"),
		filepath.Join(root, "data", "stocks"),
		filepath.Join(root, "ETFs"),
		filepath.Join(root, "Stocks"),
	}
}

// Locate scans each directory (non-recursively) and returns the price files it
// holds, deduplicated by path and sorted. Missing directories are skipped.
func Locate(dirs []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string

	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			continue
		}
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, fmt.Errorf("read dir %s: %w", dir, err)
		}
		for _, e := range entries {
			if !IsPriceFile(e.Name()) {
				continue
			}
			path := filepath.Clean(filepath.Join(dir, e.Name()))
			if !isRegular(path) || seen[path] {
				continue
			}
			seen[path] = true
			files = append(files, path)
		}
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoFiles, strings.Join(dirs, ", "))
	}
	sort.Strings(files)
	return files, nil
}

// IsPriceFile reports whether name carries a price file extension.
func IsPriceFile(name string) bool {
	return priceExtensions[strings.ToLower(filepath.Ext(name))]
}

// isRegular follows symlinks, so a linked file counts but a linked dir does not.
func isRegular(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
