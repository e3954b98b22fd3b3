// Package loader reads price files and normalizes them into dataset tables.
package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"StockDataset/internal/dataset"
)

// MaxFiles caps how many located files a build reads.
const MaxFiles = 200

// ErrNoReadableFiles is returned when every located file failed to parse.
var ErrNoReadableFiles = errors.New("no readable price files")

// Result is the outcome of loading a batch of files.
type Result struct {
	Tables  []*dataset.Table
	Loaded  []string // files that parsed, in processing order
	Skipped []Skip
}

// Skip records a file that could not be read.
type Skip struct {
	File string
	Err  error
}

// Load reads the first MaxFiles files in order. Files that fail to parse are
// logged and skipped.
func Load(files []string) (*Result, error) {
	if len(files) > MaxFiles {
		log.Printf("[INFO] found %d files, using the first %d", len(files), MaxFiles)
		files = files[:MaxFiles]
	} else {
		log.Printf("[INFO] found %d files", len(files))
	}

	res := &Result{}
	for _, f := range files {
		t, err := LoadFile(f)
		if err != nil {
			log.Printf("[WARN] skipping %s: read error %v", filepath.Base(f), err)
			res.Skipped = append(res.Skipped, Skip{File: f, Err: err})
			continue
		}
		res.Tables = append(res.Tables, t)
		res.Loaded = append(res.Loaded, f)
	}

	if len(res.Tables) == 0 {
		return res, ErrNoReadableFiles
	}
	return res, nil
}

// LoadFile parses one price file and normalizes it: trimmed headers, a Date
// column, and a symbol column derived from the file name.
func LoadFile(path string) (*dataset.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	t, err := Parse(f)
	if err != nil {
		return nil, err
	}
	Normalize(t, SymbolFromFilename(path))
	return t, nil
}

// Parse reads comma-delimited text with a header line. Header names are
// trimmed before repeats are suffixed. Short rows are padded with nulls; a row
// wider than the header is an error.
func Parse(r io.Reader) (*dataset.Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = false

	header, err := cr.Read()
	if err == io.EOF {
		return nil, errors.New("no columns to parse from file")
	}
	if err != nil {
		return nil, fmt.Errorf("parse header: %w", err)
	}
	if len(header) == 1 && strings.TrimSpace(header[0]) == "" {
		return nil, errors.New("no columns to parse from file")
	}

	names := make([]string, len(header))
	for i, h := range header {
		names[i] = strings.TrimSpace(h)
	}
	t := &dataset.Table{Columns: uniqueHeaders(names)}
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse: %w", err)
		}
		if len(rec) == 1 && rec[0] == "" {
			continue
		}
		if len(rec) > len(header) {
			return nil, fmt.Errorf("line %d: expected %d fields, saw %d", line, len(header), len(rec))
		}
		values := make([]string, len(header))
		copy(values, rec)
		t.Rows = append(t.Rows, dataset.Row{Values: values})
	}
	return t, nil
}

// Normalize fixes up a freshly parsed table in place.
func Normalize(t *dataset.Table, symbol string) {
	dateIdx := t.ColumnIndex(dataset.ColDate)
	if dateIdx < 0 {
		for i, c := range t.Columns {
			if strings.EqualFold(c, dataset.ColDate) {
				t.RenameColumn(i, dataset.ColDate)
				dateIdx = i
				break
			}
		}
	}

	if si := t.ColumnIndex(dataset.ColSymbol); si >= 0 {
		for i := range t.Rows {
			t.Rows[i].Values[si] = symbol
		}
	} else {
		t.AppendColumn(dataset.ColSymbol, func(dataset.Row) string { return symbol })
	}

	// Without a date header the first column is taken as the date.
	if dateIdx < 0 {
		dateIdx = 0
		t.RenameColumn(0, dataset.ColDate)
	}
	for i := range t.Rows {
		t.Rows[i].Date = ParseDate(t.Rows[i].Value(dateIdx))
	}
}

// uniqueHeaders suffixes repeated names with .1, .2, ... so every column can
// be addressed by name.
func uniqueHeaders(header []string) []string {
	out := make([]string, len(header))
	count := make(map[string]int)
	for i, h := range header {
		name := h
		if n := count[h]; n > 0 {
			name = h + "." + strconv.Itoa(n)
		}
		count[h]++
		out[i] = name
	}
	return out
}
