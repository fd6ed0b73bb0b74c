// Package catalog reads the movie catalog CSV that drives sitemap generation.
package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
)

// ErrInputNotFound is returned when the catalog CSV does not exist.
var ErrInputNotFound = errors.New("catalog CSV not found")

const utf8BOM = "\ufeff"

// Row is one catalog line keyed by header name.
type Row map[string]string

// Value returns the trimmed cell for column, or "" when absent.
func (r Row) Value(column string) string {
	return strings.TrimSpace(r[column])
}

// Exists reports whether the catalog file is present.
// Callers use it to fail before any network activity.
func Exists(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrInputNotFound, path)
		}
		return fmt.Errorf("failed to stat catalog %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("catalog path %s is a directory", path)
	}
	return nil
}

// ReadRows opens path and parses it with Parse.
func ReadRows(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrInputNotFound, path)
		}
		return nil, fmt.Errorf("failed to open catalog %s: %w", path, err)
	}
	defer f.Close()

	rows, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse catalog %s: %w", path, err)
	}
	return rows, nil
}

// Parse reads a header row followed by data rows.
//
// Headers and cells are trimmed, a leading UTF-8 BOM is dropped, short
// rows are padded with empty cells and blank lines are skipped. A file
// with only a header yields no rows.
func Parse(r io.Reader) ([]Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	columns := make([]string, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, utf8BOM)
		}
		h = strings.TrimSpace(h)
		if h == "" {
			h = fmt.Sprintf("col_%d", i)
		}
		columns[i] = h
	}

	var rows []Row
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row: %w", err)
		}
		if isBlank(record) {
			continue
		}

		row := make(Row, len(columns))
		for i, col := range columns {
			if i < len(record) {
				row[col] = strings.TrimSpace(record[i])
			} else {
				row[col] = ""
			}
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// MovieIDs extracts the non-empty IDs from column, keeping input order.
func MovieIDs(rows []Row, column string) []string {
	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		if id := row.Value(column); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

func isBlank(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
