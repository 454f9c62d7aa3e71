// Package dataset provides tabular-data helpers for duplicate detection:
// per-row digests, duplicate-row extraction, and deduplication with a
// grouped report.
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

// Table is an ordered collection of rows under named columns.
type Table struct {
	Columns []string
	Rows    [][]string
}

// Read parses a CSV document into a table. The first row is the header.
func Read(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(records) == 0 {
		return &Table{}, nil
	}
	return &Table{Columns: records[0], Rows: records[1:]}, nil
}

// ReadFile parses a CSV file into a table.
func ReadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f)
}

// Write serializes the table as CSV.
func (t *Table) Write(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Columns); err != nil {
		return err
	}
	for _, row := range t.Rows {
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFile serializes the table as a CSV file, creating parent
// directories as needed.
func (t *Table) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := t.Write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// effectiveColumns resolves the column indexes selected by a subset and an
// exclude list: start from subset (or all columns), then drop exclusions.
// An empty result falls back to all columns.
func (t *Table) effectiveColumns(subset, exclude []string) ([]int, error) {
	byName := make(map[string]int, len(t.Columns))
	for i, c := range t.Columns {
		byName[c] = i
	}

	names := t.Columns
	if len(subset) > 0 {
		names = subset
	}

	excluded := make(map[string]struct{}, len(exclude))
	for _, c := range exclude {
		excluded[c] = struct{}{}
	}

	var idx []int
	for _, name := range names {
		if _, skip := excluded[name]; skip {
			continue
		}
		i, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("unknown column %q", name)
		}
		idx = append(idx, i)
	}

	if len(idx) == 0 {
		for i := range t.Columns {
			idx = append(idx, i)
		}
	}
	return idx, nil
}

func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}
