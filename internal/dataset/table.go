package dataset

import (
	"fmt"
	"strings"
)

// Row maps column name to raw cell. A missing key reads as Null.
type Row map[string]Cell

// Get returns the cell for col, or Null when absent.
func (r Row) Get(col string) Cell {
	if r == nil {
		return Null()
	}
	return r[col]
}

// Table is a finalized, in-memory row set with a fixed column order.
// Rows are treated as immutable once built.
type Table struct {
	Name    string
	Columns []string
	Rows    []Row
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// NewTable builds a table from a header and positional records. Records shorter than
// the header are padded with Null; extra trailing values are dropped.
func NewTable(name string, header []string, records [][]Cell) *Table {
	cols := UniqueHeaders(header)
	t := &Table{Name: name, Columns: cols, Rows: make([]Row, 0, len(records))}
	for _, rec := range records {
		row := make(Row, len(cols))
		for i, c := range cols {
			if i < len(rec) {
				row[c] = rec[i]
			} else {
				row[c] = Null()
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// UniqueHeaders trims header names, names blank columns by position and
// de-duplicates repeats with a numeric suffix.
func UniqueHeaders(header []string) []string {
	out := make([]string, len(header))
	used := make(map[string]bool, len(header))
	for i, h := range header {
		name := strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if name == "" {
			name = fmt.Sprintf("column_%d", i+1)
		}
		base := name
		for n := 2; used[strings.ToLower(name)]; n++ {
			name = fmt.Sprintf("%s_%d", base, n)
		}
		used[strings.ToLower(name)] = true
		out[i] = name
	}
	return out
}
