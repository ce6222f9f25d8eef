package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// csvNumberRe matches plain decimal numbers. Codes with a leading zero such as
// "007" stay text.
var csvNumberRe = regexp.MustCompile(`^[+-]?(0|[1-9]\d*)?(\.\d+)?([eE][+-]?\d+)?$`)

// Options controls how files are turned into rows.
type Options struct {
	// Delimiter for CSV. If 0, picks tab for .tsv files and comma otherwise.
	Delimiter rune
	// MaxRows limits rows read; 0 means unlimited.
	MaxRows int
	// XLSX sheet selection. SheetIndex is 1-based and used when SheetName is empty.
	SheetName  string
	SheetIndex int
}

// LoadCSV opens a CSV/TSV file and reads it into a Table.
func LoadCSV(path string, opt Options) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()
	if opt.Delimiter == 0 {
		opt.Delimiter = sniffDelimiter(path)
	}
	t, err := ReadCSV(f, opt)
	if err != nil {
		return nil, err
	}
	t.Name = filepath.Base(path)
	return t, nil
}

// ReadCSV reads a header row followed by records. Cells are trimmed; blank cells
// become Null, true/false (any case) become Bool, plain decimal numbers become
// Number and everything else stays text. Grouped values like "1,234" stay text.
func ReadCSV(rd io.Reader, opt Options) (*Table, error) {
	r := csv.NewReader(rd)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	r.LazyQuotes = true
	if opt.Delimiter != 0 {
		r.Comma = opt.Delimiter
	}

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return &Table{}, nil
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	header = append([]string(nil), header...)
	maxRows := opt.MaxRows
	if maxRows <= 0 {
		maxRows = math.MaxInt
	}

	var records [][]Cell
	for len(records) < maxRows {
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read row %d: %w", len(records)+1, err)
		}
		cells := make([]Cell, len(rec))
		for i, v := range rec {
			cells[i] = csvCell(v)
		}
		records = append(records, cells)
	}
	return NewTable("", header, records), nil
}

func textCell(v string) Cell {
	v = strings.TrimSpace(v)
	switch {
	case v == "":
		return Null()
	case strings.EqualFold(v, "true"):
		return Bool(true)
	case strings.EqualFold(v, "false"):
		return Bool(false)
	}
	return String(v)
}

func csvCell(v string) Cell {
	c := textCell(v)
	if c.Kind() != KindString {
		return c
	}
	s := c.Str()
	if !csvNumberRe.MatchString(s) || strings.Trim(s, "+-.eE") == "" {
		return c
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) {
		return c
	}
	return Number(f)
}

func sniffDelimiter(path string) rune {
	if strings.HasSuffix(strings.ToLower(path), ".tsv") {
		return '\t'
	}
	// Filename heuristic only; the file is read once.
	return ','
}
