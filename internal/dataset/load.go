package dataset

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Load reads a tabular file into a Table, choosing the reader by extension.
func Load(path string, opt Options) (*Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".tsv", ".txt":
		return LoadCSV(path, opt)
	case ".xlsx":
		return LoadXLSX(path, opt)
	case ".json":
		return LoadJSON(path, opt)
	}
	return nil, fmt.Errorf("unsupported file type: %s (use .csv, .tsv, .xlsx or .json)", filepath.Ext(path))
}
