package render

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/AishaAlajmi/AutoDash/internal/analysis"
	"github.com/AishaAlajmi/AutoDash/internal/utils"
)

// WriteAll renders charts into dir as NN-<slug>.<ext> and returns the written
// paths in chart order. Charts with no drawable data are skipped.
func WriteAll(dir string, charts []analysis.ChartSpec, format Format) ([]string, error) {
	var paths []string
	for i, c := range charts {
		var buf bytes.Buffer
		if err := Render(c, format, &buf); err != nil {
			if errors.Is(err, ErrNoData) {
				continue
			}
			return paths, err
		}
		name := fmt.Sprintf("%02d-%s%s", i+1, utils.Slug(c.Title), format.Extension())
		path := filepath.Join(dir, name)
		if err := utils.SafeWriteFile(path, buf.Bytes()); err != nil {
			return paths, fmt.Errorf("write chart %s: %w", name, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
