package analysis

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/AishaAlajmi/AutoDash/internal/dataset"
)

func newTestTable(cols []string, rows ...[]dataset.Cell) *dataset.Table {
	return dataset.NewTable("test", cols, rows)
}

func str(s string) dataset.Cell   { return dataset.String(s) }
func num(f float64) dataset.Cell  { return dataset.Number(f) }
func null() dataset.Cell          { return dataset.Null() }
func boolean(b bool) dataset.Cell { return dataset.Bool(b) }

// regionSales is the three-row Region/Sales example.
func regionSales() *dataset.Table {
	return newTestTable([]string{"Region", "Sales"},
		[]dataset.Cell{str("East"), num(10)},
		[]dataset.Cell{str("East"), num(5)},
		[]dataset.Cell{str("West"), num(7)},
	)
}

func summary(t *testing.T, sums Summaries, name string) ColumnSummary {
	t.Helper()
	s, ok := sums.Lookup(name)
	require.True(t, ok, "missing summary for %s", name)
	return s
}

func chartByType(charts []ChartSpec, typ ChartType) (ChartSpec, bool) {
	for _, c := range charts {
		if c.Type == typ {
			return c, true
		}
	}
	return ChartSpec{}, false
}
