package dataset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUniqueHeaders(t *testing.T) {
	got := UniqueHeaders([]string{"\ufeffName", " Region ", "", "name", "a_2", "a", "a"})
	assert.Equal(t, []string{"Name", "Region", "column_3", "name_2", "a_2", "a", "a_3"}, got)
}

func TestNewTablePadsShortRecords(t *testing.T) {
	tbl := NewTable("t", []string{"a", "b"}, [][]Cell{{String("x")}, {String("y"), Number(1), Number(9)}})
	require.Equal(t, 2, tbl.Len())
	assert.True(t, tbl.Rows[0].Get("b").IsNull())
	assert.Equal(t, 1.0, tbl.Rows[1].Get("b").Num())
	_, extra := tbl.Rows[1]["column_3"]
	assert.False(t, extra)
	assert.True(t, Row(nil).Get("a").IsNull())
}

func TestReadCSV(t *testing.T) {
	in := "Region,Sales,Active,Note\nNorth, 10 ,TRUE,\nSouth,5,false,hello\nEast\n"
	tbl, err := ReadCSV(strings.NewReader(in), Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Region", "Sales", "Active", "Note"}, tbl.Columns)
	require.Len(t, tbl.Rows, 3)

	first := tbl.Rows[0]
	assert.Equal(t, KindNumber, first.Get("Sales").Kind())
	assert.Equal(t, 10.0, first.Get("Sales").Num())
	assert.Equal(t, KindBool, first.Get("Active").Kind())
	assert.True(t, first.Get("Active").Boolean())
	assert.True(t, first.Get("Note").IsNull())

	assert.False(t, tbl.Rows[1].Get("Active").Boolean())
	assert.True(t, tbl.Rows[2].Get("Sales").IsNull())
}

func TestReadCSVNumericText(t *testing.T) {
	in := "v\n44197\n-1.5\n.25\n2e3\n007\n\"1,234\"\n0x10\nInf\nNaN\n-\n"
	tbl, err := ReadCSV(strings.NewReader(in), Options{})
	require.NoError(t, err)
	require.Len(t, tbl.Rows, 10)

	for i, want := range []float64{44197, -1.5, 0.25, 2000} {
		c := tbl.Rows[i].Get("v")
		require.Equal(t, KindNumber, c.Kind(), "row %d", i)
		assert.Equal(t, want, c.Num())
	}
	for _, r := range tbl.Rows[4:] {
		assert.Equal(t, KindString, r.Get("v").Kind(), r.Get("v").Str())
	}
}

func TestReadCSVEmptyAndLimited(t *testing.T) {
	tbl, err := ReadCSV(strings.NewReader(""), Options{})
	require.NoError(t, err)
	assert.Equal(t, 0, tbl.Len())

	tbl, err = ReadCSV(strings.NewReader("a;b\n1;2\n3;4\n5;6\n"), Options{Delimiter: ';', MaxRows: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, tbl.Columns)
	assert.Equal(t, 2, tbl.Len())
}

func TestReadJSONKeepsKeyOrder(t *testing.T) {
	in := `[{"zeta":1,"alpha":"x"},{"alpha":"y","beta":true}]`
	tbl, err := ReadJSON(strings.NewReader(in), Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"zeta", "alpha", "beta"}, tbl.Columns)
	require.Len(t, tbl.Rows, 2)
	assert.True(t, tbl.Rows[0].Get("beta").IsNull())
	assert.True(t, tbl.Rows[1].Get("zeta").IsNull())
	assert.Equal(t, KindNumber, tbl.Rows[0].Get("zeta").Kind())

	_, err = ReadJSON(strings.NewReader(`{"a":1}`), Options{})
	assert.Error(t, err)
}

func TestLoadDispatch(t *testing.T) {
	dir := t.TempDir()
	tsv := filepath.Join(dir, "data.tsv")
	require.NoError(t, os.WriteFile(tsv, []byte("a\tb\n1\t2\n"), 0o644))
	tbl, err := Load(tsv, Options{})
	require.NoError(t, err)
	assert.Equal(t, "data.tsv", tbl.Name)
	assert.Equal(t, []string{"a", "b"}, tbl.Columns)

	js := filepath.Join(dir, "rows.json")
	require.NoError(t, os.WriteFile(js, []byte(`[{"x":1}]`), 0o644))
	tbl, err = Load(js, Options{})
	require.NoError(t, err)
	assert.Equal(t, "rows.json", tbl.Name)

	_, err = Load(filepath.Join(dir, "notes.pdf"), Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported file type")
}
