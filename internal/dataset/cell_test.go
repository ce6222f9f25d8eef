package dataset

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCellNullness(t *testing.T) {
	assert.True(t, Null().IsNull())
	assert.True(t, String("   ").IsNull())
	assert.False(t, String("x").IsNull())
	assert.False(t, Number(0).IsNull())
	assert.False(t, Bool(false).IsNull())
	var zero Cell
	assert.Equal(t, KindNull, zero.Kind())
}

func TestCellString(t *testing.T) {
	assert.Equal(t, "3.5", Number(3.5).String())
	assert.Equal(t, "44197", Number(44197).String())
	assert.Equal(t, "true", Bool(true).String())
	assert.Equal(t, "", Null().String())
	d := time.Date(2021, 1, 1, 0, 0, 0, 0, time.FixedZone("x", 3600))
	assert.Equal(t, "2020-12-31T23:00:00Z", Date(d).String())
}

func TestCellJSON(t *testing.T) {
	var row map[string]Cell
	require.NoError(t, json.Unmarshal([]byte(`{"a":1.5,"b":"x","c":true,"d":null,"e":{"k":1}}`), &row))
	assert.Equal(t, KindNumber, row["a"].Kind())
	assert.Equal(t, KindString, row["b"].Kind())
	assert.Equal(t, KindBool, row["c"].Kind())
	assert.True(t, row["d"].IsNull())
	assert.Equal(t, `{"k":1}`, row["e"].Str())

	out, err := json.Marshal([]Cell{Number(2), String("y"), Bool(false), Null()})
	require.NoError(t, err)
	assert.JSONEq(t, `[2,"y",false,null]`, string(out))
}
