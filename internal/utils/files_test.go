package utils_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AishaAlajmi/AutoDash/internal/utils"
)

func TestSafeWriteFileCreatesDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "report.md")
	require.NoError(t, utils.SafeWriteFile(path, []byte("hello")))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(b))
	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestPrettyJSON(t *testing.T) {
	b, err := utils.PrettyJSON(map[string]int{"a": 1})
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"a\": 1\n}", string(b))
}

func TestSlug(t *testing.T) {
	assert.Equal(t, "sales-by-region", utils.Slug("Sales by Région"))
	assert.Equal(t, "top-customer-name", utils.Slug("  Top customer_name! "))
	assert.Equal(t, "chart", utils.Slug("***"))
}
