package tabular

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "destination", "merged.csv")

	err := WriteFile(path, []string{"company_name", "category"}, [][]string{
		{"Acme, Inc", "Food | Bakery"},
		{"Globex", ""},
	})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "company_name,category\n\"Acme, Inc\",Food | Bakery\nGlobex,\n", string(data))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temporary files are left behind")

	// round trip through the reader
	table, err := ReadFile(path, Dialect{Delimiter: ',', Header: true})
	require.NoError(t, err)
	assert.Equal(t, "Acme, Inc", table.Rows[0][0])
}

func TestWriteFile_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o644))

	require.NoError(t, WriteFile(path, []string{"a"}, nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a\n", string(data))
}
