package importer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterMatch(t *testing.T) {
	f, err := NewFilter([]string{"*.yaml", "*.json"}, []string{"broken_*"})
	require.NoError(t, err)

	tests := []struct {
		path     string
		expected bool
	}{
		{"main.yaml", true},
		{"dir/shapes.json", true},
		{"notes.txt", false},
		{"broken_main.yaml", false},
		{"dir/broken_x.json", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, f.Match(tt.path), tt.path)
	}
}

func TestNewFilterInvalidPattern(t *testing.T) {
	_, err := NewFilter([]string{"[unclosed"}, nil)
	assert.Error(t, err)

	_, err = NewFilter(nil, []string{"[unclosed"})
	assert.Error(t, err)
}

func TestScan(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "nested"), 0755))
	writeFile(t, dir, "b.yaml", "")
	writeFile(t, dir, "a.yaml", "")
	writeFile(t, dir, "README.md", "")
	writeFile(t, filepath.Join(dir, "nested"), "c.yaml", "")

	f, err := NewFilter([]string{"*.yaml"}, nil)
	require.NoError(t, err)

	files, err := Scan(dir, f)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.yaml"),
		filepath.Join(dir, "b.yaml"),
		filepath.Join(dir, "nested", "c.yaml"),
	}, files)

	single := filepath.Join(dir, "README.md")
	files, err = Scan(single, f)
	require.NoError(t, err)
	assert.Equal(t, []string{single}, files, "an explicit file is never filtered")

	_, err = Scan(filepath.Join(dir, "missing"), f)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
