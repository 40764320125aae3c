package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsFileIsDirectory(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "a.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	assert.True(t, IsFile(file))
	assert.False(t, IsFile(dir))
	assert.False(t, IsFile(filepath.Join(dir, "missing")))

	assert.True(t, IsDirectory(dir))
	assert.False(t, IsDirectory(file))
}

func TestFirstFile(t *testing.T) {
	dir := t.TempDir()
	second := filepath.Join(dir, "b.asc")
	require.NoError(t, os.WriteFile(second, nil, 0o644))

	got, ok := FirstFile(filepath.Join(dir, "a.asc.gz"), second)
	assert.True(t, ok)
	assert.Equal(t, second, got)

	_, ok = FirstFile(filepath.Join(dir, "c"))
	assert.False(t, ok)
}

func TestSplitExt(t *testing.T) {
	tests := []struct {
		path, base, ext string
	}{
		{"out/site_voxels.count.asc.gz", "out/site_voxels.count", ".asc.gz"},
		{"out/site_voxels.count.asc", "out/site_voxels.count", ".asc"},
		{"boundary.geojson", "boundary", ".geojson"},
		{"noext", "noext", ""},
	}

	for _, tc := range tests {
		base, ext := SplitExt(tc.path)
		assert.Equal(t, tc.base, base, tc.path)
		assert.Equal(t, tc.ext, ext, tc.path)
	}

	assert.Equal(t, "plot7", Basename("/data/sites/plot7.geojson"))
}

func TestReplace(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "grid_clip.asc")
	dst := filepath.Join(dir, "grid.asc")
	require.NoError(t, os.WriteFile(src, []byte("new"), 0o644))
	require.NoError(t, os.WriteFile(dst, []byte("old"), 0o644))

	require.NoError(t, Replace(src, dst))

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
	assert.False(t, IsFile(src))

	// a missing destination is fine
	require.NoError(t, os.WriteFile(src, []byte("again"), 0o644))
	require.NoError(t, Replace(src, filepath.Join(dir, "fresh.asc")))
}
