package filesystem

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
}

func TestFS_IsFileAndIsDir(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "video.mp4")
	touch(t, file)
	fs := New()

	assert.True(t, fs.IsFile(file))
	assert.False(t, fs.IsDir(file))
	assert.True(t, fs.IsDir(dir))
	assert.False(t, fs.IsFile(dir))
	assert.False(t, fs.IsFile(filepath.Join(dir, "missing.mp4")))
	assert.False(t, fs.IsDir(filepath.Join(dir, "missing")))
}

func TestFS_MkdirAll(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b", "c")
	fs := New()

	require.NoError(t, fs.MkdirAll(dir))
	assert.True(t, fs.IsDir(dir))
	require.NoError(t, fs.MkdirAll(dir), "existing directory is not an error")
}

func TestFS_MkdirAll_BlockedByFile(t *testing.T) {
	base := t.TempDir()
	blocker := filepath.Join(base, "audio")
	touch(t, blocker)

	assert.Error(t, New().MkdirAll(filepath.Join(blocker, "sub")))
}

func TestFS_ListFiles(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "a.mp4"))
	touch(t, filepath.Join(dir, "b.avi"))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.mp4"), 0755))
	touch(t, filepath.Join(dir, "nested.mp4", "deep.mp4"))
	require.NoError(t, os.Symlink(filepath.Join(dir, "a.mp4"), filepath.Join(dir, "link.mov")))
	require.NoError(t, os.Symlink(filepath.Join(dir, "nested.mp4"), filepath.Join(dir, "dirlink.mkv")))

	names, err := New().ListFiles(dir)
	require.NoError(t, err)
	sort.Strings(names)
	assert.Equal(t, []string{"a.mp4", "b.avi", "link.mov"}, names)
}

func TestFS_ListFiles_Missing(t *testing.T) {
	_, err := New().ListFiles(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}
