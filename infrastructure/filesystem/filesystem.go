package filesystem

import (
	"os"
	"path/filepath"

	"video2audio/domain/audio"
)

// FS implements audio.FileSystem using the os package
type FS struct{}

// New creates a new filesystem adapter
func New() *FS {
	return &FS{}
}

// IsFile returns true if path is an existing regular file
func (f *FS) IsFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// IsDir returns true if path is an existing directory
func (f *FS) IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// MkdirAll creates dir and any missing parents
func (f *FS) MkdirAll(dir string) error {
	return os.MkdirAll(dir, 0755)
}

// ListFiles returns the names of regular files directly inside dir.
// Symlinks are followed so a linked video is treated like the file it points to.
func (f *FS) ListFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, entry := range entries {
		if entry.Type().IsRegular() {
			names = append(names, entry.Name())
			continue
		}
		if entry.Type()&os.ModeSymlink != 0 {
			info, err := os.Stat(filepath.Join(dir, entry.Name()))
			if err == nil && info.Mode().IsRegular() {
				names = append(names, entry.Name())
			}
		}
	}
	return names, nil
}

// Ensure FS implements audio.FileSystem
var _ audio.FileSystem = (*FS)(nil)
