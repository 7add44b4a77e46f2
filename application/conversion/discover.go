package conversion

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"video2audio/domain/audio"
)

// extensionSet normalizes extensions to lowercase with a leading dot
func extensionSet(exts []string) map[string]bool {
	set := make(map[string]bool, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		set[ext] = true
	}
	return set
}

// Discover lists the video files directly inside dir, matching extensions
// case-insensitively, sorted by file name
func Discover(fsys audio.FileSystem, dir string, exts []string) ([]string, error) {
	names, err := fsys.ListFiles(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}

	allowed := extensionSet(exts)
	var files []string
	for _, name := range names {
		if allowed[strings.ToLower(filepath.Ext(name))] {
			files = append(files, filepath.Join(dir, name))
		}
	}
	sort.Strings(files)
	return files, nil
}
