package audio

import "context"

// Converter defines the interface for the external audio converter.
// This is a port that can be implemented by different infrastructure adapters.
type Converter interface {
	// Convert runs one job to completion. A non-nil error means the job failed.
	Convert(ctx context.Context, job ConversionJob) error
}

// FileSystem defines the filesystem operations the conversion driver needs
type FileSystem interface {
	// IsFile returns true if path exists and is a regular file
	IsFile(path string) bool
	// IsDir returns true if path exists and is a directory
	IsDir(path string) bool
	// MkdirAll creates dir and any missing parents
	MkdirAll(dir string) error
	// ListFiles returns the names of the regular files directly inside dir
	ListFiles(dir string) ([]string, error)
}
