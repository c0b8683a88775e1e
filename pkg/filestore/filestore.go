// Package filestore abstracts file persistence behind a small interface
// so the service layers stay independent of the concrete backend.
package filestore

import (
	"context"
	"io"
	"time"
)

// FileStore stores and retrieves files by their unique name.
// Implementations must be safe for concurrent use.
type FileStore interface {
	// Upload stores the content under the given name. Uploading to an
	// existing name replaces the stored file. Returns the file info
	// after a successful write.
	Upload(ctx context.Context, name string, content io.Reader) (*FileInfo, error)

	// Get opens the named file for reading along with its metadata.
	// The caller must close File.Content.
	Get(ctx context.Context, name string) (*File, error)

	// Exists reports whether a file with the given name is stored.
	Exists(ctx context.Context, name string) (bool, error)

	// List returns metadata for every stored file, ordered
	// lexicographically by name.
	List(ctx context.Context) ([]FileInfo, error)
}

// File couples an open content stream with the file's metadata.
type File struct {
	Content io.ReadCloser
	Info    FileInfo
}

// FileInfo describes a single stored file.
type FileInfo struct {
	Name    string
	Size    int64
	ModTime time.Time
}
