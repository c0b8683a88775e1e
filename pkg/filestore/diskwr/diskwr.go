// Package diskwr provides a local filesystem implementation of the
// filestore.FileStore interface.
//
// Content is streamed to a dot-prefixed temporary file in the root
// directory and renamed into place, so a stored name never refers to a
// partially written file. Listing skips dot-prefixed entries, which keeps
// in-flight temporary files invisible to readers.
package diskwr

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/code19m/errx"
	"github.com/rise-and-shine/filedrop/pkg/filestore"
)

const tmpPattern = ".filedrop-*.tmp"

// Store implements the filestore.FileStore interface on a local directory.
type Store struct {
	root string // absolute path of the storage root
}

// New creates a new disk store rooted at cfg.RootDir.
// The directory is created if it does not exist.
func New(cfg Config) (*Store, error) {
	root, err := filepath.Abs(cfg.RootDir)
	if err != nil {
		return nil, errx.Wrap(err)
	}

	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, errx.Wrap(err)
	}

	return &Store{root: root}, nil
}

// Root returns the absolute path of the storage root directory.
func (s *Store) Root() string {
	return s.root
}

// Upload stores the content under the given name. An existing file with
// the same name is replaced.
func (s *Store) Upload(ctx context.Context, name string, content io.Reader) (*filestore.FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, errx.Wrap(err, errx.WithCode(filestore.CodeFileSaveFailed))
	}

	dest, ok := s.resolve(name)
	if !ok {
		return nil, errx.New(
			"invalid stored name",
			errx.WithType(errx.T_Internal),
			errx.WithCode(filestore.CodeFileSaveFailed),
			errx.WithDetails(errx.D{"name": name}),
		)
	}

	tmp, err := os.CreateTemp(s.root, tmpPattern)
	if err != nil {
		return nil, errx.Wrap(err,
			errx.WithType(errx.T_Internal),
			errx.WithCode(filestore.CodeFileSaveFailed),
		)
	}

	if err := writeAndRename(tmp, content, dest); err != nil {
		_ = os.Remove(tmp.Name())
		return nil, errx.Wrap(err,
			errx.WithType(errx.T_Internal),
			errx.WithCode(filestore.CodeFileSaveFailed),
		)
	}

	info, err := os.Stat(dest)
	if err != nil {
		return nil, errx.Wrap(err,
			errx.WithType(errx.T_Internal),
			errx.WithCode(filestore.CodeFileSaveFailed),
		)
	}

	return &filestore.FileInfo{
		Name:    name,
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}, nil
}

// Get retrieves a file and its metadata by name.
func (s *Store) Get(_ context.Context, name string) (*filestore.File, error) {
	dest, ok := s.resolve(name)
	if !ok {
		return nil, errNotFound(name)
	}

	f, err := os.Open(dest)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errNotFound(name)
		}
		return nil, errx.Wrap(err)
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, errx.Wrap(err)
	}

	return &filestore.File{
		Content: f,
		Info: filestore.FileInfo{
			Name:    name,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		},
	}, nil
}

// Exists checks if a regular file with the given name exists.
func (s *Store) Exists(_ context.Context, name string) (bool, error) {
	dest, ok := s.resolve(name)
	if !ok {
		return false, nil
	}

	info, err := os.Stat(dest)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, errx.Wrap(err)
	}

	return info.Mode().IsRegular(), nil
}

// List returns metadata for all stored files sorted lexicographically by
// name. Directories and dot-prefixed entries are skipped.
func (s *Store) List(ctx context.Context) ([]filestore.FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, errx.Wrap(err, errx.WithCode(filestore.CodeFileListFailed))
	}

	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, errx.Wrap(err,
			errx.WithType(errx.T_Internal),
			errx.WithCode(filestore.CodeFileListFailed),
		)
	}

	infos := make([]filestore.FileInfo, 0, len(entries))

	for _, entry := range entries {
		if !entry.Type().IsRegular() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			// the entry may vanish between the directory read and the stat
			continue
		}

		infos = append(infos, filestore.FileInfo{
			Name:    entry.Name(),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	return infos, nil
}

// resolve maps a stored name to its absolute path inside the root.
// It reports false for names that do not address a direct child of the
// root: empty names and names carrying path separators. Dot-prefixed
// names are reserved for in-flight temporary files and stay invisible
// to List, so they are rejected as well. Stored names are produced by
// the naming layer, so a rejection here indicates a sanitization gap
// upstream.
func (s *Store) resolve(name string) (string, bool) {
	if name == "" || strings.HasPrefix(name, ".") || strings.ContainsAny(name, `/\`) {
		return "", false
	}

	dest := filepath.Join(s.root, name)
	if filepath.Dir(dest) != s.root {
		return "", false
	}

	return dest, true
}

// writeAndRename streams content into tmp and moves it to dest.
// tmp is closed in all cases.
func writeAndRename(tmp *os.File, content io.Reader, dest string) error {
	if _, err := io.Copy(tmp, content); err != nil {
		_ = tmp.Close()
		return err
	}

	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}

	if err := tmp.Chmod(0o644); err != nil {
		_ = tmp.Close()
		return err
	}

	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), dest)
}

func errNotFound(name string) error {
	return errx.New(
		"file not found",
		errx.WithType(errx.T_NotFound),
		errx.WithCode(filestore.CodeFileNotFound),
		errx.WithDetails(errx.D{"name": name}),
	)
}
