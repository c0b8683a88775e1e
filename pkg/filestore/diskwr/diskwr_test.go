package diskwr_test

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/code19m/errx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rise-and-shine/filedrop/pkg/filestore"
	"github.com/rise-and-shine/filedrop/pkg/filestore/diskwr"
)

func newStore(t *testing.T) *diskwr.Store {
	t.Helper()

	store, err := diskwr.New(diskwr.Config{RootDir: t.TempDir()})
	require.NoError(t, err)

	return store
}

func TestNew_CreatesRootDir(t *testing.T) {
	root := filepath.Join(t.TempDir(), "nested", "uploads")

	store, err := diskwr.New(diskwr.Config{RootDir: root})
	require.NoError(t, err)

	info, err := os.Stat(root)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	assert.True(t, filepath.IsAbs(store.Root()))
}

func TestUpload_RoundTrip(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	content := "hello filedrop"

	info, err := store.Upload(ctx, "notes_20240301_100000.txt", strings.NewReader(content))
	require.NoError(t, err)

	assert.Equal(t, "notes_20240301_100000.txt", info.Name)
	assert.Equal(t, int64(len(content)), info.Size)
	assert.WithinDuration(t, time.Now(), info.ModTime, time.Minute)

	f, err := store.Get(ctx, "notes_20240301_100000.txt")
	require.NoError(t, err)
	defer f.Content.Close()

	got, err := io.ReadAll(f.Content)
	require.NoError(t, err)
	assert.Equal(t, content, string(got))
	assert.Equal(t, info.Size, f.Info.Size)

	exists, err := store.Exists(ctx, "notes_20240301_100000.txt")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestUpload_ReplacesExisting(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	_, err := store.Upload(ctx, "report.txt", strings.NewReader("first version"))
	require.NoError(t, err)

	info, err := store.Upload(ctx, "report.txt", strings.NewReader("second"))
	require.NoError(t, err)
	assert.Equal(t, int64(len("second")), info.Size)

	f, err := store.Get(ctx, "report.txt")
	require.NoError(t, err)
	defer f.Content.Close()

	got, err := io.ReadAll(f.Content)
	require.NoError(t, err)
	assert.Equal(t, "second", string(got))

	infos, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, infos, 1)
	assert.Equal(t, int64(len("second")), infos[0].Size)
}

func TestUpload_RejectsEscapingNames(t *testing.T) {
	base := t.TempDir()

	store, err := diskwr.New(diskwr.Config{RootDir: filepath.Join(base, "uploads")})
	require.NoError(t, err)

	ctx := context.Background()

	names := []string{
		"",
		"..",
		"..hidden",
		"../escape.txt",
		"../../etc/passwd",
		"sub/dir.txt",
		`sub\dir.txt`,
		"trick..txt/../../escape.txt",
	}

	for _, name := range names {
		_, err := store.Upload(ctx, name, strings.NewReader("x"))
		require.Error(t, err, "name %q must be rejected", name)

		e := errx.AsErrorX(err)
		assert.Equal(t, filestore.CodeFileSaveFailed, e.Code())
	}

	// nothing may appear outside the storage root
	_, err = os.Stat(filepath.Join(base, "escape.txt"))
	assert.True(t, os.IsNotExist(err))

	entries, err := os.ReadDir(base)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "uploads", entries[0].Name())
}

func TestUpload_AllowsInnerDots(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	// consecutive dots inside a plain name are harmless
	info, err := store.Upload(ctx, "a..b_20240301_100000.txt", strings.NewReader("x"))
	require.NoError(t, err)
	assert.Equal(t, "a..b_20240301_100000.txt", info.Name)
}

func TestUpload_LeavesNoTempFiles(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	_, err := store.Upload(ctx, "clean.txt", strings.NewReader("data"))
	require.NoError(t, err)

	entries, err := os.ReadDir(store.Root())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "clean.txt", entries[0].Name())
}

func TestGet_NotFound(t *testing.T) {
	store := newStore(t)

	_, err := store.Get(context.Background(), "missing.txt")
	require.Error(t, err)

	e := errx.AsErrorX(err)
	assert.Equal(t, filestore.CodeFileNotFound, e.Code())
	assert.Equal(t, errx.T_NotFound, e.Type())
}

func TestExists_MissingAndInvalidNames(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	exists, err := store.Exists(ctx, "missing.txt")
	require.NoError(t, err)
	assert.False(t, exists)

	exists, err = store.Exists(ctx, "../outside.txt")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestList_SortedAndFiltered(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	_, err := store.Upload(ctx, "beta.txt", strings.NewReader("bb"))
	require.NoError(t, err)
	_, err = store.Upload(ctx, "alpha.txt", strings.NewReader("a"))
	require.NoError(t, err)

	// in-flight temporary files and directories must stay invisible
	require.NoError(t, os.WriteFile(filepath.Join(store.Root(), ".filedrop-123.tmp"), []byte("partial"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(store.Root(), "subdir"), 0o755))

	infos, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, infos, 2)

	assert.Equal(t, "alpha.txt", infos[0].Name)
	assert.Equal(t, int64(1), infos[0].Size)
	assert.Equal(t, "beta.txt", infos[1].Name)
	assert.Equal(t, int64(2), infos[1].Size)
}

func TestList_EmptyRoot(t *testing.T) {
	store := newStore(t)

	infos, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, infos)
	assert.NotNil(t, infos)
}
