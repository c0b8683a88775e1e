package usecase_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/code19m/errx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rise-and-shine/filedrop/internal/usecase"
	"github.com/rise-and-shine/filedrop/pkg/filestore"
)

func TestListFiles_Execute(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.Upload(ctx, "beta_20240301_100000.txt", strings.NewReader("beta-data"))
	require.NoError(t, err)
	_, err = store.Upload(ctx, "alpha_20240301_100000.txt", strings.NewReader("alpha"))
	require.NoError(t, err)

	uc := usecase.NewListFiles(store)

	out, err := uc.Execute(ctx, &usecase.ListFilesInput{})
	require.NoError(t, err)
	require.Len(t, out.Files, 2)

	assert.Equal(t, "alpha_20240301_100000.txt", out.Files[0].Name)
	assert.Equal(t, int64(5), out.Files[0].Size)
	assert.Equal(t, "beta_20240301_100000.txt", out.Files[1].Name)
	assert.Equal(t, int64(9), out.Files[1].Size)

	for _, row := range out.Files {
		// modification times are formatted in local time
		modified, parseErr := time.ParseInLocation("2006-01-02 15:04:05", row.Modified, time.Local)
		require.NoError(t, parseErr)
		assert.WithinDuration(t, time.Now(), modified, time.Minute)
	}
}

func TestListFiles_Execute_Empty(t *testing.T) {
	uc := usecase.NewListFiles(newTestStore(t))

	out, err := uc.Execute(context.Background(), &usecase.ListFilesInput{})
	require.NoError(t, err)

	assert.NotNil(t, out.Files)
	assert.Empty(t, out.Files)
}

func TestListFiles_Execute_Idempotent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.Upload(ctx, "stable_20240301_100000.txt", strings.NewReader("stable"))
	require.NoError(t, err)

	uc := usecase.NewListFiles(store)

	first, err := uc.Execute(ctx, &usecase.ListFilesInput{})
	require.NoError(t, err)

	second, err := uc.Execute(ctx, &usecase.ListFilesInput{})
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestListFiles_Execute_StoreFailure(t *testing.T) {
	uc := usecase.NewListFiles(&failingStore{})

	_, err := uc.Execute(context.Background(), &usecase.ListFilesInput{})
	require.Error(t, err)

	e := errx.AsErrorX(err)
	assert.Equal(t, filestore.CodeFileListFailed, e.Code())
	assert.Equal(t, errx.T_Internal, e.Type())
}
