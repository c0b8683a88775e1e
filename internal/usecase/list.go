package usecase

import (
	"context"

	"github.com/code19m/errx"
	"github.com/rise-and-shine/filedrop/pkg/filestore"
	"github.com/rise-and-shine/filedrop/pkg/ucdef"
	"github.com/samber/lo"
)

var _ ucdef.UserAction[*ListFilesInput, *ListFilesOutput] = (*ListFiles)(nil)

// modifiedLayout is the format of the modified field in file listings.
const modifiedLayout = "2006-01-02 15:04:05"

// ListFilesInput is empty; listing takes no parameters.
type ListFilesInput struct{}

// FileRow describes one stored file in a listing response.
type FileRow struct {
	Name     string `json:"name"`
	Size     int64  `json:"size"`
	Modified string `json:"modified"`
}

// ListFilesOutput is the wire payload of a file listing.
type ListFilesOutput struct {
	Files []FileRow `json:"files"`
}

// ListFiles reports all stored files with their sizes and modification
// times. Each execution re-reads the storage root; the filesystem is the
// source of truth and the listing is a projection recomputed on demand.
type ListFiles struct {
	store filestore.FileStore
}

// NewListFiles creates the list_files use case.
func NewListFiles(store filestore.FileStore) *ListFiles {
	return &ListFiles{store: store}
}

// OperationID returns the unique identifier of the use case.
func (uc *ListFiles) OperationID() string {
	return "list_files"
}

// Execute returns the stored files in lexicographic order by name.
func (uc *ListFiles) Execute(ctx context.Context, _ *ListFilesInput) (*ListFilesOutput, error) {
	infos, err := uc.store.List(ctx)
	if err != nil {
		return nil, errx.Wrap(err)
	}

	rows := lo.Map(infos, func(info filestore.FileInfo, _ int) FileRow {
		return FileRow{
			Name:     info.Name,
			Size:     info.Size,
			Modified: info.ModTime.Format(modifiedLayout),
		}
	})

	return &ListFilesOutput{Files: rows}, nil
}
