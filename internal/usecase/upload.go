package usecase

import (
	"context"
	"io"

	"github.com/code19m/errx"
	"github.com/rise-and-shine/filedrop/internal/intake"
	"github.com/rise-and-shine/filedrop/pkg/filestore"
	"github.com/rise-and-shine/filedrop/pkg/ucdef"
)

var _ ucdef.UserAction[*UploadFileInput, *UploadFileOutput] = (*UploadFile)(nil)

// UploadFileInput carries one incoming upload through the intake pipeline.
// Content is consumed once during execution and is excluded from logging.
type UploadFileInput struct {
	OriginalName string    `json:"original_name"`
	DeclaredSize int64     `json:"declared_size"`
	Content      io.Reader `json:"-"`
}

// UploadFileOutput is the wire payload returned for an accepted upload.
type UploadFileOutput struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Filename  string `json:"filename"`
	Size      int64  `json:"size"`
	Timestamp string `json:"timestamp"`
}

// UploadFile validates an incoming file against the intake policy,
// derives its stored name and persists the content.
type UploadFile struct {
	policy *intake.Policy
	store  filestore.FileStore
	opts   options
}

// NewUploadFile creates the upload_file use case.
func NewUploadFile(policy *intake.Policy, store filestore.FileStore, opts ...Option) *UploadFile {
	return &UploadFile{
		policy: policy,
		store:  store,
		opts:   newOptions(opts),
	}
}

// OperationID returns the unique identifier of the use case.
func (uc *UploadFile) OperationID() string {
	return "upload_file"
}

// Execute runs the intake pipeline: policy validation, name derivation,
// persistence.
//
// The policy check runs before any bytes are written, so a rejected
// upload leaves no file behind. The stored name and the timestamp in the
// response are derived from the same instant.
func (uc *UploadFile) Execute(ctx context.Context, in *UploadFileInput) (*UploadFileOutput, error) {
	if err := uc.policy.Validate(in.OriginalName, in.DeclaredSize); err != nil {
		return nil, errx.Wrap(err)
	}

	now := uc.opts.now()
	storedName := intake.DeriveName(in.OriginalName, now)

	info, err := uc.store.Upload(ctx, storedName, in.Content)
	if err != nil {
		return nil, errx.Wrap(err)
	}

	return &UploadFileOutput{
		Success:   true,
		Message:   "File uploaded successfully",
		Filename:  info.Name,
		Size:      info.Size,
		Timestamp: now.Format(intake.TimestampLayout),
	}, nil
}
