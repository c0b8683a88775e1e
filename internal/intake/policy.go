// Package intake implements the upload acceptance policy and the storage
// naming scheme for incoming files.
//
// Policy decides whether an upload may proceed before any bytes are
// written. DeriveName maps an accepted upload to its on-disk name. Both
// are free of I/O and safe for concurrent use.
package intake

import (
	"slices"
	"strings"

	"github.com/code19m/errx"
	"github.com/samber/lo"
)

// Policy validates incoming file descriptors against the configured
// constraints. It is immutable after construction.
type Policy struct {
	maxSizeBytes      int64
	allowedExtensions map[string]struct{}
}

// NewPolicy creates a new Policy. Extensions are normalized to lowercase
// without a leading dot, so "PDF", "pdf" and ".pdf" configure the same rule.
func NewPolicy(maxSizeBytes int64, allowedExtensions []string) *Policy {
	normalized := lo.Map(allowedExtensions, func(ext string, _ int) string {
		return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
	})

	return &Policy{
		maxSizeBytes: maxSizeBytes,
		allowedExtensions: lo.SliceToMap(normalized, func(ext string) (string, struct{}) {
			return ext, struct{}{}
		}),
	}
}

// Validate checks the original filename and declared size against the
// policy. It returns nil when the upload may proceed and a validation
// error carrying the rejection reason otherwise. Validate has no side
// effects.
//
// The transport layer is expected to enforce a hard byte-count cap
// independently; the size check here covers content whose size is known
// before streaming begins.
func (p *Policy) Validate(originalName string, declaredSize int64) error {
	if originalName == "" {
		return errx.New(
			"no file selected",
			errx.WithType(errx.T_Validation),
			errx.WithCode(CodeNoFilename),
		)
	}

	idx := strings.LastIndex(originalName, ".")
	if idx < 0 {
		return errx.New(
			"file type is not allowed",
			errx.WithType(errx.T_Validation),
			errx.WithCode(CodeExtensionNotAllowed),
			errx.WithDetails(errx.D{"filename": originalName}),
		)
	}

	ext := strings.ToLower(originalName[idx+1:])
	if _, ok := p.allowedExtensions[ext]; !ok {
		return errx.New(
			"file type is not allowed",
			errx.WithType(errx.T_Validation),
			errx.WithCode(CodeExtensionNotAllowed),
			errx.WithDetails(errx.D{
				"filename":  originalName,
				"extension": ext,
			}),
		)
	}

	if declaredSize > p.maxSizeBytes {
		return errx.New(
			"file exceeds the maximum allowed size",
			errx.WithType(errx.T_Validation),
			errx.WithCode(CodeFileTooLarge),
			errx.WithDetails(errx.D{
				"declared_size":  declaredSize,
				"max_size_bytes": p.maxSizeBytes,
			}),
		)
	}

	return nil
}

// MaxSizeBytes returns the configured upload size cap in bytes.
func (p *Policy) MaxSizeBytes() int64 {
	return p.maxSizeBytes
}

// AllowedExtensions returns the normalized allowed extensions in
// lexicographic order.
func (p *Policy) AllowedExtensions() []string {
	exts := lo.Keys(p.allowedExtensions)
	slices.Sort(exts)
	return exts
}
