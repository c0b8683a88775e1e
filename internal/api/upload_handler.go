package api

import (
	"github.com/code19m/errx"
	"github.com/gofiber/fiber/v2"
	"github.com/rise-and-shine/filedrop/internal/usecase"
	"github.com/rise-and-shine/filedrop/pkg/logger"
	"github.com/rise-and-shine/filedrop/pkg/mask"
)

// fileFieldName is the multipart form field carrying the uploaded file.
const fileFieldName = "file"

const (
	// codeMissingFilePart is used when the request carries no usable
	// multipart file field.
	codeMissingFilePart = "MISSING_FILE_PART"

	// codeInvalidFilePart is used when the file field is present but its
	// content cannot be opened.
	codeInvalidFilePart = "INVALID_FILE_PART"
)

// handleUpload adapts the multipart upload form to the upload_file use
// case. It is purpose-built rather than forwarded generically because
// the request carries a file stream instead of a JSON body.
func (rt *Router) handleUpload(c *fiber.Ctx) error {
	fh, err := c.FormFile(fileFieldName)
	if err != nil {
		return errx.New(
			"no file part in the request",
			errx.WithType(errx.T_Validation),
			errx.WithCode(codeMissingFilePart),
			errx.WithDetails(errx.D{"cause": err.Error()}),
		)
	}

	src, err := fh.Open()
	if err != nil {
		return errx.Wrap(err,
			errx.WithType(errx.T_Validation),
			errx.WithCode(codeInvalidFilePart),
		)
	}
	defer src.Close()

	in := &usecase.UploadFileInput{
		OriginalName: fh.Filename,
		DeclaredSize: fh.Size,
		Content:      src,
	}

	log := logger.
		Named("http.handler").
		WithContext(c.UserContext()).
		With("operation_id", rt.upload.OperationID()).
		With("request_body", mask.StructToOrdMap(in))

	out, err := rt.upload.Execute(c.UserContext(), in)
	if err != nil {
		log.Errorx(err)
		return errx.Wrap(err)
	}

	if err := c.JSON(out); err != nil {
		log.Errorx(err)
		return errx.Wrap(err)
	}

	log = log.With("response_body", mask.StructToOrdMap(out))
	log.Debug("")

	return nil
}
