package intake

// Error codes for intake policy rejections.
const (
	// CodeNoFilename is returned when the upload carries no filename.
	CodeNoFilename = "NO_FILENAME"

	// CodeExtensionNotAllowed is returned when the filename extension is
	// missing or not in the configured allowlist.
	CodeExtensionNotAllowed = "EXTENSION_NOT_ALLOWED"

	// CodeFileTooLarge is returned when the declared size exceeds the
	// configured maximum.
	CodeFileTooLarge = "FILE_TOO_LARGE"
)
