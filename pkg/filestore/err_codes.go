package filestore

// Codes attached to errors returned by FileStore implementations.
const (
	// CodeFileNotFound is returned when a file with the given name does not exist.
	CodeFileNotFound = "FILE_NOT_FOUND"

	// CodeFileSaveFailed is returned when persisting a file to the backend fails.
	CodeFileSaveFailed = "FILE_SAVE_FAILED"

	// CodeFileListFailed is returned when reading the stored file listing fails.
	CodeFileListFailed = "FILE_LIST_FAILED"
)
