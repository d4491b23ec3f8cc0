package filestorage

import (
	"mime/multipart"
)

// FileStorage defines the storage operations used for uploaded post images.
type FileStorage interface {
	// SaveFile stores the upload under a generated collision-resistant name
	// and returns that name. fieldName prefixes the generated name.
	SaveFile(fileHeader *multipart.FileHeader, fieldName string) (string, error)

	// DeleteFile removes a stored file. A missing file is not an error.
	DeleteFile(filename string) error

	// GetFullPath returns the filesystem path for a stored filename.
	GetFullPath(filename string) string

	// URLFor returns the public URL under which a stored filename is served.
	URLFor(filename string) string
}
