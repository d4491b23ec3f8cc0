package filestorage

import (
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/yigit/campuslink/internal/pkg/apperrors"
)

// MaxImageSize is the upload cap for post images (5 MiB).
const MaxImageSize int64 = 5 * 1024 * 1024

// ValidateImage checks that an upload is present, within maxSize bytes, and that its
// content sniffs as an image. It returns the detected MIME type.
// The client-declared Content-Type is ignored.
func ValidateImage(fileHeader *multipart.FileHeader, maxSize int64) (string, error) {
	if fileHeader == nil {
		return "", apperrors.ErrImageRequired
	}
	if maxSize <= 0 {
		maxSize = MaxImageSize
	}
	if fileHeader.Size > maxSize {
		return "", apperrors.ErrFileTooLarge
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	mtype, err := mimetype.DetectReader(file)
	if err != nil {
		return "", fmt.Errorf("failed to detect file type: %w", err)
	}

	if !strings.HasPrefix(mtype.String(), "image/") {
		return mtype.String(), apperrors.ErrInvalidFileType
	}

	return mtype.String(), nil
}
