package filestorage

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/yigit/campuslink/internal/pkg/logger"
)

// LocalStorage handles saving files to the local filesystem.
type LocalStorage struct {
	basePath string // The root directory where files will be stored
	baseURL  string // URL prefix the directory is served under, e.g. "/uploads"
	now      func() time.Time
}

// NewLocalStorage creates a new LocalStorage instance, creating basePath if needed.
func NewLocalStorage(basePath, baseURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", basePath).Msg("Failed to create storage directory")
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	logger.Info().Str("path", basePath).Msg("Local storage directory ensured")

	return &LocalStorage{
		basePath: basePath,
		baseURL:  strings.TrimRight(baseURL, "/"),
		now:      time.Now,
	}, nil
}

// BasePath returns the directory files are written to.
func (ls *LocalStorage) BasePath() string {
	return ls.basePath
}

// SaveFile copies the upload into the storage directory under a generated name
// of the form <fieldName>-<unix millis>-<uuid><ext>.
func (ls *LocalStorage) SaveFile(fileHeader *multipart.FileHeader, fieldName string) (string, error) {
	if fileHeader == nil {
		return "", errors.New("no file to save")
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Error().Err(err).Str("filename", fileHeader.Filename).Msg("Failed to open uploaded file")
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	uniqueFilename := ls.generateName(fieldName, fileHeader.Filename)
	dstPath := filepath.Join(ls.basePath, uniqueFilename)

	// O_EXCL so a generated name can never overwrite an existing upload.
	dst, err := os.OpenFile(dstPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to create destination file")
		return "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err = io.Copy(dst, file); err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to copy uploaded file content")
		_ = os.Remove(dstPath)
		return "", fmt.Errorf("failed to save file content: %w", err)
	}

	logger.Info().Str("filename", fileHeader.Filename).Str("saved_as", uniqueFilename).Msg("File saved successfully")
	return uniqueFilename, nil
}

func (ls *LocalStorage) generateName(fieldName, originalName string) string {
	prefix := strings.TrimSpace(fieldName)
	if prefix == "" {
		prefix = "file"
	}
	ext := strings.ToLower(filepath.Ext(originalName))
	return fmt.Sprintf("%s-%d-%s%s", prefix, ls.now().UnixMilli(), uuid.NewString(), ext)
}

// DeleteFile removes a file from the storage directory.
// Only the base name of filename is used, so callers cannot escape the directory.
// Returns nil if deletion is successful or if the file doesn't exist.
func (ls *LocalStorage) DeleteFile(filename string) error {
	if filename == "" {
		return nil
	}

	physicalPath := ls.GetFullPath(filename)
	if physicalPath == "" {
		return fmt.Errorf("invalid file path: %s", filename)
	}

	if err := os.Remove(physicalPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Warn().Str("path", physicalPath).Msg("File to delete does not exist")
			return nil
		}
		logger.Error().Err(err).Str("path", physicalPath).Msg("Failed to delete file")
		return fmt.Errorf("failed to delete file: %w", err)
	}

	logger.Info().Str("path", physicalPath).Msg("File deleted successfully")
	return nil
}

// GetFullPath returns the full filesystem path for a stored filename or URL.
func (ls *LocalStorage) GetFullPath(filename string) string {
	base := filepath.Base(filename)
	if base == "" || base == "." || base == "/" || base == ".." {
		return ""
	}

	return filepath.Join(ls.basePath, base)
}

// URLFor returns the URL the static handler serves filename under.
func (ls *LocalStorage) URLFor(filename string) string {
	if filename == "" {
		return ""
	}
	return ls.baseURL + "/" + filename
}
