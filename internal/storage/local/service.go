package local

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/consensuslabs/reelstream/backend/internal/storage"
)

// Service stores media on the local filesystem below a root directory
type Service struct {
	root    string
	baseURL string
	logger  storage.Logger
}

// NewService creates the root directory if needed
func NewService(root, baseURL string, logger storage.Logger) (*Service, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create media root: %v", err)
	}
	return &Service{root: root, baseURL: baseURL, logger: logger}, nil
}

// UploadFile copies a file from disk into the media root
func (s *Service) UploadFile(ctx context.Context, filePath, key string) (string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %v", err)
	}
	defer file.Close()

	fileInfo, err := file.Stat()
	if err != nil {
		return "", fmt.Errorf("failed to get file info: %v", err)
	}

	return s.UploadFileStream(ctx, file, fileInfo.Size(), key, "")
}

// UploadFileStream writes to a temporary file first and renames it into place,
// so readers never observe a partially written object.
func (s *Service) UploadFileStream(ctx context.Context, reader io.Reader, size int64, key, contentType string) (string, error) {
	dest, err := s.resolve(key)
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return "", fmt.Errorf("failed to create directory: %v", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dest), ".upload-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %v", err)
	}
	tmpName := tmp.Name()

	written, err := io.Copy(tmp, reader)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err == nil && size >= 0 && written != size {
		err = fmt.Errorf("short write: %d of %d bytes", written, size)
	}
	if err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("failed to write file: %v", err)
	}

	if err := os.Rename(tmpName, dest); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("failed to move file into place: %v", err)
	}

	s.logger.LogInfo("Stored media file", map[string]interface{}{
		"key":  key,
		"size": written,
	})
	return key, nil
}

// DeleteFile removes a stored key. Missing files are not an error.
func (s *Service) DeleteFile(ctx context.Context, key string) error {
	path, err := s.resolve(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %v", err)
	}
	return nil
}

func (s *Service) URL(key string) string {
	return storage.JoinURL(s.baseURL, key)
}

// Close is a no-op for the filesystem backend
func (s *Service) Close() error {
	return nil
}

// resolve maps a key to a path, rejecting keys that escape the root
func (s *Service) resolve(key string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(key))
	if key == "" || filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("invalid storage key %q", key)
	}
	return filepath.Join(s.root, clean), nil
}
