package storage

import (
	"context"
	"io"
)

// StorageService stores media objects under slash-separated keys such as videos/video_x.mp4
type StorageService interface {
	UploadFile(ctx context.Context, filePath, key string) (string, error)
	UploadFileStream(ctx context.Context, reader io.Reader, size int64, key, contentType string) (string, error)
	DeleteFile(ctx context.Context, key string) error
	// URL returns the public address of a stored key
	URL(key string) string
	Close() error
}

// Logger interface for logging operations
type Logger interface {
	LogInfo(msg string, fields map[string]interface{})
	LogError(err error, msg string) error
}
