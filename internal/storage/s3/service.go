package s3

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/consensuslabs/reelstream/backend/internal/storage"
	"github.com/minio/minio-go/v7"
	miniocreds "github.com/minio/minio-go/v7/pkg/credentials"
)

// Service stores media in an S3 compatible bucket
type Service struct {
	client    *minio.Client
	bucket    string
	publicURL string
	logger    storage.Logger
}

// NewService creates a new S3 service instance
func NewService(cfg *storage.S3Config, logger storage.Logger) (*Service, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  miniocreds.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 client: %v", err)
	}

	publicURL := cfg.PublicURL
	if publicURL == "" {
		scheme := "http"
		if cfg.UseSSL {
			scheme = "https"
		}
		publicURL = fmt.Sprintf("%s://%s/%s", scheme, cfg.Endpoint, cfg.Bucket)
	}

	return &Service{
		client:    client,
		bucket:    cfg.Bucket,
		publicURL: publicURL,
		logger:    logger,
	}, nil
}

// EnsureBucket creates the bucket when it does not exist yet
func (s *Service) EnsureBucket(ctx context.Context, region string) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket: %v", err)
	}
	if exists {
		return nil
	}
	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{Region: region}); err != nil {
		return fmt.Errorf("failed to create bucket: %v", err)
	}
	s.logger.LogInfo("Created media bucket", map[string]interface{}{"bucket": s.bucket})
	return nil
}

// UploadFile uploads a file to S3
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

// UploadFileStream uploads a stream to S3. A negative size streams with multipart upload.
func (s *Service) UploadFileStream(ctx context.Context, reader io.Reader, size int64, key, contentType string) (string, error) {
	opts := minio.PutObjectOptions{}
	if contentType != "" {
		opts.ContentType = contentType
	}

	info, err := s.client.PutObject(ctx, s.bucket, key, reader, size, opts)
	if err != nil {
		return "", fmt.Errorf("failed to upload file to S3: %v", err)
	}

	s.logger.LogInfo("Stored media object", map[string]interface{}{
		"bucket": s.bucket,
		"key":    info.Key,
		"size":   info.Size,
	})
	return key, nil
}

// DeleteFile removes an object from the bucket
func (s *Service) DeleteFile(ctx context.Context, key string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete S3 object: %v", err)
	}
	return nil
}

func (s *Service) URL(key string) string {
	return storage.JoinURL(s.publicURL, key)
}

// Close is a no-op; the minio client holds no long-lived connections
func (s *Service) Close() error {
	return nil
}
