package storage

import (
	"fmt"
	"mime"
	"mime/multipart"
	"slices"

	apperrors "github.com/consensuslabs/reelstream/backend/internal/errors"
)

// Rule describes what an uploaded file must look like
type Rule struct {
	Field        string
	AllowedTypes []string
	MaxBytes     int64
}

// VideoRule accepts mp4, webm and quicktime files up to maxMB megabytes
func VideoRule(maxMB int64) Rule {
	return Rule{
		Field:        "video",
		AllowedTypes: []string{"video/mp4", "video/webm", "video/quicktime"},
		MaxBytes:     maxMB << 20,
	}
}

// ImageRule accepts jpeg and png files up to maxMB megabytes
func ImageRule(field string, maxMB int64) Rule {
	return Rule{
		Field:        field,
		AllowedTypes: []string{"image/jpeg", "image/png"},
		MaxBytes:     maxMB << 20,
	}
}

// Validate checks presence, declared content type and size of an uploaded file
func Validate(fh *multipart.FileHeader, rule Rule) error {
	if fh == nil {
		return apperrors.NewValidationError(rule.Field, fmt.Sprintf("%s file is required", rule.Field))
	}

	contentType, _, err := mime.ParseMediaType(fh.Header.Get("Content-Type"))
	if err != nil || !slices.Contains(rule.AllowedTypes, contentType) {
		return apperrors.NewValidationError(rule.Field, apperrors.ErrMsgFileType)
	}

	if fh.Size <= 0 {
		return apperrors.NewValidationError(rule.Field, fmt.Sprintf("%s file is empty", rule.Field))
	}
	if rule.MaxBytes > 0 && fh.Size > rule.MaxBytes {
		return apperrors.NewValidationError(rule.Field, apperrors.ErrMsgFileSize)
	}
	return nil
}

// ContentType returns the declared media type of an upload
func ContentType(fh *multipart.FileHeader) string {
	contentType, _, err := mime.ParseMediaType(fh.Header.Get("Content-Type"))
	if err != nil {
		return "application/octet-stream"
	}
	return contentType
}
