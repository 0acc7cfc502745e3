package video

import (
	apperrors "github.com/consensuslabs/reelstream/backend/internal/errors"
)

var (
	ErrVideoNotFound = apperrors.NotFound("video not found")
	ErrNotVideoOwner = apperrors.Forbidden("only the uploader can delete this video")
)
