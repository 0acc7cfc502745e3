package comment

import (
	apperrors "github.com/consensuslabs/reelstream/backend/internal/errors"
)

var (
	ErrCommentNotFound = apperrors.NotFound("comment not found")
	ErrVideoNotFound   = apperrors.NotFound("video not found")
	ErrInvalidParent   = apperrors.NewValidationError("parentId", "parent comment does not exist on this video")
	ErrNotCommentOwner = apperrors.Forbidden("only the comment author or the video owner can delete this comment")
)
