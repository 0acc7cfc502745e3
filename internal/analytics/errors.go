package analytics

import (
	apperrors "github.com/consensuslabs/reelstream/backend/internal/errors"
)

var (
	ErrAnalyticsNotFound = apperrors.NotFound("no analytics recorded for this video")
	ErrVideoNotFound     = apperrors.NotFound("video not found")
)
