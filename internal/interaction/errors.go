package interaction

import (
	apperrors "github.com/consensuslabs/reelstream/backend/internal/errors"
)

var ErrVideoNotFound = apperrors.NotFound("video not found")
