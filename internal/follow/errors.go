package follow

import (
	apperrors "github.com/consensuslabs/reelstream/backend/internal/errors"
)

var ErrSelfFollow = apperrors.NewValidationError("id", "cannot follow yourself")
