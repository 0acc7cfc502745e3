package user

import (
	apperrors "github.com/consensuslabs/reelstream/backend/internal/errors"
)

var (
	ErrUserNotFound     = apperrors.NotFound("user not found")
	ErrEmailTaken       = apperrors.Conflict("email already registered")
	ErrUsernameTaken    = apperrors.Conflict("username already taken")
	ErrUserExists       = apperrors.Conflict("email or username already registered")
	ErrWrongOldPassword = apperrors.NewValidationError("oldPassword", "old password is incorrect")
)
