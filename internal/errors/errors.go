package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind sentinels. Domain errors built with the constructors below match them with errors.Is.
var (
	ErrNotFound     = &AppError{Kind: KindNotFound}
	ErrForbidden    = &AppError{Kind: KindForbidden}
	ErrValidation   = &AppError{Kind: KindValidation}
	ErrConflict     = &AppError{Kind: KindConflict}
	ErrUnauthorized = &AppError{Kind: KindUnauthorized}
)

// Error method implementation for AppError
func (e *AppError) Error() string {
	if e.Message == "" {
		return string(e.Kind)
	}
	return e.Message
}

// Is matches a bare kind sentinel against any error of the same kind
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	if t.Message == "" {
		return e.Kind == t.Kind
	}
	return e == t
}

// NotFound creates a not-found error
func NotFound(message string) *AppError {
	return &AppError{Kind: KindNotFound, Message: message}
}

// Forbidden creates a permission error
func Forbidden(message string) *AppError {
	return &AppError{Kind: KindForbidden, Message: message}
}

// Invalid creates a validation error that is not tied to a single field
func Invalid(message string) *AppError {
	return &AppError{Kind: KindValidation, Message: message}
}

// Conflict creates a uniqueness or state conflict error
func Conflict(message string) *AppError {
	return &AppError{Kind: KindConflict, Message: message}
}

// Unauthorized creates an authentication error
func Unauthorized(message string) *AppError {
	return &AppError{Kind: KindUnauthorized, Message: message}
}

// Error method implementation for ValidationError
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Is lets a ValidationError match ErrValidation
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Error method implementation for StorageError
func (e *StorageError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *StorageError) Unwrap() error { return e.Cause }

// Error method implementation for ProcessingError
func (e *ProcessingError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *ProcessingError) Unwrap() error { return e.Cause }

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// NewStorageError creates a new StorageError
func NewStorageError(message string, cause error) *StorageError {
	return &StorageError{
		Message: message,
		Cause:   cause,
	}
}

// NewProcessingError creates a new ProcessingError
func NewProcessingError(message string, cause error) *ProcessingError {
	return &ProcessingError{
		Message: message,
		Cause:   cause,
	}
}

// KindOf returns the category of err, or an empty Kind for unexpected errors
func KindOf(err error) Kind {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Kind
	}
	var validationErr *ValidationError
	if stderrors.As(err, &validationErr) {
		return KindValidation
	}
	return ""
}
