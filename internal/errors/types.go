package errors

// Kind classifies an error for callers that need to branch on its category
type Kind string

const (
	KindNotFound     Kind = "NOT_FOUND"
	KindForbidden    Kind = "FORBIDDEN"
	KindValidation   Kind = "VALIDATION_ERROR"
	KindConflict     Kind = "CONFLICT"
	KindUnauthorized Kind = "UNAUTHORIZED"
)

// AppError is a categorised domain error
type AppError struct {
	Kind    Kind
	Message string
}

// ValidationError represents a validation error with a field and message
type ValidationError struct {
	Field   string
	Message string
}

// StorageError represents an error during storage operations
type StorageError struct {
	Message string
	Cause   error
}

// ProcessingError represents an error during media processing
type ProcessingError struct {
	Message string
	Cause   error
}
