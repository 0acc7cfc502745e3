package errors

// Error message constants
const (
	ErrMsgFileSize       = "File size exceeds maximum allowed size"
	ErrMsgFileType       = "File type not allowed"
	ErrMsgTitleLength    = "Title length must be between min and max length"
	ErrMsgDescLength     = "Description length exceeds maximum allowed length"
	ErrMsgCodeExpired    = "Verification code has expired or was never sent"
	ErrMsgCodeMismatch   = "Verification code is incorrect"
	ErrMsgBadCredentials = "Invalid account or password"
)
