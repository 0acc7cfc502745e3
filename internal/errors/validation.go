package errors

import (
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FromValidator converts the first field failure reported by validator/v10 into a ValidationError.
// Errors of any other type are returned unchanged.
func FromValidator(err error) error {
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !stderrors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}
	fe := fieldErrs[0]
	field := lowerFirst(fe.Field())

	switch fe.Tag() {
	case "required":
		return NewValidationError(field, fmt.Sprintf("%s is required", field))
	case "max":
		return NewValidationError(field, fmt.Sprintf("%s must be at most %s characters", field, fe.Param()))
	case "min":
		return NewValidationError(field, fmt.Sprintf("%s must be at least %s characters", field, fe.Param()))
	case "email":
		return NewValidationError(field, "invalid email address")
	case "len":
		return NewValidationError(field, fmt.Sprintf("%s must be exactly %s characters", field, fe.Param()))
	case "oneof":
		return NewValidationError(field, fmt.Sprintf("%s must be one of: %s", field, fe.Param()))
	default:
		return NewValidationError(field, fmt.Sprintf("%s failed the '%s' rule", field, fe.Tag()))
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
