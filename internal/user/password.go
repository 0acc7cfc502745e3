package user

import (
	"regexp"
	"unicode"
	"unicode/utf8"

	apperrors "github.com/consensuslabs/reelstream/backend/internal/errors"
	"golang.org/x/crypto/bcrypt"
)

// HashPassword hashes a plain password with bcrypt
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches the bcrypt hash
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// ValidatePassword enforces the password policy: 6 to 32 characters with at least one letter and one digit
func ValidatePassword(field, password string) error {
	if len(password) < 6 || len(password) > 32 {
		return apperrors.NewValidationError(field, "password must be between 6 and 32 characters")
	}

	var hasLetter, hasNumber bool
	for _, char := range password {
		switch {
		case unicode.IsLetter(char):
			hasLetter = true
		case unicode.IsNumber(char):
			hasNumber = true
		}
	}

	if !hasLetter {
		return apperrors.NewValidationError(field, "password must contain at least one letter")
	}
	if !hasNumber {
		return apperrors.NewValidationError(field, "password must contain at least one number")
	}
	return nil
}

var usernamePattern = regexp.MustCompile(`^[\p{L}\p{N}_]+$`)

// ValidateUsername allows 3 to 50 letters, digits or underscores
func ValidateUsername(username string) error {
	n := utf8.RuneCountInString(username)
	if n < 3 || n > 50 {
		return apperrors.NewValidationError("username", "username must be between 3 and 50 characters")
	}
	if !usernamePattern.MatchString(username) {
		return apperrors.NewValidationError("username", "username may only contain letters, numbers and underscores")
	}
	return nil
}
