package validation

import (
	"errors"
	"strings"
)

var (
	ErrPasswordTooShort  = errors.New("password must be at least 12 characters")
	ErrPasswordTooLong   = errors.New("password must not exceed 72 characters")
	ErrPasswordTooCommon = errors.New("password is too common, please choose a stronger one")
)

// ValidatePassword enforces NIST-style rules: minimum 12 characters,
// maximum 72 bytes (bcrypt truncates silently beyond that), no common
// patterns.
func ValidatePassword(password string) error {
	if len(password) < 12 {
		return ErrPasswordTooShort
	}
	if len(password) > 72 {
		return ErrPasswordTooLong
	}

	lower := strings.ToLower(password)
	common := []string{
		"password", "123456", "qwerty", "admin", "letmein",
		"welcome", "logoforge",
	}
	for _, pattern := range common {
		if strings.Contains(lower, pattern) {
			return ErrPasswordTooCommon
		}
	}

	return nil
}
