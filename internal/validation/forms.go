// Package validation provides input validation for signup, profile, and
// message forms.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"warbler/internal/models"
)

var (
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_.-]{3,30}$`)
	emailRegex    = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// ValidateUsername checks username format.
func ValidateUsername(username string) error {
	if strings.TrimSpace(username) == "" {
		return models.NewValidationError("username is required")
	}
	if !usernameRegex.MatchString(username) {
		return models.NewValidationError("username must be 3-30 characters and contain only letters, numbers, '_', '.', or '-'")
	}
	return nil
}

// ValidateEmail checks email format.
func ValidateEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return models.NewValidationError("email is required")
	}
	if !emailRegex.MatchString(email) {
		return models.NewValidationError("email is not a valid address")
	}
	return nil
}

// ValidatePassword checks password length. The limits mirror the signup
// form rules: at least 6 characters, at most 128.
func ValidatePassword(password string) error {
	if password == "" {
		return models.NewValidationError("password is required")
	}
	if len(password) < 6 {
		return models.NewValidationError("password must be at least 6 characters long")
	}
	if len(password) > 128 {
		return models.NewValidationError("password must not exceed 128 characters")
	}
	return nil
}

// ValidateMessageText checks warble text: non-empty and within the length
// bound after trimming.
func ValidateMessageText(text string) error {
	if strings.TrimSpace(text) == "" {
		return models.NewValidationError("message text is required")
	}
	if utf8.RuneCountInString(text) > models.MaxMessageLength {
		return models.NewValidationError(fmt.Sprintf("message must not exceed %d characters", models.MaxMessageLength))
	}
	return nil
}
