package models

import (
	"fmt"
	"regexp"
	"time"
)

var (
	usernameRegex = regexp.MustCompile(`^[\w.@+-]+$`)
	slugRegex     = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)
)

// ValidateUsername checks format, length and the reserved "me" value,
// which collides with the self-service endpoint path.
func ValidateUsername(username string) error {
	if username == "me" {
		return NewValidationError("username", `username cannot be "me"`)
	}
	if len(username) > 150 {
		return NewValidationError("username", "username must be at most 150 characters")
	}
	if !usernameRegex.MatchString(username) {
		return NewValidationError("username", "username may only contain letters, digits and @/./+/-/_ characters")
	}
	return nil
}

func ValidateSlug(slug string) error {
	if len(slug) > 50 {
		return NewValidationError("slug", "slug must be at most 50 characters")
	}
	if !slugRegex.MatchString(slug) {
		return NewValidationError("slug", "slug may only contain letters, digits, hyphens and underscores")
	}
	return nil
}

func ValidateYear(year int) error {
	if year < 0 || year > time.Now().Year() {
		return NewValidationError("year", "year must be between 0 and the current year")
	}
	return nil
}

func ValidateScore(score int) error {
	if score < MinScore {
		return NewValidationError("score", fmt.Sprintf("minimum score is %d", MinScore))
	}
	if score > MaxScore {
		return NewValidationError("score", fmt.Sprintf("maximum score is %d", MaxScore))
	}
	return nil
}

func ValidateRole(role UserRole) error {
	if !role.Valid() {
		return NewValidationError("role", "role must be one of: user, moderator, admin")
	}
	return nil
}
