package userdata

import (
	"errors"
	"strings"
)

var (
	// ErrUserExists indicates the username is already taken.
	ErrUserExists = errors.New("user already exists")

	// ErrUserNotFound indicates the requested account doesn't exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidCredentials indicates a failed username/password check.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrSessionNotFound indicates a missing or expired session token.
	ErrSessionNotFound = errors.New("session not found")
)

// isUniqueViolation reports whether err is a UNIQUE or PRIMARY KEY
// constraint failure. modernc.org/sqlite wraps errors, so match on text.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "PRIMARY KEY constraint failed")
}
