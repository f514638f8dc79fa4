package model

import "errors"

// Common errors used across the application
var (
	// Account errors
	ErrAccountNotFound = errors.New("account not found")
	ErrUsernameTaken   = errors.New("Username already taken")
	ErrEmailTaken      = errors.New("Email already registered")

	// Credential / session errors.
	// ErrInvalidCredentials deliberately covers both "no such email" and
	// "wrong password" so callers cannot enumerate accounts.
	ErrInvalidCredentials = errors.New("Invalid email or password")
	ErrInvalidSession     = errors.New("invalid or expired session")
	ErrUnauthorized       = errors.New("Unauthorized")

	// Player state errors
	ErrPlayerStateNotFound = errors.New("Player data not found")
)

// ValidationError reports malformed input (short username/password,
// malformed email, bad update value)
type ValidationError struct {
	Message string
}

// NewValidationError creates a ValidationError with the given message
func NewValidationError(message string) error {
	return &ValidationError{Message: message}
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return e.Message
}
