package models

import "errors"

var (
	// ErrNotFound is returned when an operation targets an order that does not exist.
	ErrNotFound = errors.New("order not found")
	// ErrUpload wraps any failure to write a photo to object storage.
	ErrUpload = errors.New("photo upload failed")
	// ErrStorage wraps failures of the persisted order store.
	ErrStorage = errors.New("order storage unavailable")
	// ErrUnauthorized is returned for a missing, stale or replaced session.
	ErrUnauthorized = errors.New("unauthorized")
)

// ValidationError describes user-correctable input. Message is safe to show to clients.
type ValidationError struct {
	Message string
}

func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

func (e *ValidationError) Error() string {
	return e.Message
}

// AuthError carries the identity provider's message verbatim.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}
