package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrValidationFailed   = errors.New("validation failed")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrStoreUnavailable   = errors.New("store unavailable")

	ErrMissingToken   = errors.New("token not provided")
	ErrMalformedToken = errors.New("malformed token")
	ErrTokenInvalid   = errors.New("invalid token")
	// ErrTokenExpired wraps ErrTokenInvalid so callers that do not care about
	// the distinction can match on ErrTokenInvalid alone.
	ErrTokenExpired = fmt.Errorf("token expired: %w", ErrTokenInvalid)

	ErrEntryNotFound = errors.New("entry not found")
)

// FieldError describes a single rejected input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries field-level details and matches ErrValidationFailed.
type ValidationError struct {
	Fields []FieldError
}

func NewValidationError(fields ...FieldError) *ValidationError {
	return &ValidationError{Fields: fields}
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return ErrValidationFailed.Error()
	}
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message)
	}
	return ErrValidationFailed.Error() + ": " + strings.Join(msgs, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}
