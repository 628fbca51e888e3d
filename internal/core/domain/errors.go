package domain

import (
	"errors"
	"strings"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrBlacklisted        = errors.New("identity is blacklisted")
	ErrInvalidCredentials = errors.New("wrong email or password")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidToken       = errors.New("invalid token")

	// Infrastructure failures. Callers map these to a generic server error.
	ErrEligibilityCheck = errors.New("eligibility check failed")
	ErrHashing          = errors.New("password hashing failed")
	ErrStore            = errors.New("user store failure")
)

// FieldError is a single client-correctable defect on one input field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError collects every field that failed its format or strength rule.
type ValidationError struct {
	Fields []FieldError
}

// NewValidationError returns a ValidationError holding a single field defect.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Message: message}}}
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Messages(), "; ")
}

// Messages returns the human-readable message of every field defect, in order.
func (e *ValidationError) Messages() []string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message)
	}
	return msgs
}
