// internal/domain/errors.go
package domain

import (
	"errors"
	"sort"
	"strings"
)

var (
	// General errors
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")

	// Submission-related errors
	ErrSubmissionNotFound  = errors.New("submission not found")
	ErrInvalidSubmission   = errors.New("invalid submission type")
	ErrSlugConflict        = errors.New("could not reserve a unique slug")
	ErrInvalidTemplate     = errors.New("invalid template style")
	ErrPasswordRequired    = errors.New("password required")
	ErrIncorrectPassword   = errors.New("incorrect password")
	ErrPillarNotFound      = errors.New("pillar description not found")
	ErrMissingShareChannel = errors.New("phone or email is required")
	ErrShareFailed         = errors.New("no share message could be delivered")

	// OTP-related errors
	ErrInvalidOTP          = errors.New("invalid verification code")
	ErrOTPExpired          = errors.New("verification code expired")
	ErrOTPNotRequested     = errors.New("no verification code was requested for this phone")
	ErrOTPAttemptsExceeded = errors.New("too many verification attempts")
	ErrOTPRateLimited      = errors.New("too many verification codes requested")

	// CRM-related errors
	ErrCRMDisabled     = errors.New("crm integration disabled")
	ErrCRMFieldMissing = errors.New("crm custom field not found")
)

// ValidationError reports per-field problems with an input.
type ValidationError struct {
	Fields map[string]string
}

func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string]string)}
}

// Add records a message for field, keeping the first one reported.
func (e *ValidationError) Add(field, message string) {
	if _, exists := e.Fields[field]; !exists {
		e.Fields[field] = message
	}
}

// OrNil returns nil when no field failed.
func (e *ValidationError) OrNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Is lets errors.Is(err, ErrInvalidInput) match validation failures.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}
