// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Storage errors.
	ErrNotFound          = errors.New("not found")
	ErrDatabaseCorrupted = errors.New("database corrupted")

	// Input errors.
	ErrInvalidField  = errors.New("invalid field")
	ErrInvalidAmount = errors.New("please enter a valid amount")
	ErrUnknownPreset = errors.New("unknown preset")

	// Submission errors.
	ErrSubmitInFlight = errors.New("a prediction is already in flight")

	// Configuration errors.
	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}

// ValidationError is returned when local input is unfit for submission.
// No request is sent when it occurs.
type ValidationError struct {
	Err   error
	Field string
	Value string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %q: %v", e.Field, e.Value, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// TransportError is returned when the prediction service could not be reached
// or answered with a non-2xx status or an unreadable body.
type TransportError struct {
	Err        error
	Op         string
	StatusCode int
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s failed with status %d: %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// HistoryRefreshError reports a failed history refresh. It is a warning and
// never affects the displayed prediction.
type HistoryRefreshError struct {
	Err error
}

func (e *HistoryRefreshError) Error() string {
	return fmt.Sprintf("history refresh failed: %v", e.Err)
}

func (e *HistoryRefreshError) Unwrap() error {
	return e.Err
}

// IsValidation reports whether err is, or wraps, a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// IsTransport reports whether err is, or wraps, a TransportError.
func IsTransport(err error) bool {
	var t *TransportError
	return errors.As(err, &t)
}
