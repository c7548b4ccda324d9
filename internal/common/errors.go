// Package common provides shared utilities and types used across the application.
package common

import (
	"context"
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Input errors, reported before any request is sent.
	ErrValidation = errors.New("validation failed")

	// Remote API errors.
	ErrConnection = errors.New("could not connect to server")
	ErrNotFound   = errors.New("not found")
	ErrMalformed  = errors.New("malformed payload")

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

// NewValidationError creates a user error for a blocking input problem.
func NewValidationError(userMessage string) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         ErrValidation,
	}
}

// UserMessage returns the text to display for err. User errors show their
// message without the wrapped cause, connection failures collapse to a fixed
// phrase, and anything else falls back to err.Error().
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var userErr *UserError
	if errors.As(err, &userErr) {
		return userErr.UserMessage
	}

	// Messages carried by remote errors take precedence over the transport classification.
	var msgErr interface{ UserFacing() string }
	if errors.As(err, &msgErr) {
		return msgErr.UserFacing()
	}

	if errors.Is(err, ErrConnection) {
		return "Could not connect to server"
	}

	return err.Error()
}

// IsRetryable determines if an error should trigger a retry.
func IsRetryable(err error) bool {
	if errors.Is(err, context.Canceled) {
		return false
	}

	if errors.Is(err, ErrConnection) ||
		errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var retryableErr *RetryableError
	if errors.As(err, &retryableErr) {
		return retryableErr.Retryable
	}

	return false
}
