// Package common provides shared utilities and types used across the application.
package common

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// Common application errors.
var (
	// Local input errors.
	ErrInvalidFileType  = errors.New("invalid file type")
	ErrFileTooLarge     = errors.New("file too large")
	ErrNoFileSelected   = errors.New("no file selected")
	ErrInvalidTimeframe = errors.New("invalid timeframe")

	// Workflow guard errors.
	ErrSubmissionInFlight    = errors.New("submission already in flight")
	ErrMutationInFlight      = errors.New("history change already in flight")
	ErrNoPendingConfirmation = errors.New("nothing awaiting confirmation")

	// Remote errors.
	ErrNotFound = errors.New("not found")

	// Configuration errors.
	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// ValidationError reports bad local input. It never reaches the network.
type ValidationError struct {
	Err    error
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a validation error for a field.
func NewValidationError(field string, err error, reason string) error {
	return &ValidationError{Field: field, Err: err, Reason: reason}
}

// TransportError reports that the remote service could not be reached.
type TransportError struct {
	Err error
	Op  string
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: service unreachable: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ServiceError reports a non-success response from the remote service.
type ServiceError struct {
	Err        error
	Op         string
	Body       string
	StatusCode int
}

func (e *ServiceError) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("%s: invalid response (status %d): %v", e.Op, e.StatusCode, e.Err)
	case e.Body != "":
		return fmt.Sprintf("%s: service returned %d: %s", e.Op, e.StatusCode, e.Body)
	default:
		return fmt.Sprintf("%s: service returned %d %s", e.Op, e.StatusCode, http.StatusText(e.StatusCode))
	}
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// Is lets callers match a 404 against ErrNotFound.
func (e *ServiceError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

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

// UserMessage returns the text a view should display for err.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var userErr *UserError
	if errors.As(err, &userErr) {
		return userErr.UserMessage
	}

	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		if validationErr.Err != nil {
			return validationErr.Err.Error()
		}
		return validationErr.Reason
	}

	return err.Error()
}

// IsRemote reports whether err came from the remote boundary.
func IsRemote(err error) bool {
	var transportErr *TransportError
	var serviceErr *ServiceError
	return errors.As(err, &transportErr) || errors.As(err, &serviceErr)
}

// IsCanceled reports whether err was caused by the caller giving up.
func IsCanceled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
