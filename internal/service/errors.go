package service

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is returned when input validation fails.
	ErrInvalidInput = errors.New("invalid input")
	// ErrModelUnavailable is returned when the model session failed to initialize.
	ErrModelUnavailable = errors.New("model unavailable")
	// ErrHistory is returned when the chat history store fails.
	ErrHistory = errors.New("history store error")
)

// ValidationError represents a validation error with a field name.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field %s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// WrapError wraps an error with additional context.
func WrapError(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// historyError marks err as a history store failure while keeping the cause.
func historyError(err error, msg string) error {
	return WrapError(errors.Join(ErrHistory, err), msg)
}
