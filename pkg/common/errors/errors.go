package errors

import (
	"errors"
	"fmt"
)

// Common error types used across the circbuf library

var (
	// ErrCapacityExceeded indicates a fail-fast write against a full buffer
	ErrCapacityExceeded = errors.New("capacity exceeded")

	// ErrEmpty indicates a fail-fast read against an empty buffer
	ErrEmpty = errors.New("buffer is empty")

	// ErrUnsupported indicates a general-collection operation the FIFO contract rejects
	ErrUnsupported = errors.New("operation not supported")

	// ErrCanceled indicates that a blocking operation was canceled by its caller
	ErrCanceled = errors.New("operation canceled")

	// ErrTimeout indicates that a blocking operation ran past its deadline
	ErrTimeout = errors.New("operation timed out")

	// ErrSealed indicates a write attempted against a sealed buffer
	ErrSealed = errors.New("buffer is sealed")

	// ErrInvalidConfiguration indicates invalid configuration parameters
	ErrInvalidConfiguration = errors.New("invalid configuration")
)

// ValidationError describes a rejected configuration value.
type ValidationError struct {
	Module string
	Field  string
	Value  interface{}
	Reason string
	Hint   string
}

// NewValidationError creates a ValidationError for module.field.
func NewValidationError(module, field string, value interface{}, reason string) *ValidationError {
	return &ValidationError{
		Module: module,
		Field:  field,
		Value:  value,
		Reason: reason,
	}
}

// WithHint attaches a remediation hint and returns the same error for chaining.
func (e *ValidationError) WithHint(hint string) *ValidationError {
	e.Hint = hint
	return e
}

func (e *ValidationError) Error() string {
	msg := fmt.Sprintf("%s: invalid %s=%v (%s)", e.Module, e.Field, e.Value, e.Reason)
	if e.Hint != "" {
		msg += " - " + e.Hint
	}
	return msg
}

// Unwrap makes every ValidationError match ErrInvalidConfiguration.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidConfiguration
}

// OperationError wraps the cause of a failed operation with the module and
// operation that produced it.
type OperationError struct {
	Module    string
	Operation string
	Cause     error
	Context   string
}

// NewOperationError creates an OperationError.
func NewOperationError(module, operation string, cause error) *OperationError {
	return &OperationError{
		Module:    module,
		Operation: operation,
		Cause:     cause,
	}
}

// WithContext attaches free-form detail and returns the same error for chaining.
func (e *OperationError) WithContext(context string) *OperationError {
	e.Context = context
	return e
}

func (e *OperationError) Error() string {
	msg := fmt.Sprintf("%s.%s failed: %v", e.Module, e.Operation, e.Cause)
	if e.Context != "" {
		msg += " (" + e.Context + ")"
	}
	return msg
}

func (e *OperationError) Unwrap() error {
	return e.Cause
}

// SealedError is returned by fail-fast writes against a sealed buffer. It
// carries the reason given when the buffer was sealed.
type SealedError struct {
	Reason string
}

// NewSealedError creates a SealedError with the given reason.
func NewSealedError(reason string) *SealedError {
	return &SealedError{Reason: reason}
}

func (e *SealedError) Error() string {
	if e.Reason == "" {
		return ErrSealed.Error()
	}
	return ErrSealed.Error() + ": " + e.Reason
}

// Unwrap makes every SealedError match ErrSealed.
func (e *SealedError) Unwrap() error {
	return ErrSealed
}

// IsTemporary returns true if the error reports a buffer state that another
// goroutine can change (full or empty)
func IsTemporary(err error) bool {
	return errors.Is(err, ErrCapacityExceeded) || errors.Is(err, ErrEmpty)
}

// IsRetryable returns true if the error indicates a condition that might
// be resolved by retrying the operation
func IsRetryable(err error) bool {
	return IsTemporary(err) || errors.Is(err, ErrTimeout)
}

// IsCanceled returns true if the error reports caller cancellation
func IsCanceled(err error) bool {
	return errors.Is(err, ErrCanceled)
}

// IsSealed returns true if the error reports a write against a sealed buffer
func IsSealed(err error) bool {
	return errors.Is(err, ErrSealed)
}

// IsValidationError returns true if err is or wraps a *ValidationError
func IsValidationError(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}
