package apperrors

import (
	"context"
	"errors"
	"fmt"
)

// Application exit codes define the standard exit statuses for the application.
// These codes are used to signal the outcome of the program execution to the OS.
const (
	ExitSuccess       = 0   // Indicates successful execution.
	ExitErrorGeneric  = 1   // Indicates a generic error.
	ExitErrorMismatch = 3   // Indicates the strategies produced different outputs (strict mode).
	ExitErrorConfig   = 4   // Indicates a configuration error.
	ExitErrorCanceled = 130 // Indicates the operation was canceled (e.g., SIGINT).
)

// ConfigError represents a user configuration error, such as invalid flags or
// values. It indicates that the application cannot proceed due to incorrect user input.
type ConfigError struct {
	// Message explains the specific configuration error.
	Message string
}

// Error returns the error message for a ConfigError.
func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a new ConfigError with a formatted message.
//
// Parameters:
//   - format: A format string (see fmt.Sprintf).
//   - a: Arguments to be formatted into the string.
//
// Returns:
//   - error: A new ConfigError instance containing the formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// ValidationError represents an input validation failure. It identifies which
// field failed validation and provides a human-readable explanation.
type ValidationError struct {
	// Field is the name of the field that failed validation.
	Field string
	// Message explains the validation failure.
	Message string
}

// Error returns a formatted message describing the validation failure.
func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error for %q: %s", e.Field, e.Message)
}

// RunError encapsulates a failure of a single strategy run while preserving
// the original cause.
type RunError struct {
	// Strategy is the name of the strategy that failed.
	Strategy string
	// Cause is the underlying error.
	Cause error
}

// Error returns the strategy name followed by the cause.
func (e RunError) Error() string {
	return fmt.Sprintf("%s: %v", e.Strategy, e.Cause)
}

// Unwrap returns the original wrapped error.
func (e RunError) Unwrap() error { return e.Cause }

// MismatchError reports that two output buffers which should be bitwise
// identical differ.
type MismatchError struct {
	// Reference and Candidate name the strategies that were compared.
	Reference string
	Candidate string
	// Count is the number of differing slots.
	Count int
	// FirstIndex is the lowest differing index, or -1 when the buffers
	// differ only in length.
	FirstIndex int
}

// Error returns a formatted message describing the mismatch.
func (e MismatchError) Error() string {
	if e.FirstIndex < 0 {
		return fmt.Sprintf("outputs of %s and %s differ in length", e.Reference, e.Candidate)
	}
	return fmt.Sprintf("outputs of %s and %s differ in %d slot(s), first at index %d",
		e.Reference, e.Candidate, e.Count, e.FirstIndex)
}

// PlanDefectError is the panic value raised when a static partition plan
// fails to cover the index space exactly. It signals a programming error in
// the partition arithmetic and is never expected to be recovered.
type PlanDefectError struct {
	// Cursor is where the running partition cursor ended.
	Cursor int
	// N is the size of the index space.
	N int
}

// Error returns a formatted message describing the defect.
func (e PlanDefectError) Error() string {
	return fmt.Sprintf("partition plan defect: cursor ended at %d, want %d", e.Cursor, e.N)
}

// WrapError wraps an error with additional context using fmt.Errorf and %w.
// It returns nil if err is nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// IsContextError checks if the error is a context cancellation or deadline exceeded error.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
