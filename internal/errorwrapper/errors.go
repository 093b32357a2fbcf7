package errorwrapper

import (
	"errors"
	"fmt"
)

// Common error values used across the application
var (
	// ErrSelectorTimeout indicates a page element did not appear within the wait window
	ErrSelectorTimeout = errors.New("selector wait timed out")
	// ErrElementMissing indicates a configured selector matched nothing on the page
	ErrElementMissing = errors.New("element not found")
	// ErrNonNumericCount indicates the count element text could not be parsed as an integer
	ErrNonNumericCount = errors.New("count text is not numeric")
	// ErrIncompleteCredentials indicates the mail transport configuration is missing required values
	ErrIncompleteCredentials = errors.New("incomplete mail credentials")
	// ErrNoRecipients indicates the recipient list resolved to empty
	ErrNoRecipients = errors.New("no recipients configured")
)

// WrapError wraps an error with additional context information
func WrapError(err error, message string) error {
	if err == nil {
		return fmt.Errorf("%s: <nil>", message)
	}
	return fmt.Errorf("%s: %w", message, err)
}

// NewError creates a new error with a formatted message
func NewError(format string, args ...interface{}) error {
	return fmt.Errorf(format, args...)
}

// ValidationError represents validation errors with field-specific information
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: field '%s' with value '%v': %s", e.Field, e.Value, e.Message)
}

// NewValidationError creates a new validation error
func NewValidationError(field string, value any, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// ExtractionError represents a per-source extraction failure. The source that
// produced it is marked failed for the run; the run itself continues.
type ExtractionError struct {
	SourceID string
	Reason   string
	Wrapped  error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction failed for source '%s': %s", e.SourceID, e.Reason)
}

func (e *ExtractionError) Unwrap() error {
	return e.Wrapped
}

// NewExtractionError creates a new extraction error
func NewExtractionError(sourceID, reason string, wrapped error) *ExtractionError {
	return &ExtractionError{
		SourceID: sourceID,
		Reason:   reason,
		Wrapped:  wrapped,
	}
}

// NotificationError represents a digest delivery failure. Logged and ignored;
// snapshots are still saved.
type NotificationError struct {
	Reason  string
	Wrapped error
}

func (e *NotificationError) Error() string {
	return fmt.Sprintf("notification failed: %s", e.Reason)
}

func (e *NotificationError) Unwrap() error {
	return e.Wrapped
}

// NewNotificationError creates a new notification error
func NewNotificationError(reason string, wrapped error) *NotificationError {
	return &NotificationError{
		Reason:  reason,
		Wrapped: wrapped,
	}
}

// PersistenceError represents a snapshot store read or write failure.
// Reads fall back to empty state, writes are best effort.
type PersistenceError struct {
	Op      string
	Path    string
	Wrapped error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence %s failed for '%s'", e.Op, e.Path)
}

func (e *PersistenceError) Unwrap() error {
	return e.Wrapped
}

// NewPersistenceError creates a new persistence error
func NewPersistenceError(op, path string, wrapped error) *PersistenceError {
	return &PersistenceError{
		Op:      op,
		Path:    path,
		Wrapped: wrapped,
	}
}

// IsExtractionError reports whether err is (or wraps) an ExtractionError.
func IsExtractionError(err error) bool {
	var ee *ExtractionError
	return errors.As(err, &ee)
}
