package common

import (
	"errors"
	"fmt"

	"tableside/internal/models"
)

// Sentinel errors for the storage-facing failure modes. Services wrap these
// with context via fmt.Errorf("%w", ...) so handlers can match with errors.Is.
var (
	// ErrNotFound means the referenced record does not exist; no write was attempted.
	ErrNotFound = errors.New("record not found")

	// ErrConflict means an optimistic concurrency check failed: the record
	// changed between read and write. Callers should re-read and retry.
	ErrConflict = errors.New("conflicting concurrent update")

	// ErrStorageUnavailable means the record store could not be reached.
	// The operation committed nothing and is safe to retry with backoff.
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// ValidationError rejects malformed input before any write.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidationError builds a field-scoped validation failure.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// TransitionError rejects an operation the order lifecycle table does not
// permit in the order's current state. The stored record is left unchanged.
type TransitionError struct {
	Op   string // set for non-transition operations, e.g. "append item"
	From models.OrderStatus
	To   models.OrderStatus
}

func (e *TransitionError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("cannot %s while order is %q", e.Op, e.From)
	}
	return fmt.Sprintf("invalid order status transition from %q to %q", e.From, e.To)
}

// StorageError wraps a driver-level failure as ErrStorageUnavailable while
// keeping the underlying cause in the message.
func StorageError(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrStorageUnavailable, op, err)
}
