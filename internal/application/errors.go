package application

import (
	"errors"
	"fmt"

	"coursecraft/internal/domain"
)

// Sentinel errors for common conditions
var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidOperation = errors.New("invalid operation")
	ErrMoveRejected     = errors.New("move rejected")
)

// ValidationError represents a validation failure with details
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NotFoundError means a referenced node or parent could not be located in
// the current tree, e.g. a stale key after a reload. The operation aborts
// with no mutation.
type NotFoundError struct {
	Key string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("node %q not found", e.Key)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// MoveError represents an illegal move, carrying the validator's reason
// code for diagnostics.
type MoveError struct {
	SourceKey string
	TargetKey string
	Reason    domain.MoveReason
}

func (e *MoveError) Error() string {
	return fmt.Sprintf("cannot move %s to %s: %s", e.SourceKey, e.TargetKey, e.Reason)
}

func (e *MoveError) Is(target error) bool {
	return target == ErrMoveRejected
}

// PersistenceError wraps a failed store call. A failed move call leaves the
// tree untouched and is fully recoverable; a failed sort-order update is
// logged only, since the move itself already took effect.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persisting %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
