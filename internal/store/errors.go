package store

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound means an update or delete referenced an id absent from
	// both the mirror and the collection. The operation is a no-op.
	ErrNotFound = errors.New("expense not found")

	// ErrNotOwner means the acting identity does not own the referenced
	// record. Fatal to the single operation, never downgraded.
	ErrNotOwner = errors.New("expense belongs to another identity")
)

// CollaboratorError wraps a failure of the persistence collaborator. The
// mirror stays in its last-known-good state; the store never retries.
type CollaboratorError struct {
	Op  string
	Err error
}

func (e *CollaboratorError) Error() string {
	return fmt.Sprintf("persistence %s failed: %v", e.Op, e.Err)
}

func (e *CollaboratorError) Unwrap() error {
	return e.Err
}

func collabErr(op string, err error) error {
	return &CollaboratorError{Op: op, Err: err}
}
