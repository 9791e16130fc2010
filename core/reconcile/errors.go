package reconcile

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRecord is returned for records that cannot be reconciled.
	ErrInvalidRecord = errors.New("invalid record")

	// ErrDuplicate is wrapped by stores when a write violates a uniqueness constraint.
	ErrDuplicate = errors.New("duplicate identity")
)

// ConflictError reports a uniqueness conflict, typically a concurrent writer
// creating the same identity. It is not retried.
type ConflictError struct {
	Op         string
	Name       string
	GameID     string
	ExternalID *int64
	Err        error
}

func (e *ConflictError) Error() string {
	if e.ExternalID != nil {
		return fmt.Sprintf("conflict on %s of %q (external id %d): %v", e.Op, e.Name, *e.ExternalID, e.Err)
	}
	return fmt.Sprintf("conflict on %s of %q in game %s: %v", e.Op, e.Name, e.GameID, e.Err)
}

func (e *ConflictError) Unwrap() error { return e.Err }
