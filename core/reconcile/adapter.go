package reconcile

import "context"

// Store is the persistence contract the engine reconciles against.
// Lookups return nil, nil when nothing matches.
type Store interface {
	// FindByExternalID returns the record holding the strong identity id.
	FindByExternalID(ctx context.Context, id int64) (*Existing, error)

	// FindByNaturalKey returns the record with name and gameID that has no external id.
	FindByNaturalKey(ctx context.Context, name, gameID string) (*Existing, error)

	// Insert stores rec as a new record. Uniqueness failures wrap ErrDuplicate.
	Insert(ctx context.Context, rec Record) (*Existing, error)

	// UpdateFields applies patch to the record id. Uniqueness failures wrap ErrDuplicate.
	UpdateFields(ctx context.Context, id uint, patch Patch) (*Existing, error)
}
