// Package reconcile upserts normalized item records without creating duplicates.
//
// # Identity
//
// A record carrying an external id is the same entity as the stored row with
// that id, and nothing else. A record without one is matched on
// (name, game id) against rows that also lack an external id. A record whose
// external id is unknown is inserted even when an id-less row shares its name.
//
// # Partial updates
//
// Optional fields use Field: the zero value is absent and leaves the stored
// value untouched, Null clears it, Some overwrites it.
//
// # Errors
//
// Stores wrap uniqueness failures in ErrDuplicate; the engine reports them as
// *ConflictError and never retries. Records failing Validate return
// ErrInvalidRecord.
//
// # Usage
//
//	engine := reconcile.NewEngine(repo, log)
//	outcome, err := engine.Upsert(ctx, rec)
package reconcile
