package reconcile

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Engine upserts normalized records using a two-tier identity lookup.
type Engine struct {
	store Store
	log   *zap.Logger
}

// NewEngine returns an engine writing to store.
func NewEngine(store Store, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{store: store, log: log}
}

// Upsert reconciles rec into the store.
//
// With an external id the record matches only the row holding that id; when
// none exists it is inserted. Without one, it matches the row with the same
// name and game that also has no external id. Provided fields overwrite the
// stored values; absent fields are left untouched.
func (e *Engine) Upsert(ctx context.Context, rec Record) (Outcome, error) {
	if err := Validate(rec); err != nil {
		return "", err
	}

	target, err := e.find(ctx, rec)
	if err != nil {
		return "", err
	}

	if target == nil {
		if _, err := e.store.Insert(ctx, rec); err != nil {
			return "", e.wrap("insert", rec, err)
		}
		e.log.Debug("Record created", zap.String("name", rec.Name), zap.Int64p("external_id", rec.ExternalID))
		return OutcomeCreated, nil
	}

	if _, err := e.store.UpdateFields(ctx, target.ID, PatchFrom(rec)); err != nil {
		return "", e.wrap("update", rec, err)
	}
	e.log.Debug("Record updated", zap.Uint("id", target.ID), zap.String("name", rec.Name))
	return OutcomeUpdated, nil
}

// find looks a record up by external id when it has one; the (name, game id)
// lookup only applies to records without an external id.
func (e *Engine) find(ctx context.Context, rec Record) (*Existing, error) {
	if rec.ExternalID != nil {
		existing, err := e.store.FindByExternalID(ctx, *rec.ExternalID)
		if err != nil {
			return nil, fmt.Errorf("find by external id %d: %w", *rec.ExternalID, err)
		}
		return existing, nil
	}

	existing, err := e.store.FindByNaturalKey(ctx, rec.Name, rec.GameID)
	if err != nil {
		return nil, fmt.Errorf("find %q in game %s: %w", rec.Name, rec.GameID, err)
	}
	return existing, nil
}

func (e *Engine) wrap(op string, rec Record, err error) error {
	if errors.Is(err, ErrDuplicate) {
		return &ConflictError{Op: op, Name: rec.Name, GameID: rec.GameID, ExternalID: rec.ExternalID, Err: err}
	}
	return fmt.Errorf("%s %q: %w", op, rec.Name, err)
}

// Validate checks the invariants a record must hold before reconciliation.
func Validate(rec Record) error {
	switch {
	case strings.TrimSpace(rec.Name) == "":
		return fmt.Errorf("%w: empty name", ErrInvalidRecord)
	case strings.TrimSpace(rec.GameID) == "":
		return fmt.Errorf("%w: %q has no game id", ErrInvalidRecord, rec.Name)
	case rec.Rarity == "":
		return fmt.Errorf("%w: %q has no rarity", ErrInvalidRecord, rec.Name)
	}
	if p, ok := rec.Price.Get(); ok && p < 0 {
		return fmt.Errorf("%w: %q has negative price %v", ErrInvalidRecord, rec.Name, p)
	}
	return nil
}
