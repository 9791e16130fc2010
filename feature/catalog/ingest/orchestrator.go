package ingest

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"brainrot-catalog/core/notify"
	"brainrot-catalog/core/reconcile"
	"brainrot-catalog/feature/catalog/sources"

	"go.uber.org/zap"
)

// ErrAlreadyInProgress is returned when a pass is requested while one is running.
var ErrAlreadyInProgress = errors.New("sync already in progress")

// EventSyncCompleted is the event type published after each pass.
const EventSyncCompleted = "sync.completed"

// ImageAcquirer caches a remote image and returns its public path.
type ImageAcquirer interface {
	Acquire(ctx context.Context, remoteRef, stableKey string) (string, error)
}

// Upserter reconciles one record into the store.
type Upserter interface {
	Upsert(ctx context.Context, rec reconcile.Record) (reconcile.Outcome, error)
}

// Orchestrator runs sync passes, at most one at a time.
type Orchestrator struct {
	cfg       Config
	fetcher   sources.Fetcher
	images    ImageAcquirer
	engine    Upserter
	publisher notify.Publisher
	log       *zap.Logger

	running    atomic.Bool
	lastSyncAt atomic.Pointer[time.Time]
	lastResult atomic.Pointer[Result]
}

// NewOrchestrator wires a fetcher to the image cache and the reconciliation engine.
func NewOrchestrator(cfg Config, fetcher sources.Fetcher, images ImageAcquirer, engine Upserter, publisher notify.Publisher, log *zap.Logger) *Orchestrator {
	if cfg.MaxFailures <= 0 {
		cfg.MaxFailures = 50
	}
	if publisher == nil {
		publisher = notify.Nop{}
	}
	return &Orchestrator{
		cfg:       cfg,
		fetcher:   fetcher,
		images:    images,
		engine:    engine,
		publisher: publisher,
		log:       log.With(zap.String("source", fetcher.Source())),
	}
}

// RunNow runs a pass and waits for its result. It fails immediately with
// ErrAlreadyInProgress when another pass is running. A nil result with an
// error means the source listing could not be fetched at all.
func (o *Orchestrator) RunNow(ctx context.Context) (*Result, error) {
	if !o.running.CompareAndSwap(false, true) {
		return nil, ErrAlreadyInProgress
	}
	defer o.running.Store(false)

	return o.run(ctx)
}

// Start begins a pass in the background. The guard is taken before Start
// returns, so a second call fails with ErrAlreadyInProgress.
func (o *Orchestrator) Start(ctx context.Context) error {
	if !o.running.CompareAndSwap(false, true) {
		return ErrAlreadyInProgress
	}

	go func() {
		defer o.running.Store(false)
		if _, err := o.run(ctx); err != nil {
			o.log.Error("Background sync failed", zap.Error(err))
		}
	}()
	return nil
}

// Status reports whether a pass is running and when the last one completed.
func (o *Orchestrator) Status() Status {
	return Status{Running: o.running.Load(), LastSyncAt: o.lastSyncAt.Load()}
}

// LastResult returns the result of the last completed pass, or nil.
func (o *Orchestrator) LastResult() *Result {
	return o.lastResult.Load()
}

func (o *Orchestrator) run(ctx context.Context) (*Result, error) {
	started := time.Now()
	o.log.Info("Sync started")

	maxPages := 0
	if pl, ok := o.fetcher.(sources.PageLimit); ok {
		maxPages = pl.MaxPages()
	}

	raws, err := sources.Sweep(ctx, o.fetcher, maxPages, o.log)
	if err != nil {
		o.log.Error("Sync aborted", zap.Error(err))
		return nil, err
	}
	if len(raws) == 0 {
		o.log.Warn("Source listed no records")
	}

	res := &Result{Source: o.fetcher.Source(), TotalSeen: len(raws), StartedAt: started}
	pacer, paced := o.fetcher.(sources.Pacer)

	for i, raw := range raws {
		if paced && i > 0 {
			if err := pacer.Pace(ctx); err != nil {
				o.log.Debug("Pacing interrupted", zap.Error(err))
			}
		}

		outcome, err := o.process(ctx, raw)
		if err != nil {
			res.Errors++
			if len(res.Failures) < o.cfg.MaxFailures {
				res.Failures = append(res.Failures, Failure{Name: raw.Name, Error: err.Error()})
			}
			o.log.Warn("Record failed", zap.String("name", raw.Name), zap.Error(err))
			continue
		}

		switch outcome {
		case reconcile.OutcomeCreated:
			res.Created++
		case reconcile.OutcomeUpdated:
			res.Updated++
		}
		o.log.Debug("Record reconciled",
			zap.Int("index", i+1),
			zap.Int("total", len(raws)),
			zap.String("name", raw.Name),
			zap.String("outcome", string(outcome)))
	}

	finished := time.Now()
	res.FinishedAt = finished
	res.DurationMS = finished.Sub(started).Milliseconds()
	res.Success = res.TotalSeen > 0

	o.lastSyncAt.Store(&finished)
	o.lastResult.Store(res)

	if err := o.publisher.Publish(ctx, Event{Type: EventSyncCompleted, Result: res}); err != nil {
		o.log.Warn("Publishing sync result failed", zap.Error(err))
	}

	o.log.Info("Sync completed",
		zap.Int("total_seen", res.TotalSeen),
		zap.Int("created", res.Created),
		zap.Int("updated", res.Updated),
		zap.Int("errors", res.Errors),
		zap.Duration("duration", res.Duration()))
	return res, nil
}

// process normalizes, caches the image of and reconciles one record.
// Panics are converted to errors so one bad record cannot stop a pass.
func (o *Orchestrator) process(ctx context.Context, raw sources.Raw) (outcome reconcile.Outcome, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic while processing %q: %v", raw.Name, r)
		}
	}()

	resolved, err := o.fetcher.Resolve(ctx, raw)
	if err != nil {
		return "", fmt.Errorf("normalize: %w", err)
	}

	rec := resolved.Record
	if rec.GameID == "" {
		rec.GameID = o.cfg.GameID
	}
	if rec.DataSource == "" {
		rec.DataSource = o.fetcher.Source()
	}

	if resolved.ImageRef != "" && o.images != nil {
		path, err := o.images.Acquire(ctx, resolved.ImageRef, resolved.ImageKey)
		if err != nil {
			o.log.Warn("Image unavailable", zap.String("name", rec.Name), zap.Error(err))
		} else if path != "" {
			rec.ImagePath = reconcile.Some(path)
		}
	}

	return o.engine.Upsert(ctx, rec)
}
