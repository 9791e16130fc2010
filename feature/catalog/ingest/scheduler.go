package ingest

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Runner runs a sync pass synchronously.
type Runner interface {
	RunNow(ctx context.Context) (*Result, error)
}

// Scheduler triggers sync passes on a cron schedule.
type Scheduler struct {
	cron   *cron.Cron
	entry  cron.EntryID
	runner Runner
	spec   string
	log    *zap.Logger
}

// NewScheduler parses the schedule in the configured timezone.
func NewScheduler(cfg Config, runner Runner, log *zap.Logger) (*Scheduler, error) {
	loc := time.Local
	if cfg.Timezone != "" {
		l, err := time.LoadLocation(cfg.Timezone)
		if err != nil {
			return nil, fmt.Errorf("load timezone %s: %w", cfg.Timezone, err)
		}
		loc = l
	}

	s := &Scheduler{
		cron:   cron.New(cron.WithLocation(loc)),
		runner: runner,
		spec:   cfg.Schedule,
		log:    log.With(zap.String("component", "scheduler")),
	}

	id, err := s.cron.AddFunc(cfg.Schedule, s.tick)
	if err != nil {
		return nil, fmt.Errorf("parse schedule %q: %w", cfg.Schedule, err)
	}
	s.entry = id
	return s, nil
}

// Start runs the scheduler in the background.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info("Sync scheduler started", zap.String("schedule", s.spec), zap.Time("next", s.Next()))
}

// Stop halts future triggers and returns a context done once a running trigger returns.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

// Next returns the next trigger time; zero before Start.
func (s *Scheduler) Next() time.Time {
	return s.cron.Entry(s.entry).Next
}

func (s *Scheduler) tick() {
	s.log.Info("Scheduled sync triggered")

	res, err := s.runner.RunNow(context.Background())
	switch {
	case errors.Is(err, ErrAlreadyInProgress):
		s.log.Info("Sync already running, skipping scheduled trigger")
	case err != nil:
		s.log.Error("Scheduled sync failed", zap.Error(err))
	default:
		s.log.Info("Scheduled sync finished",
			zap.Int("created", res.Created),
			zap.Int("updated", res.Updated),
			zap.Int("errors", res.Errors))
	}
}
