package cmd

import (
	"context"
	"fmt"

	"brainrot-catalog/core/assets"
	"brainrot-catalog/core/config"
	"brainrot-catalog/core/database"
	"brainrot-catalog/core/notify"
	"brainrot-catalog/core/reconcile"
	"brainrot-catalog/feature/catalog"
	"brainrot-catalog/feature/catalog/ingest"
	"brainrot-catalog/feature/catalog/sources"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	sourceBadges = "badges"
	sourceWiki   = "wiki"
)

// components holds everything a command needs to run a sync or serve the catalog.
type components struct {
	db        *gorm.DB
	repo      *catalog.Repository
	store     assets.Store
	publisher notify.Publisher
	orch      *ingest.Orchestrator
}

func (c *components) Close() {
	if c.publisher != nil {
		_ = c.publisher.Close()
	}
	if c.db != nil {
		if sqlDB, err := c.db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
}

// newFetcher selects the source named by source.
func newFetcher(cfg *config.Config, source string, log *zap.Logger) (sources.Fetcher, error) {
	switch source {
	case sourceBadges:
		return sources.NewBadgeFetcher(cfg.Badges, log), nil
	case sourceWiki:
		return sources.NewWikiFetcher(cfg.Wiki, log), nil
	default:
		return nil, fmt.Errorf("unknown source %q (expected %s or %s)", source, sourceBadges, sourceWiki)
	}
}

// buildComponents connects to the database, migrates it and wires the sync pipeline.
func buildComponents(ctx context.Context, cfg *config.Config, log *zap.Logger) (*components, error) {
	fetcher, err := newFetcher(cfg, cfg.Sync.Source, log)
	if err != nil {
		return nil, err
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("database connection required: %w", err)
	}
	c := &components{db: db, repo: catalog.NewRepository(db)}

	if err := c.repo.Migrate(ctx); err != nil {
		c.Close()
		return nil, err
	}

	store, err := assets.NewStore(ctx, cfg.Assets, cfg.Storage)
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("failed to create asset store: %w", err)
	}
	c.store = store
	c.publisher = notify.New(cfg.Notify, log)

	engine := reconcile.NewEngine(c.repo, log)
	acquirer := assets.NewAcquirer(store, cfg.Assets, log)
	c.orch = ingest.NewOrchestrator(cfg.Sync, fetcher, acquirer, engine, c.publisher, log)

	log.Info("Components ready",
		zap.String("source", fetcher.Source()),
		zap.String("driver", cfg.Database.Driver),
		zap.String("assets", cfg.Assets.Backend))
	return c, nil
}
