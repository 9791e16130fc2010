package catalog

import (
	"context"
	"io"

	"brainrot-catalog/core/assets"
	"brainrot-catalog/feature/catalog/models"

	"go.uber.org/zap"
)

// Service exposes read access to the catalog and its cached images.
type Service struct {
	repo   *Repository
	images assets.Store
	logger *zap.Logger
}

// NewService creates a new catalog service.
func NewService(repo *Repository, images assets.Store, logger *zap.Logger) *Service {
	return &Service{repo: repo, images: images, logger: logger}
}

// List returns a filtered page of brainrots.
func (s *Service) List(ctx context.Context, filter models.ListFilter) (*models.Page, error) {
	return s.repo.List(ctx, filter)
}

// Get returns one brainrot or nil.
func (s *Service) Get(ctx context.Context, id uint) (*models.Brainrot, error) {
	return s.repo.Get(ctx, id)
}

// Rarities returns the per-tier counts.
func (s *Service) Rarities(ctx context.Context) ([]models.RarityCount, error) {
	return s.repo.RarityCounts(ctx)
}

// OpenImage opens a cached image by file name. Missing images return assets.ErrNotFound.
func (s *Service) OpenImage(ctx context.Context, name string) (io.ReadCloser, error) {
	return s.images.Open(ctx, name)
}
