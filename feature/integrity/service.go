package integrity

import (
	"context"

	"brainrot-catalog/core/assets"
	"brainrot-catalog/feature/catalog/models"
	"brainrot-catalog/feature/integrity/checks"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service handles integrity checks.
type Service struct {
	db     *gorm.DB
	images checks.ImageLister
	store  assets.Store
	logger *zap.Logger
}

// Report combines the results of every check.
type Report struct {
	Schema *checks.SchemaReport `json:"schema,omitempty"`
	Images *checks.ImageReport  `json:"images,omitempty"`
	Errors map[string]string    `json:"errors,omitempty"`
	Status string               `json:"status"` // "ok", "error"
}

// NewService creates a new integrity service.
func NewService(db *gorm.DB, images checks.ImageLister, store assets.Store, logger *zap.Logger) *Service {
	return &Service{
		db:     db,
		images: images,
		store:  store,
		logger: logger,
	}
}

// CheckSchema verifies the brainrots table has every column the catalog needs.
func (s *Service) CheckSchema() (*checks.SchemaReport, error) {
	return checks.CheckSchema(s.db, models.Brainrot{}.TableName(), models.RequiredColumns)
}

// CheckImages lists catalog rows whose cached image is missing.
func (s *Service) CheckImages(ctx context.Context) (*checks.ImageReport, error) {
	return checks.CheckImages(ctx, s.images, s.store)
}

// CheckAll runs every check. A failing check is reported, not returned.
func (s *Service) CheckAll(ctx context.Context) *Report {
	report := &Report{Status: "ok", Errors: map[string]string{}}

	if schema, err := s.CheckSchema(); err != nil {
		report.Errors["schema"] = err.Error()
	} else {
		report.Schema = schema
	}

	if images, err := s.CheckImages(ctx); err != nil {
		report.Errors["images"] = err.Error()
	} else {
		report.Images = images
	}

	if len(report.Errors) > 0 ||
		(report.Schema != nil && !report.Schema.Matched) ||
		(report.Images != nil && len(report.Images.Missing) > 0) {
		report.Status = "error"
	}
	return report
}
