package integrity

import (
	"brainrot-catalog/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for integrity checks.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the integrity routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/integrity")
	group.Get("/", h.HandleIntegrityCheck)
	group.Get("/schema", h.HandleSchemaCheck)
	group.Get("/images", h.HandleImageCheck)
}

// HandleIntegrityCheck triggers all integrity checks.
// @Summary Run All Integrity Checks
// @Description Verifies the database schema and that every cached image referenced by the catalog exists.
// @Tags integrity
// @Produce json
// @Success 200 {object} Report "Combined Report"
// @Security ApiKeyAuth
// @Router /integrity [get]
func (h *Handler) HandleIntegrityCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Triggering all integrity checks")

	report := h.service.CheckAll(c.Context())
	if report.Status != "ok" {
		l.Warn("Integrity problems detected", zap.Any("errors", report.Errors))
	}
	return c.JSON(report)
}

// HandleSchemaCheck checks the brainrots table.
// @Summary Check Schema
// @Description Checks that the brainrots table has every column the catalog needs.
// @Tags integrity
// @Produce json
// @Success 200 {object} checks.SchemaReport "Schema Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Security ApiKeyAuth
// @Router /integrity/schema [get]
func (h *Handler) HandleSchemaCheck(c *fiber.Ctx) error {
	report, err := h.service.CheckSchema()
	if err != nil {
		logger.WithRayID(h.service.logger, c).Error("Schema check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(report)
}

// HandleImageCheck checks the image cache.
// @Summary Check Images
// @Description Lists catalog entries whose cached image file is missing.
// @Tags integrity
// @Produce json
// @Success 200 {object} checks.ImageReport "Image Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Security ApiKeyAuth
// @Router /integrity/images [get]
func (h *Handler) HandleImageCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.CheckImages(c.Context())
	if err != nil {
		l.Error("Image check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if len(report.Missing) > 0 {
		l.Warn("Missing images detected", zap.Int("missing", len(report.Missing)))
	}
	return c.JSON(report)
}
