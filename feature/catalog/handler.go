package catalog

import (
	"errors"
	"path/filepath"
	"strconv"
	"strings"

	"brainrot-catalog/core/assets"
	"brainrot-catalog/core/logger"
	"brainrot-catalog/feature/catalog/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

var contentTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
}

// Handler handles HTTP requests for the catalog.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the catalog routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/brainrots", h.HandleList)
	app.Get("/brainrots/:id", h.HandleGet)
	app.Get("/rarities", h.HandleRarities)
	app.Get("/images/:filename", h.HandleImage)
}

// Pagination describes the window returned by HandleList.
type Pagination struct {
	Total   int64 `json:"total"`
	Limit   int   `json:"limit"`
	Offset  int   `json:"offset"`
	HasMore bool  `json:"hasMore"`
}

// ListResponse is the body of GET /brainrots.
type ListResponse struct {
	Data       []models.Brainrot `json:"data"`
	Pagination Pagination        `json:"pagination"`
}

// HandleList lists brainrots.
// @Summary List Brainrots
// @Description List catalog entries, optionally filtered by rarity tier.
// @Tags catalog
// @Produce json
// @Param rarity query string false "Rarity tier (e.g. 'Secret')"
// @Param limit query int false "Page size (1-100, default 50)"
// @Param offset query int false "Offset (default 0)"
// @Success 200 {object} ListResponse "Brainrots"
// @Failure 400 {object} map[string]string "Invalid query"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /brainrots [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	limit, err := queryInt(c, "limit", 1, 100)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	offset, err := queryInt(c, "offset", 0, -1)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	filter := models.ListFilter{
		Rarity: strings.TrimSpace(c.Query("rarity", c.Query("category"))),
		Limit:  limit,
		Offset: offset,
	}
	page, err := h.service.List(c.Context(), filter)
	if err != nil {
		logger.WithRayID(h.service.logger, c).Error("List brainrots failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(ListResponse{
		Data: page.Items,
		Pagination: Pagination{
			Total:   page.Total,
			Limit:   page.Limit,
			Offset:  page.Offset,
			HasMore: int64(page.Offset+len(page.Items)) < page.Total,
		},
	})
}

// HandleGet returns a single brainrot.
// @Summary Get Brainrot
// @Tags catalog
// @Produce json
// @Param id path int true "Brainrot ID"
// @Success 200 {object} map[string]interface{} "Brainrot"
// @Failure 400 {object} map[string]string "Invalid id"
// @Failure 404 {object} map[string]string "Not found"
// @Router /brainrots/{id} [get]
func (h *Handler) HandleGet(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}

	item, err := h.service.Get(c.Context(), uint(id))
	if err != nil {
		logger.WithRayID(h.service.logger, c).Error("Get brainrot failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if item == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Brainrot not found"})
	}
	return c.JSON(fiber.Map{"data": item})
}

// HandleRarities returns how many brainrots each tier holds.
// @Summary Rarity Breakdown
// @Tags catalog
// @Produce json
// @Success 200 {object} map[string]interface{} "Counts per tier"
// @Router /rarities [get]
func (h *Handler) HandleRarities(c *fiber.Ctx) error {
	counts, err := h.service.Rarities(c.Context())
	if err != nil {
		logger.WithRayID(h.service.logger, c).Error("Rarity counts failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"data": counts})
}

// HandleImage serves a cached image.
// @Summary Get Image
// @Tags catalog
// @Produce png
// @Param filename path string true "Image file name"
// @Success 200 {file} binary "Image"
// @Failure 400 {object} map[string]string "Invalid filename"
// @Failure 404 {object} map[string]string "Image not found"
// @Router /images/{filename} [get]
func (h *Handler) HandleImage(c *fiber.Ctx) error {
	name := c.Params("filename")
	if !assets.ValidName(name) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid filename"})
	}

	rc, err := h.service.OpenImage(c.Context(), name)
	if err != nil {
		if errors.Is(err, assets.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Image not found"})
		}
		logger.WithRayID(h.service.logger, c).Error("Open image failed", zap.String("file", name), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	ct, ok := contentTypes[strings.ToLower(filepath.Ext(name))]
	if !ok {
		ct = "application/octet-stream"
	}
	c.Set(fiber.HeaderContentType, ct)
	c.Set(fiber.HeaderCacheControl, "public, max-age=31536000")
	// fasthttp closes the stream once the body is written
	return c.SendStream(rc)
}

// queryInt parses an optional integer query parameter within [lo, hi]; hi < 0 means unbounded.
func queryInt(c *fiber.Ctx, key string, lo, hi int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < lo || (hi >= 0 && v > hi) {
		return 0, errors.New("invalid " + key)
	}
	return v, nil
}
