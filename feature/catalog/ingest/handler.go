package ingest

import (
	"context"
	"errors"

	"brainrot-catalog/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles the admin sync endpoints.
type Handler struct {
	orch   *Orchestrator
	logger *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(orch *Orchestrator, logger *zap.Logger) *Handler {
	return &Handler{orch: orch, logger: logger}
}

// RegisterRoutes registers the sync routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/admin/sync")
	group.Post("/", h.HandleTrigger)
	group.Get("/status", h.HandleStatus)
}

// StatusResponse is the body of GET /admin/sync/status.
type StatusResponse struct {
	Status     Status  `json:"status"`
	LastResult *Result `json:"last_result"`
}

// HandleTrigger starts a sync pass.
// @Summary Trigger Sync
// @Description Starts a sync pass in the background (202). With wait=true the pass runs in the request and its result is returned.
// @Tags sync
// @Produce json
// @Param wait query boolean false "Wait for the pass to finish"
// @Success 200 {object} Result "Completed pass"
// @Success 202 {object} map[string]interface{} "Sync started"
// @Failure 409 {object} map[string]interface{} "Sync already in progress"
// @Failure 500 {object} map[string]string "Source listing unavailable"
// @Security ApiKeyAuth
// @Router /admin/sync [post]
func (h *Handler) HandleTrigger(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	// passes are not tied to the request lifetime
	ctx := context.Background()

	if c.QueryBool("wait") {
		res, err := h.orch.RunNow(ctx)
		switch {
		case errors.Is(err, ErrAlreadyInProgress):
			return h.conflict(c)
		case err != nil:
			l.Error("Sync failed", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(res)
	}

	if err := h.orch.Start(ctx); err != nil {
		return h.conflict(c)
	}
	l.Info("Sync triggered")
	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"message": "Sync started",
		"status":  h.orch.Status(),
	})
}

func (h *Handler) conflict(c *fiber.Ctx) error {
	return c.Status(fiber.StatusConflict).JSON(fiber.Map{
		"error":  ErrAlreadyInProgress.Error(),
		"status": h.orch.Status(),
	})
}

// HandleStatus reports the orchestrator state.
// @Summary Sync Status
// @Tags sync
// @Produce json
// @Success 200 {object} StatusResponse "Status"
// @Security ApiKeyAuth
// @Router /admin/sync/status [get]
func (h *Handler) HandleStatus(c *fiber.Ctx) error {
	return c.JSON(StatusResponse{Status: h.orch.Status(), LastResult: h.orch.LastResult()})
}
