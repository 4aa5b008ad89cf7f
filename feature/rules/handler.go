package rules

import (
	"errors"

	"equipment-validator/core/logger"
	"equipment-validator/core/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for rules.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the rules routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/rules")
	group.Get("/", h.HandleList)
	group.Post("/import", h.HandleImport)
	group.Post("/refresh", h.HandleRefresh)
}

// HandleList returns the governing rule table.
// @Summary List Rules
// @Description Returns the equipment rules currently in effect, in load order, plus duplicated equipment types.
// @Tags rules
// @Produce json
// @Success 200 {object} Listing
// @Failure 502 {object} map[string]string "Rule source unavailable"
// @Router /rules [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	list, err := h.service.List(c.Context())
	if err != nil {
		l.Error("Failed to load rules", zap.Error(err))
		return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(list)
}

// HandleRefresh reloads rules from the configured source.
// @Summary Refresh Rules
// @Description Drops the cached rule table and loads it again from the configured source.
// @Tags rules
// @Produce json
// @Success 200 {object} Listing
// @Failure 502 {object} map[string]string "Rule source unavailable"
// @Router /rules/refresh [post]
func (h *Handler) HandleRefresh(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	list, err := h.service.Refresh(c.Context())
	if err != nil {
		l.Error("Failed to refresh rules", zap.Error(err))
		return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}
	l.Info("Rules refreshed", zap.String("source", list.Source), zap.Int("count", list.Count))
	return c.JSON(list)
}

// HandleImport imports an .xlsx workbook.
// @Summary Import Rules
// @Description Imports rules from an .xlsx workbook (columns skuequipo, descripcion, skufuente, skucontrol) into the overrides table and the storage snapshot.
// @Tags rules
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Rules workbook"
// @Success 200 {object} ImportResult
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /rules/import [post]
func (h *Handler) HandleImport(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	fh, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "multipart field 'file' is required"})
	}
	f, err := fh.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	defer f.Close()

	result, err := h.service.Import(c.Context(), f)
	if err != nil {
		l.Error("Rule import failed", zap.String("file", fh.Filename), zap.Error(err))
		return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(result)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, validation.ErrMalformedRules):
		return fiber.StatusBadRequest
	case errors.Is(err, ErrNoImportTarget):
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusBadGateway
	}
}
