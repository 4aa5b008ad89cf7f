package validation

import (
	"errors"

	"equipment-validator/core/logger"
	"equipment-validator/core/ofsc"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for validations.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the validation routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/validation")
	group.Post("/", h.HandleValidate)
	group.Get("/activities/:aid", h.HandleValidateActivity)
}

// HandleValidate validates inventories sent in the body.
// @Summary Validate Inventories
// @Description Groups installed equipment with compatible power sources and remote controls. Customer equipment may consume leftover accessories. Rules may be sent inline.
// @Tags validation
// @Accept json
// @Produce json
// @Param request body Request true "Inventories"
// @Success 200 {object} Report
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 502 {object} map[string]string "Rule source unavailable"
// @Router /validation [post]
func (h *Handler) HandleValidate(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	report, err := h.service.Validate(c.Context(), req)
	if err != nil {
		l.Error("Validation failed", zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(report)
}

// HandleValidateActivity validates the inventories of an activity.
// @Summary Validate Activity
// @Description Fetches the installed and customer inventories of the activity and validates them against the configured rules.
// @Tags validation
// @Produce json
// @Param aid path string true "Activity ID"
// @Success 200 {object} Report
// @Failure 404 {object} map[string]string "Activity not found"
// @Failure 502 {object} map[string]string "Upstream failure"
// @Router /validation/activities/{aid} [get]
func (h *Handler) HandleValidateActivity(c *fiber.Ctx) error {
	aid := c.Params("aid")
	l := logger.WithRayID(h.service.logger, c).With(zap.String("activity_id", aid))

	report, err := h.service.ValidateActivity(c.Context(), aid)
	if err != nil {
		l.Error("Activity validation failed", zap.Error(err))
		var se *ofsc.StatusError
		switch {
		case errors.Is(err, ErrEmptyActivity):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		case errors.As(err, &se) && se.StatusCode == fiber.StatusNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		default:
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
		}
	}

	l.Info("Activity validated", zap.Bool("valid", report.Valid))
	return c.JSON(report)
}
