package integrity

import (
	"errors"

	"equipment-validator/core/logger"
	"equipment-validator/core/reconcile"

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
	group.Get("/storage", h.HandleStorageCheck)
	group.Get("/schema", h.HandleSchemaCheck)
	group.Get("/rules", h.HandleRulesCheck)
	group.Get("/sources", h.HandleSourcesCheck)
}

// HandleIntegrityCheck triggers all integrity checks.
// @Summary Run All Integrity Checks
// @Description Checks the rule snapshot object, the rule table schema and the rule configuration.
// @Tags integrity
// @Produce json
// @Success 200 {object} map[string]interface{} "Combined Report"
// @Router /integrity [get]
func (h *Handler) HandleIntegrityCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Triggering all integrity checks")

	return c.JSON(h.service.RunAll(c.Context()))
}

// HandleStorageCheck checks and optionally republishes the rule snapshot.
// @Summary Check Rule Snapshot
// @Description Checks that the bucket and the rule snapshot object exist. With fix=true the current rules are published as the snapshot.
// @Tags integrity
// @Produce json
// @Param fix query boolean false "Publish the snapshot"
// @Success 200 {object} checks.StorageReport
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/storage [get]
func (h *Handler) HandleStorageCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.CheckStorage(c.Context())
	if err != nil {
		l.Error("Storage check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if report.Status != "ok" && c.Query("fix") == "true" {
		l.Info("Attempting to publish rule snapshot")
		if err := h.service.FixStorage(c.Context()); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error":   "Failed to publish rule snapshot",
				"details": err.Error(),
			})
		}
		return c.JSON(fiber.Map{"status": "fixed", "object": report.Object})
	}

	return c.JSON(report)
}

// HandleSchemaCheck checks and optionally migrates the rule table.
// @Summary Check Rule Table Schema
// @Description Compares the equipment_rules table with its model. With fix=true the table is migrated.
// @Tags integrity
// @Produce json
// @Param fix query boolean false "Migrate the table"
// @Success 200 {object} checks.SchemaReport
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/schema [get]
func (h *Handler) HandleSchemaCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.CheckSchema()
	if err != nil {
		l.Error("Schema check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if !report.Matched && c.Query("fix") == "true" {
		if err := h.service.FixSchema(); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error":   "Failed to migrate rule table",
				"details": err.Error(),
			})
		}
		return c.JSON(fiber.Map{"status": "fixed", "table": report.Table})
	}

	return c.JSON(report)
}

// HandleRulesCheck audits the rule configuration.
// @Summary Audit Rules
// @Description Reports duplicated equipment types, rules without accessories, rules mixing sentinels with types and wildcard rules.
// @Tags integrity
// @Produce json
// @Success 200 {object} checks.RulesReport
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/rules [get]
func (h *Handler) HandleRulesCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.AuditRules(c.Context())
	if err != nil {
		l.Error("Rules audit failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(report)
}

// HandleSourcesCheck reconciles the rule sources against the configured one.
// @Summary Reconcile Rule Sources
// @Description Compares the rules held by every reachable backend. With sync=true replace actions are planned, and with confirm=true they are executed.
// @Tags integrity
// @Produce json
// @Param sync query boolean false "Plan replace actions"
// @Param confirm query boolean false "Execute planned actions"
// @Success 200 {object} map[string]interface{} "Plan"
// @Failure 503 {object} map[string]string "Not enough sources"
// @Router /integrity/sources [get]
func (h *Handler) HandleSourcesCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	opts := reconcile.Options{
		DoSync:    c.Query("sync") == "true",
		Confirmed: c.Query("confirm") == "true",
	}
	plan, executed, err := h.service.ReconcileSources(c.Context(), opts)
	if errors.Is(err, ErrNoReplicas) {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil {
		l.Error("Source reconciliation failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"plan": plan, "executed": executed})
}
