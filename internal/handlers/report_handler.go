package handlers

import (
	"log"

	"plantlog/internal/middleware"
	"plantlog/internal/repositories"
	"plantlog/internal/services"

	"github.com/gofiber/fiber/v2"
)

// ReportHandler handles HTTP requests for summary metrics, chart counts and
// CSV export.
type ReportHandler struct {
	service *services.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(service *services.ReportService) *ReportHandler {
	return &ReportHandler{
		service: service,
	}
}

// RegisterRoutes registers the report routes with the Fiber app.
func (h *ReportHandler) RegisterRoutes(router fiber.Router) {
	reportRoutes := router.Group("/reports")
	reportRoutes.Get("/summary", h.HandleSummary)
	reportRoutes.Get("/analytics", h.HandleAnalytics)
	reportRoutes.Get("/export", h.HandleExport)
}

// HandleSummary returns the dashboard metrics for the session user.
func (h *ReportHandler) HandleSummary(c *fiber.Ctx) error {
	session := middleware.SessionFromCtx(c)

	summary, err := h.service.Summary(session)
	if err != nil {
		log.Printf("Error computing summary: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not compute summary",
			"error":   err.Error(),
		})
	}
	return c.JSON(summary)
}

// HandleAnalytics returns the per-season and per-status counts used by the
// charts.
func (h *ReportHandler) HandleAnalytics(c *fiber.Ctx) error {
	session := middleware.SessionFromCtx(c)

	seasonCounts, err := h.service.SeasonCounts(session)
	if err != nil {
		log.Printf("Error computing season counts: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not compute analytics",
			"error":   err.Error(),
		})
	}

	statusCounts, err := h.service.StatusCounts(session)
	if err != nil {
		log.Printf("Error computing status counts: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not compute analytics",
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"seasons":  seasonCounts,
		"statuses": statusCounts,
	})
}

// HandleExport streams the session user's logs as a CSV download, honoring
// the same search and sort query parameters as the list endpoint.
func (h *ReportHandler) HandleExport(c *fiber.Ctx) error {
	session := middleware.SessionFromCtx(c)

	data, err := h.service.ExportCSV(session,
		c.Query("search"),
		c.Query("sort", repositories.SortByName),
		c.Query("dir", repositories.SortDesc),
	)
	if err != nil {
		log.Printf("Error exporting CSV: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not export CSV",
			"error":   err.Error(),
		})
	}

	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="plantlog_export.csv"`)
	return c.Send(data)
}
