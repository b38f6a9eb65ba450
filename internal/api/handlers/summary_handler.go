package handlers

import (
	"bytes"

	"finance-tracker/internal/dto"
	"finance-tracker/internal/models"
	"finance-tracker/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type SummaryHandler struct {
	summaryService *service.SummaryService
	reportService  *service.ReportService
	backend        string
	logger         *zap.Logger
}

func NewSummaryHandler(
	summaryService *service.SummaryService,
	reportService *service.ReportService,
	backend string,
	logger *zap.Logger,
) *SummaryHandler {
	return &SummaryHandler{
		summaryService: summaryService,
		reportService:  reportService,
		backend:        backend,
		logger:         logger,
	}
}

// GetSummary godoc
// @Summary Spending summary
// @Description Total spend, monthly and category totals, and budget status
// @Tags summary
// @Produce json
// @Param month query string false "Budget month label, e.g. April'25"
// @Success 200 {object} dto.SummaryResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/summary [get]
func (h *SummaryHandler) GetSummary(c *fiber.Ctx) error {
	month := c.Query("month")
	summary, err := h.summaryService.Summarize(c.Context(), month)
	if err != nil {
		return respondError(c, h.logger, err, "summary", "Failed to build summary")
	}
	return c.JSON(dto.NewSummaryResponse(month, summary))
}

// GetReport godoc
// @Summary Spending summary as PDF
// @Tags summary
// @Produce application/pdf
// @Param month query string false "Budget month label, e.g. April'25"
// @Success 200 {file} file
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/summary/report.pdf [get]
func (h *SummaryHandler) GetReport(c *fiber.Ctx) error {
	var buf bytes.Buffer
	if err := h.reportService.WriteSummaryPDF(c.Context(), &buf, c.Query("month")); err != nil {
		return respondError(c, h.logger, err, "summary", "Failed to render report")
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="finance-summary.pdf"`)
	return c.Send(buf.Bytes())
}

// ListCategories godoc
// @Summary Allowed categories
// @Tags meta
// @Produce json
// @Success 200 {object} dto.CategoriesResponse
// @Router /api/categories [get]
func (h *SummaryHandler) ListCategories(c *fiber.Ctx) error {
	categories := models.Categories()
	names := make([]string, 0, len(categories))
	for _, cat := range categories {
		names = append(names, cat.String())
	}
	return c.JSON(dto.CategoriesResponse{Categories: names})
}

// Health godoc
// @Summary Liveness probe
// @Tags meta
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Router /health [get]
func (h *SummaryHandler) Health(c *fiber.Ctx) error {
	return c.JSON(dto.HealthResponse{Status: "ok", Backend: h.backend})
}
