package service

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	"finance-tracker/internal/analytics"

	"github.com/phpdave11/gofpdf"
	"go.uber.org/zap"
)

const reportMaxCategoryRows = 100

type ReportService struct {
	summaries *SummaryService
	logger    *zap.Logger
	now       func() time.Time
}

func NewReportService(summaries *SummaryService, logger *zap.Logger) *ReportService {
	return &ReportService{
		summaries: summaries,
		logger:    logger,
		now:       time.Now,
	}
}

// WriteSummaryPDF renders the spending summary for month (all months when
// empty) as a one-document PDF.
func (s *ReportService) WriteSummaryPDF(ctx context.Context, w io.Writer, month string) error {
	summary, err := s.summaries.Summarize(ctx, month)
	if err != nil {
		return err
	}

	pdf := s.render(cleanText(month), summary)
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to write pdf: %w", err)
	}

	s.logger.Info("Summary report rendered",
		zap.String("month", month),
		zap.Int("transactions", summary.Count),
	)
	return nil
}

// The core PDF fonts only cover cp1252, so amounts are printed without a
// currency symbol.
func (s *ReportService) render(month string, summary analytics.Summary) *gofpdf.Fpdf {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("Finance Tracker Summary", false)
	pdf.SetMargins(14, 14, 14)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "Finance Tracker Summary")
	pdf.Ln(10)

	period := "All months"
	if month != "" {
		period = month
	}
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(80, 80, 80)
	pdf.Cell(0, 6, tr("Period: "+period))
	pdf.Ln(5)
	pdf.Cell(0, 6, "Generated: "+s.now().UTC().Format("2006-01-02 15:04 MST"))
	pdf.Ln(10)

	pdf.SetTextColor(20, 20, 20)
	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 8, fmt.Sprintf("Total spend: %s (%d transactions)", summary.Total.StringFixed(2), summary.Count))
	pdf.Ln(12)

	pdf.SetDrawColor(200, 200, 200)
	pdf.SetFillColor(245, 245, 245)

	section(pdf, "Spending by month")
	tableHeader(pdf, []float64{120, 60}, []string{"MONTH", "TOTAL"})
	pdf.SetFont("Helvetica", "", 10)
	for _, b := range summary.ByMonth.Buckets {
		pdf.CellFormat(120, 8, b.Key, "1", 0, "L", false, 0, "")
		pdf.CellFormat(60, 8, b.Total.StringFixed(2), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(6)

	section(pdf, "Spending by category")
	tableHeader(pdf, []float64{12, 108, 60}, []string{"", "CATEGORY", "TOTAL"})
	pdf.SetFont("Helvetica", "", 10)
	for i, c := range summary.ByCategory {
		if i >= reportMaxCategoryRows {
			pdf.CellFormat(0, 8, "truncated", "1", 1, "C", false, 0, "")
			break
		}
		r, g, b := hexColor(c.Color)
		pdf.SetFillColor(r, g, b)
		pdf.CellFormat(12, 8, "", "1", 0, "C", true, 0, "")
		pdf.CellFormat(108, 8, tr(c.Category), "1", 0, "L", false, 0, "")
		pdf.CellFormat(60, 8, c.Total.StringFixed(2), "1", 1, "R", false, 0, "")
	}
	pdf.SetFillColor(245, 245, 245)
	pdf.Ln(6)

	section(pdf, "Budget vs actual")
	if len(summary.Budgets) == 0 {
		pdf.SetFont("Helvetica", "I", 10)
		pdf.Cell(0, 8, "No budgets set for this period.")
		pdf.Ln(8)
		return pdf
	}
	widths := []float64{36, 30, 30, 34, 52}
	tableHeader(pdf, widths, []string{"CATEGORY", "BUDGET", "SPENT", "STATUS", "NOTE"})
	pdf.SetFont("Helvetica", "", 10)
	for _, b := range summary.Budgets {
		if pdf.GetY() > 270 {
			pdf.AddPage()
			tableHeader(pdf, widths, []string{"CATEGORY", "BUDGET", "SPENT", "STATUS", "NOTE"})
			pdf.SetFont("Helvetica", "", 10)
		}
		note := analytics.Classify(b.Spent, b.Budget).Message("")
		pdf.CellFormat(widths[0], 8, tr(b.Category), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 8, b.Budget.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[2], 8, b.Spent.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[3], 8, string(b.Status), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[4], 8, note, "1", 1, "L", false, 0, "")
	}
	return pdf
}

func section(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, title)
	pdf.Ln(9)
}

func tableHeader(pdf *gofpdf.Fpdf, widths []float64, labels []string) {
	pdf.SetFont("Helvetica", "B", 10)
	for i, label := range labels {
		ln := 0
		if i == len(labels)-1 {
			ln = 1
		}
		pdf.CellFormat(widths[i], 8, label, "1", ln, "C", true, 0, "")
	}
}

// hexColor parses "#RRGGBB"; anything else renders grey.
func hexColor(hex string) (int, int, int) {
	if len(hex) != 7 || hex[0] != '#' {
		return 200, 200, 200
	}
	v, err := strconv.ParseUint(hex[1:], 16, 32)
	if err != nil {
		return 200, 200, 200
	}
	return int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff)
}
