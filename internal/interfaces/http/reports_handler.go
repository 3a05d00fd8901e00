package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Cartera-api/internal/application/collections"
)

// ReportsHandler reportes de gestión de cartera (rol manager).
type ReportsHandler struct {
	dashboard *collections.DashboardUseCase
	pdf       *collections.ReportPDFUseCase
}

// NewReportsHandler construye el handler.
func NewReportsHandler(dashboard *collections.DashboardUseCase, pdf *collections.ReportPDFUseCase) *ReportsHandler {
	return &ReportsHandler{dashboard: dashboard, pdf: pdf}
}

// Summary devuelve suma y conteo por tramo de antigüedad.
// GET /api/reports/summary
//
// Sin facturas vencidas: aging_summary vacío y calculated_dso 0.
func (h *ReportsHandler) Summary(c *fiber.Ctx) error {
	out, err := h.dashboard.GetReportSummary(c.UserContext())
	if err != nil {
		return readError(c, err)
	}
	return c.JSON(out)
}

// AgingPDF descarga el reporte de antigüedad en PDF.
// GET /api/reports/aging.pdf
func (h *ReportsHandler) AgingPDF(c *fiber.Ctx) error {
	doc, filename, err := h.pdf.DownloadAgingReport(c.UserContext(), GetUserID(c))
	if err != nil {
		return readError(c, err)
	}
	c.Attachment(filename)
	c.Set(fiber.HeaderContentType, "application/pdf")
	return c.Send(doc)
}
