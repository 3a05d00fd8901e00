package collections

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Cartera-api/internal/application/dto"
)

// AgingReport datos de entrada del PDF de antigüedad de cartera.
type AgingReport struct {
	CompanyName string
	Currency    string
	GeneratedAt time.Time
	Summary     *dto.ReportSummaryDTO
	Invoices    []dto.DelinquentInvoiceDTO
}

// AgingReportGenerator puerto de salida: renderiza el reporte (PDF).
type AgingReportGenerator interface {
	GenerateAgingReport(ctx context.Context, report AgingReport) ([]byte, error)
}

// CompanyProfileSource nombre y moneda de la empresa del usuario que pide el reporte.
type CompanyProfileSource interface {
	CompanyProfile(ctx context.Context, userID string) (name, currency string)
}

// ReportPDFUseCase exporta el resumen por tramos y el detalle de vencidos a PDF.
type ReportPDFUseCase struct {
	dashboard *DashboardUseCase
	profiles  CompanyProfileSource
	generator AgingReportGenerator
	clock     Clock
}

// NewReportPDFUseCase construye el caso de uso.
func NewReportPDFUseCase(dashboard *DashboardUseCase, profiles CompanyProfileSource, generator AgingReportGenerator, clock Clock) *ReportPDFUseCase {
	if clock == nil {
		clock = SystemClock
	}
	return &ReportPDFUseCase{dashboard: dashboard, profiles: profiles, generator: generator, clock: clock}
}

// DownloadAgingReport devuelve (pdfBytes, filename, err).
func (uc *ReportPDFUseCase) DownloadAgingReport(ctx context.Context, userID string) ([]byte, string, error) {
	summary, err := uc.dashboard.GetReportSummary(ctx)
	if err != nil {
		return nil, "", err
	}
	rows, err := uc.dashboard.GetDelinquentAccounts(ctx)
	if err != nil {
		return nil, "", err
	}
	name, currency := uc.profiles.CompanyProfile(ctx, userID)
	now := uc.clock.Now()

	doc, err := uc.generator.GenerateAgingReport(ctx, AgingReport{
		CompanyName: name,
		Currency:    currency,
		GeneratedAt: now,
		Summary:     summary,
		Invoices:    rows,
	})
	if err != nil {
		return nil, "", fmt.Errorf("reporte de cartera: %w", err)
	}
	return doc, fmt.Sprintf("aging-report-%s.pdf", now.Format("20060102")), nil
}
