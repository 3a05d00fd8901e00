package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// Los montos decimal.Decimal viajan en JSON como cadenas ("1200.5"), sin pérdida de precisión.

// DelinquentInvoiceDTO fila de factura vencida con su tramo de antigüedad.
type DelinquentInvoiceDTO struct {
	InvoiceID    string          `json:"invoice_id"`
	DueDate      string          `json:"due_date"` // YYYY-MM-DD o "N/A"
	TotalAmount  decimal.Decimal `json:"total_amount"`
	CustomerName string          `json:"customer_name"` // vacío si el cliente no está en el maestro
	CustomerID   string          `json:"customer_id"`
	AgingBucket  string          `json:"aging_bucket"`
}

// ARDashboardDTO respuesta de GET /api/ar/dashboard.
// AgingSummaryAmount siempre trae los seis tramos, aunque valgan cero.
type ARDashboardDTO struct {
	OverdueInvoices    []DelinquentInvoiceDTO     `json:"overdue_invoices"`
	AgingSummaryAmount map[string]decimal.Decimal `json:"aging_summary_amount"`
	TotalOverdueAmount decimal.Decimal            `json:"total_overdue_amount"`
	CalculatedDSO      int                        `json:"calculated_dso"`
}

// BucketStatDTO suma y conteo de un tramo.
type BucketStatDTO struct {
	Sum   decimal.Decimal `json:"sum"`
	Count int             `json:"count"`
}

// ReportSummaryDTO respuesta de GET /api/reports/summary.
// Sin facturas vencidas AgingSummary es un objeto vacío y CalculatedDSO vale 0.
type ReportSummaryDTO struct {
	AgingSummary       map[string]BucketStatDTO `json:"aging_summary"`
	TotalOverdueAmount decimal.Decimal          `json:"total_overdue_amount"`
	TotalOverdueCount  int                      `json:"total_overdue_count"`
	CalculatedDSO      int                      `json:"calculated_dso"`
}

// LogActivityRequest cuerpo de POST /api/collections/log_activity.
type LogActivityRequest struct {
	ActivityType   string `json:"activityType" validate:"omitempty,max=100"` // por defecto "Manual Call"
	CustomerID     string `json:"customerId" validate:"required,max=100"`
	Notes          string `json:"notes" validate:"required"`
	Disposition    string `json:"disposition" validate:"omitempty,max=200"`
	RelatedInvoice string `json:"relatedInvoice" validate:"omitempty,max=100"`
}

// LogActivityResponse respuesta 201 de log_activity.
type LogActivityResponse struct {
	Message       string `json:"message"`
	InteractionID string `json:"interaction_id,omitempty"`
}

// BlockedActivityResponse respuesta 403 cuando la llamada se registró pero fue bloqueada.
type BlockedActivityResponse struct {
	Error  string `json:"error"`
	Logged bool   `json:"logged"`
	Status string `json:"status"`
}

// InteractionDTO registro del log de comunicaciones.
type InteractionDTO struct {
	InteractionID   string     `json:"interaction_id"`
	CustomerID      string     `json:"customer_id"`
	CustomerName    string     `json:"customer_name"`
	InteractionDate *time.Time `json:"interaction_date"`
	InteractionType string     `json:"interaction_type"`
	Purpose         string     `json:"purpose"`
	Summary         string     `json:"summary"`
	InitiatedBy     string     `json:"initiated_by"`
	HandledBy       string     `json:"handled_by"`
	RepID           string     `json:"rep_id"`
	RelatedInvoice  string     `json:"related_invoice"`
	Outcome         string     `json:"outcome"`
	Notes           string     `json:"notes"`
}

// RemindersResponse respuesta de POST /api/system/run_reminders.
type RemindersResponse struct {
	Message   string `json:"message"`
	SentCount int    `json:"sent_count"`
}

// ReloadResponse tamaños de las tablas tras una recarga manual.
type ReloadResponse struct {
	Customers    int `json:"customers"`
	Invoices     int `json:"invoices"`
	Interactions int `json:"interactions"`
}

// DatasetPageDTO página de un dataset CSV de solo lectura.
type DatasetPageDTO struct {
	Dataset string              `json:"dataset"`
	Rows    []map[string]string `json:"rows"`
	Page    PageResponse        `json:"page"`
}
