package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de pago conocidos. El CSV puede traer otros; solo Overdue tiene semántica en cobranza.
const (
	PaymentStatusOverdue = "Overdue"
	PaymentStatusPaid    = "Paid"
	PaymentStatusPartial = "Partial"
	PaymentStatusPending = "Pending"
)

// Invoice representa una factura de cartera (invoices.csv).
// Se asume TotalAmount = PaidAmount + BalanceAmount, pero no se valida: los montos
// mal formados se cargan como cero.
type Invoice struct {
	ID            string
	CustomerID    string
	DueDate       *time.Time // nil = fecha ausente o ilegible
	InvoiceDate   *time.Time
	TotalAmount   decimal.Decimal
	PaidAmount    decimal.Decimal
	BalanceAmount decimal.Decimal
	PaymentStatus string
}

// IsOverdue indica si la factura está en estado Overdue.
func (i Invoice) IsOverdue() bool {
	return i.PaymentStatus == PaymentStatusOverdue
}
