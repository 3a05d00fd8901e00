package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CompanySettings datos de la empresa que cobra (uno por usuario propietario).
type CompanySettings struct {
	ID        string
	UserID    string
	Name      string
	Address   string
	TaxID     string
	Currency  string // ISO 4217, por defecto INR
	Timezone  string // IANA, por defecto Asia/Kolkata
	Website   string
	Phone     string
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PaymentSettings política de pagos y recordatorios de la empresa.
type PaymentSettings struct {
	ID                string
	CompanyID         string
	PaymentMethods    []string
	LateFeePercentage decimal.Decimal
	GracePeriodDays   int
	AutoReminderDays  int
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// AuditLog registro de cambios de configuración.
type AuditLog struct {
	ID        string
	UserID    string
	Action    string // ej: "company_settings.update"
	Details   map[string]any
	IPAddress string
	UserAgent string
	Timestamp time.Time
}
