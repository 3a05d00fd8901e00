package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CompanySettingsRequest cuerpo de PUT /api/settings/company.
type CompanySettingsRequest struct {
	Name     string `json:"name" validate:"required,max=255"`
	Address  string `json:"address" validate:"omitempty,max=500"`
	TaxID    string `json:"tax_id" validate:"omitempty,max=50"`
	Currency string `json:"currency" validate:"omitempty,len=3"`
	Timezone string `json:"timezone" validate:"omitempty,max=50"`
	Website  string `json:"website" validate:"omitempty,url"`
	Phone    string `json:"phone" validate:"omitempty,max=20"`
	Email    string `json:"email" validate:"omitempty,email"`
}

// CompanySettingsResponse configuración de empresa.
type CompanySettingsResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	TaxID     string    `json:"tax_id"`
	Currency  string    `json:"currency"`
	Timezone  string    `json:"timezone"`
	Website   string    `json:"website"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PaymentSettingsRequest cuerpo de PUT /api/settings/payment.
type PaymentSettingsRequest struct {
	PaymentMethods    []string        `json:"payment_methods" validate:"omitempty,dive,required,max=50"`
	LateFeePercentage decimal.Decimal `json:"late_fee_percentage"`
	GracePeriodDays   *int            `json:"grace_period_days" validate:"omitempty,gte=0,lte=365"`
	AutoReminderDays  *int            `json:"auto_reminder_days" validate:"omitempty,gte=0,lte=365"`
}

// PaymentSettingsResponse política de pagos.
type PaymentSettingsResponse struct {
	ID                string          `json:"id"`
	PaymentMethods    []string        `json:"payment_methods"`
	LateFeePercentage decimal.Decimal `json:"late_fee_percentage"`
	GracePeriodDays   int             `json:"grace_period_days"`
	AutoReminderDays  int             `json:"auto_reminder_days"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// AuditLogResponse entrada del log de auditoría.
type AuditLogResponse struct {
	ID        string         `json:"id"`
	Action    string         `json:"action"`
	Details   map[string]any `json:"details"`
	IPAddress string         `json:"ip_address"`
	UserAgent string         `json:"user_agent"`
	Timestamp time.Time      `json:"timestamp"`
}

// AuditListResponse página del log de auditoría.
type AuditListResponse struct {
	Items []AuditLogResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// RequestMeta datos del request que se guardan en la auditoría.
type RequestMeta struct {
	IPAddress string
	UserAgent string
}
