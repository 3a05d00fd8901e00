package repository

import (
	"context"

	"github.com/jhoicas/Cartera-api/internal/domain/entity"
)

// SettingsRepository persistencia de la configuración de empresa y pagos.
// Los Get devuelven (nil, nil) si el usuario aún no tiene configuración.
type SettingsRepository interface {
	GetCompany(ctx context.Context, userID string) (*entity.CompanySettings, error)
	UpsertCompany(ctx context.Context, s *entity.CompanySettings) error
	GetPayment(ctx context.Context, companyID string) (*entity.PaymentSettings, error)
	UpsertPayment(ctx context.Context, s *entity.PaymentSettings) error
}

// AuditRepository log de auditoría de cambios de configuración (solo inserción).
type AuditRepository interface {
	Append(ctx context.Context, entry *entity.AuditLog) error
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.AuditLog, error)
}
