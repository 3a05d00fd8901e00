package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Cartera-api/internal/domain"
	"github.com/jhoicas/Cartera-api/internal/domain/entity"
	"github.com/jhoicas/Cartera-api/internal/domain/repository"
)

var (
	_ repository.SettingsRepository = (*SettingsRepo)(nil)
	_ repository.AuditRepository    = (*AuditRepo)(nil)
)

// SettingsRepo configuración de empresa y pagos sobre PostgreSQL.
type SettingsRepo struct {
	db dbtx
}

// NewSettingsRepository construye el repositorio sobre el pool o una transacción.
func NewSettingsRepository(db dbtx) *SettingsRepo {
	return &SettingsRepo{db: db}
}

// GetCompany configuración de empresa del usuario; (nil, nil) si no existe.
func (r *SettingsRepo) GetCompany(ctx context.Context, userID string) (*entity.CompanySettings, error) {
	query := `
		SELECT id, user_id, name, address, tax_id, currency, timezone, website, phone, email, created_at, updated_at
		FROM company_settings WHERE user_id = $1`
	var s entity.CompanySettings
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&s.ID, &s.UserID, &s.Name, &s.Address, &s.TaxID, &s.Currency, &s.Timezone,
		&s.Website, &s.Phone, &s.Email, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company settings: %w", err)
	}
	return &s, nil
}

// UpsertCompany crea o reemplaza la configuración de empresa (una por usuario).
func (r *SettingsRepo) UpsertCompany(ctx context.Context, s *entity.CompanySettings) error {
	query := `
		INSERT INTO company_settings (id, user_id, name, address, tax_id, currency, timezone, website, phone, email, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (user_id) DO UPDATE SET
			name = EXCLUDED.name, address = EXCLUDED.address, tax_id = EXCLUDED.tax_id,
			currency = EXCLUDED.currency, timezone = EXCLUDED.timezone, website = EXCLUDED.website,
			phone = EXCLUDED.phone, email = EXCLUDED.email, updated_at = EXCLUDED.updated_at
		RETURNING id, created_at`
	err := r.db.QueryRow(ctx, query,
		s.ID, s.UserID, s.Name, s.Address, s.TaxID, s.Currency, s.Timezone,
		s.Website, s.Phone, s.Email, s.CreatedAt, s.UpdatedAt,
	).Scan(&s.ID, &s.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("upsert company settings: %w", err)
	}
	return nil
}

// GetPayment política de pagos de la empresa; (nil, nil) si no existe.
func (r *SettingsRepo) GetPayment(ctx context.Context, companyID string) (*entity.PaymentSettings, error) {
	query := `
		SELECT id, company_id, payment_methods, late_fee_percentage, grace_period_days, auto_reminder_days, created_at, updated_at
		FROM payment_settings WHERE company_id = $1`
	var s entity.PaymentSettings
	err := r.db.QueryRow(ctx, query, companyID).Scan(
		&s.ID, &s.CompanyID, &s.PaymentMethods, &s.LateFeePercentage,
		&s.GracePeriodDays, &s.AutoReminderDays, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get payment settings: %w", err)
	}
	return &s, nil
}

// UpsertPayment crea o reemplaza la política de pagos. late_fee_percentage es NUMERIC
// y viaja como decimal.Decimal gracias al codec registrado en el pool.
func (r *SettingsRepo) UpsertPayment(ctx context.Context, s *entity.PaymentSettings) error {
	query := `
		INSERT INTO payment_settings (id, company_id, payment_methods, late_fee_percentage, grace_period_days, auto_reminder_days, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (company_id) DO UPDATE SET
			payment_methods = EXCLUDED.payment_methods, late_fee_percentage = EXCLUDED.late_fee_percentage,
			grace_period_days = EXCLUDED.grace_period_days, auto_reminder_days = EXCLUDED.auto_reminder_days,
			updated_at = EXCLUDED.updated_at
		RETURNING id, created_at`
	methods := s.PaymentMethods
	if methods == nil {
		methods = []string{}
	}
	err := r.db.QueryRow(ctx, query,
		s.ID, s.CompanyID, methods, s.LateFeePercentage,
		s.GracePeriodDays, s.AutoReminderDays, s.CreatedAt, s.UpdatedAt,
	).Scan(&s.ID, &s.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: empresa inexistente", domain.ErrConflict)
		}
		return fmt.Errorf("upsert payment settings: %w", err)
	}
	return nil
}

// AuditRepo log de auditoría sobre PostgreSQL.
type AuditRepo struct {
	db dbtx
}

// NewAuditRepository construye el repositorio sobre el pool o una transacción.
func NewAuditRepository(db dbtx) *AuditRepo {
	return &AuditRepo{db: db}
}

// Append inserta una entrada.
func (r *AuditRepo) Append(ctx context.Context, e *entity.AuditLog) error {
	details, err := json.Marshal(e.Details)
	if err != nil {
		return fmt.Errorf("audit details: %w", err)
	}
	query := `
		INSERT INTO audit_logs (id, user_id, action, details, ip_address, user_agent, timestamp)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	if _, err := r.db.Exec(ctx, query, e.ID, e.UserID, e.Action, details, e.IPAddress, e.UserAgent, e.Timestamp); err != nil {
		return fmt.Errorf("insert audit log: %w", err)
	}
	return nil
}

// ListByUser entradas del usuario, más recientes primero.
func (r *AuditRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.AuditLog, error) {
	query := `
		SELECT id, user_id, action, details, ip_address, user_agent, timestamp
		FROM audit_logs WHERE user_id = $1 ORDER BY timestamp DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list audit logs: %w", err)
	}
	defer rows.Close()

	var list []*entity.AuditLog
	for rows.Next() {
		var e entity.AuditLog
		var raw []byte
		if err := rows.Scan(&e.ID, &e.UserID, &e.Action, &raw, &e.IPAddress, &e.UserAgent, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("scan audit log: %w", err)
		}
		if len(raw) > 0 {
			if err := json.Unmarshal(raw, &e.Details); err != nil {
				return nil, fmt.Errorf("decode audit details: %w", err)
			}
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
