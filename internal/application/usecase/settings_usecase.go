package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Cartera-api/internal/application/collections"
	"github.com/jhoicas/Cartera-api/internal/application/dto"
	"github.com/jhoicas/Cartera-api/internal/domain"
	"github.com/jhoicas/Cartera-api/internal/domain/entity"
	"github.com/jhoicas/Cartera-api/internal/domain/repository"
	"github.com/jhoicas/Cartera-api/pkg/logger"
)

// Valores por defecto de la configuración de empresa y pagos.
const (
	DefaultCurrency         = "INR"
	DefaultTimezone         = "Asia/Kolkata"
	DefaultGracePeriodDays  = 7
	DefaultAutoReminderDays = 3
)

// Acciones registradas en la auditoría.
const (
	AuditCompanyUpdate = "company_settings.update"
	AuditPaymentUpdate = "payment_settings.update"
)

var maxLateFee = decimal.NewFromInt(100)

var _ collections.CompanyProfileSource = (*SettingsUseCase)(nil)

// SettingsTxRunner ejecuta la escritura de configuración y su auditoría en una misma transacción.
type SettingsTxRunner interface {
	RunSettings(ctx context.Context, fn func(settings repository.SettingsRepository, audit repository.AuditRepository) error) error
}

// SettingsUseCase configuración de empresa y pagos por usuario, con auditoría.
type SettingsUseCase struct {
	settings repository.SettingsRepository
	audit    repository.AuditRepository
	tx       SettingsTxRunner
	log      *logger.Logger
	now      func() time.Time

	fallbackName     string
	fallbackCurrency string
}

// NewSettingsUseCase construye el caso de uso. Las lecturas van directo a los repos y las
// escrituras por tx. fallbackName/fallbackCurrency se usan en los reportes cuando el
// usuario aún no configuró su empresa.
func NewSettingsUseCase(settings repository.SettingsRepository, audit repository.AuditRepository, tx SettingsTxRunner, log *logger.Logger, fallbackName, fallbackCurrency string) *SettingsUseCase {
	if log == nil {
		log = logger.Nop()
	}
	if fallbackCurrency == "" {
		fallbackCurrency = DefaultCurrency
	}
	return &SettingsUseCase{
		settings:         settings,
		audit:            audit,
		tx:               tx,
		log:              log.Named("settings"),
		now:              time.Now,
		fallbackName:     fallbackName,
		fallbackCurrency: fallbackCurrency,
	}
}

// GetCompany devuelve la configuración de empresa del usuario. (nil, nil) si no existe.
func (uc *SettingsUseCase) GetCompany(ctx context.Context, userID string) (*dto.CompanySettingsResponse, error) {
	s, err := uc.settings.GetCompany(ctx, userID)
	if err != nil || s == nil {
		return nil, err
	}
	return toCompanyResponse(s), nil
}

// UpdateCompany crea o reemplaza la configuración de empresa y registra la auditoría.
func (uc *SettingsUseCase) UpdateCompany(ctx context.Context, userID string, in dto.CompanySettingsRequest, meta dto.RequestMeta) (*dto.CompanySettingsResponse, error) {
	currency := strings.ToUpper(strings.TrimSpace(in.Currency))
	if currency == "" {
		currency = DefaultCurrency
	}
	tz := strings.TrimSpace(in.Timezone)
	if tz == "" {
		tz = DefaultTimezone
	}
	if _, err := time.LoadLocation(tz); err != nil {
		return nil, fmt.Errorf("%w: zona horaria %q", domain.ErrInvalidInput, tz)
	}

	now := uc.now()
	s := &entity.CompanySettings{
		ID:        uuid.New().String(),
		UserID:    userID,
		Name:      in.Name,
		Address:   in.Address,
		TaxID:     in.TaxID,
		Currency:  currency,
		Timezone:  tz,
		Website:   in.Website,
		Phone:     in.Phone,
		Email:     in.Email,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err := uc.tx.RunSettings(ctx, func(settings repository.SettingsRepository, audit repository.AuditRepository) error {
		if err := settings.UpsertCompany(ctx, s); err != nil {
			return err
		}
		return audit.Append(ctx, uc.auditEntry(userID, AuditCompanyUpdate, map[string]any{
			"name":     s.Name,
			"currency": s.Currency,
			"timezone": s.Timezone,
			"tax_id":   s.TaxID,
		}, meta))
	})
	if err != nil {
		return nil, err
	}
	return toCompanyResponse(s), nil
}

// GetPayment política de pagos de la empresa del usuario. (nil, nil) si no hay empresa o política.
func (uc *SettingsUseCase) GetPayment(ctx context.Context, userID string) (*dto.PaymentSettingsResponse, error) {
	company, err := uc.settings.GetCompany(ctx, userID)
	if err != nil || company == nil {
		return nil, err
	}
	p, err := uc.settings.GetPayment(ctx, company.ID)
	if err != nil || p == nil {
		return nil, err
	}
	return toPaymentResponse(p), nil
}

// UpdatePayment crea o reemplaza la política de pagos. Requiere configuración de empresa previa
// (ErrConflict si no existe).
func (uc *SettingsUseCase) UpdatePayment(ctx context.Context, userID string, in dto.PaymentSettingsRequest, meta dto.RequestMeta) (*dto.PaymentSettingsResponse, error) {
	if in.LateFeePercentage.IsNegative() || in.LateFeePercentage.GreaterThan(maxLateFee) {
		return nil, fmt.Errorf("%w: late_fee_percentage fuera de rango", domain.ErrInvalidInput)
	}

	grace := DefaultGracePeriodDays
	if in.GracePeriodDays != nil {
		grace = *in.GracePeriodDays
	}
	auto := DefaultAutoReminderDays
	if in.AutoReminderDays != nil {
		auto = *in.AutoReminderDays
	}
	methods := in.PaymentMethods
	if methods == nil {
		methods = []string{}
	}

	now := uc.now()
	p := &entity.PaymentSettings{
		ID:                uuid.New().String(),
		PaymentMethods:    methods,
		LateFeePercentage: in.LateFeePercentage,
		GracePeriodDays:   grace,
		AutoReminderDays:  auto,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	err := uc.tx.RunSettings(ctx, func(settings repository.SettingsRepository, audit repository.AuditRepository) error {
		company, err := settings.GetCompany(ctx, userID)
		if err != nil {
			return err
		}
		if company == nil {
			return fmt.Errorf("%w: primero configure la empresa", domain.ErrConflict)
		}
		p.CompanyID = company.ID
		if err := settings.UpsertPayment(ctx, p); err != nil {
			return err
		}
		return audit.Append(ctx, uc.auditEntry(userID, AuditPaymentUpdate, map[string]any{
			"payment_methods":     p.PaymentMethods,
			"late_fee_percentage": p.LateFeePercentage.String(),
			"grace_period_days":   p.GracePeriodDays,
			"auto_reminder_days":  p.AutoReminderDays,
		}, meta))
	})
	if err != nil {
		return nil, err
	}
	return toPaymentResponse(p), nil
}

// ListAudit entradas de auditoría del usuario, más recientes primero.
func (uc *SettingsUseCase) ListAudit(ctx context.Context, userID string, limit, offset int) (*dto.AuditListResponse, error) {
	list, err := uc.audit.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.AuditLogResponse, 0, len(list))
	for _, e := range list {
		items = append(items, dto.AuditLogResponse{
			ID:        e.ID,
			Action:    e.Action,
			Details:   e.Details,
			IPAddress: e.IPAddress,
			UserAgent: e.UserAgent,
			Timestamp: e.Timestamp,
		})
	}
	return &dto.AuditListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// CompanyProfile nombre y moneda para los reportes; usa los valores de respaldo si no hay configuración.
func (uc *SettingsUseCase) CompanyProfile(ctx context.Context, userID string) (string, string) {
	s, err := uc.settings.GetCompany(ctx, userID)
	if err != nil {
		uc.log.Warn().Err(err).Str("user_id", userID).Msg("no se pudo leer la empresa; se usan valores por defecto")
	}
	if s == nil {
		return uc.fallbackName, uc.fallbackCurrency
	}
	return s.Name, s.Currency
}

func (uc *SettingsUseCase) auditEntry(userID, action string, details map[string]any, meta dto.RequestMeta) *entity.AuditLog {
	return &entity.AuditLog{
		ID:        uuid.New().String(),
		UserID:    userID,
		Action:    action,
		Details:   details,
		IPAddress: meta.IPAddress,
		UserAgent: meta.UserAgent,
		Timestamp: uc.now(),
	}
}

func toCompanyResponse(s *entity.CompanySettings) *dto.CompanySettingsResponse {
	return &dto.CompanySettingsResponse{
		ID:        s.ID,
		Name:      s.Name,
		Address:   s.Address,
		TaxID:     s.TaxID,
		Currency:  s.Currency,
		Timezone:  s.Timezone,
		Website:   s.Website,
		Phone:     s.Phone,
		Email:     s.Email,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func toPaymentResponse(p *entity.PaymentSettings) *dto.PaymentSettingsResponse {
	return &dto.PaymentSettingsResponse{
		ID:                p.ID,
		PaymentMethods:    p.PaymentMethods,
		LateFeePercentage: p.LateFeePercentage,
		GracePeriodDays:   p.GracePeriodDays,
		AutoReminderDays:  p.AutoReminderDays,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}
