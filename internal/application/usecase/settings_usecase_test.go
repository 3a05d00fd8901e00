package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Cartera-api/internal/application/dto"
	"github.com/jhoicas/Cartera-api/internal/application/usecase"
	"github.com/jhoicas/Cartera-api/internal/domain"
	"github.com/jhoicas/Cartera-api/internal/domain/entity"
	"github.com/jhoicas/Cartera-api/internal/domain/repository"
)

// ─── Mocks ──────────────────────────────────────────────────────────────────

type mockSettingsRepo struct{ mock.Mock }

func (m *mockSettingsRepo) GetCompany(ctx context.Context, userID string) (*entity.CompanySettings, error) {
	args := m.Called(ctx, userID)
	s, _ := args.Get(0).(*entity.CompanySettings)
	return s, args.Error(1)
}

func (m *mockSettingsRepo) UpsertCompany(ctx context.Context, s *entity.CompanySettings) error {
	return m.Called(ctx, s).Error(0)
}

func (m *mockSettingsRepo) GetPayment(ctx context.Context, companyID string) (*entity.PaymentSettings, error) {
	args := m.Called(ctx, companyID)
	s, _ := args.Get(0).(*entity.PaymentSettings)
	return s, args.Error(1)
}

func (m *mockSettingsRepo) UpsertPayment(ctx context.Context, s *entity.PaymentSettings) error {
	return m.Called(ctx, s).Error(0)
}

type mockAuditRepo struct{ mock.Mock }

func (m *mockAuditRepo) Append(ctx context.Context, e *entity.AuditLog) error {
	return m.Called(ctx, e).Error(0)
}

func (m *mockAuditRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.AuditLog, error) {
	args := m.Called(ctx, userID, limit, offset)
	l, _ := args.Get(0).([]*entity.AuditLog)
	return l, args.Error(1)
}

// inlineTx ejecuta el callback con los mismos mocks, sin transacción real.
type inlineTx struct {
	s *mockSettingsRepo
	a *mockAuditRepo
}

func (tx inlineTx) RunSettings(_ context.Context, fn func(repository.SettingsRepository, repository.AuditRepository) error) error {
	return fn(tx.s, tx.a)
}

func newSettings(s *mockSettingsRepo, a *mockAuditRepo) *usecase.SettingsUseCase {
	return usecase.NewSettingsUseCase(s, a, inlineTx{s: s, a: a}, nil, "Cartera", "INR")
}

var meta = dto.RequestMeta{IPAddress: "10.0.0.1", UserAgent: "test"}

// ─── Empresa ────────────────────────────────────────────────────────────────

func TestUpdateCompany_AplicaDefaultsYAudita(t *testing.T) {
	s, a := new(mockSettingsRepo), new(mockAuditRepo)
	ctx := context.Background()
	s.On("UpsertCompany", ctx, mock.MatchedBy(func(c *entity.CompanySettings) bool {
		return c.UserID == "u-1" && c.Currency == "INR" && c.Timezone == "Asia/Kolkata"
	})).Return(nil)
	a.On("Append", ctx, mock.MatchedBy(func(e *entity.AuditLog) bool {
		return e.Action == usecase.AuditCompanyUpdate && e.UserID == "u-1" && e.IPAddress == "10.0.0.1"
	})).Return(nil)

	out, err := newSettings(s, a).UpdateCompany(ctx, "u-1", dto.CompanySettingsRequest{Name: "Acme"}, meta)
	require.NoError(t, err)
	assert.Equal(t, "Acme", out.Name)
	assert.Equal(t, "INR", out.Currency)
	s.AssertExpectations(t)
	a.AssertExpectations(t)
}

func TestUpdateCompany_ZonaHorariaInvalida(t *testing.T) {
	s, a := new(mockSettingsRepo), new(mockAuditRepo)

	_, err := newSettings(s, a).UpdateCompany(context.Background(), "u-1",
		dto.CompanySettingsRequest{Name: "Acme", Timezone: "Marte/Olympus"}, meta)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	s.AssertNotCalled(t, "UpsertCompany", mock.Anything, mock.Anything)
}

func TestUpdateCompany_FalloDeAuditoriaRevierte(t *testing.T) {
	s, a := new(mockSettingsRepo), new(mockAuditRepo)
	ctx := context.Background()
	boom := errors.New("audit caído")
	s.On("UpsertCompany", ctx, mock.Anything).Return(nil)
	a.On("Append", ctx, mock.Anything).Return(boom)

	_, err := newSettings(s, a).UpdateCompany(ctx, "u-1", dto.CompanySettingsRequest{Name: "Acme", Currency: "usd"}, meta)
	assert.ErrorIs(t, err, boom)
}

func TestGetCompany_SinConfiguracion(t *testing.T) {
	s, a := new(mockSettingsRepo), new(mockAuditRepo)
	ctx := context.Background()
	s.On("GetCompany", ctx, "u-1").Return(nil, nil)

	out, err := newSettings(s, a).GetCompany(ctx, "u-1")
	assert.NoError(t, err)
	assert.Nil(t, out)
}

// ─── Pagos ──────────────────────────────────────────────────────────────────

func TestUpdatePayment_SinEmpresa_Conflicto(t *testing.T) {
	s, a := new(mockSettingsRepo), new(mockAuditRepo)
	ctx := context.Background()
	s.On("GetCompany", ctx, "u-1").Return(nil, nil)

	_, err := newSettings(s, a).UpdatePayment(ctx, "u-1", dto.PaymentSettingsRequest{}, meta)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestUpdatePayment_Defaults(t *testing.T) {
	s, a := new(mockSettingsRepo), new(mockAuditRepo)
	ctx := context.Background()
	s.On("GetCompany", ctx, "u-1").Return(&entity.CompanySettings{ID: "c-1"}, nil)
	s.On("UpsertPayment", ctx, mock.MatchedBy(func(p *entity.PaymentSettings) bool {
		return p.CompanyID == "c-1" && p.GracePeriodDays == 7 && p.AutoReminderDays == 3 && p.PaymentMethods != nil
	})).Return(nil)
	a.On("Append", ctx, mock.Anything).Return(nil)

	out, err := newSettings(s, a).UpdatePayment(ctx, "u-1", dto.PaymentSettingsRequest{
		LateFeePercentage: decimal.RequireFromString("1.5"),
	}, meta)
	require.NoError(t, err)
	assert.Equal(t, 7, out.GracePeriodDays)
	assert.Equal(t, 3, out.AutoReminderDays)
	assert.True(t, out.LateFeePercentage.Equal(decimal.RequireFromString("1.5")))
}

func TestUpdatePayment_RespetaCeroExplicito(t *testing.T) {
	s, a := new(mockSettingsRepo), new(mockAuditRepo)
	ctx := context.Background()
	zero := 0
	s.On("GetCompany", ctx, "u-1").Return(&entity.CompanySettings{ID: "c-1"}, nil)
	s.On("UpsertPayment", ctx, mock.Anything).Return(nil)
	a.On("Append", ctx, mock.Anything).Return(nil)

	out, err := newSettings(s, a).UpdatePayment(ctx, "u-1", dto.PaymentSettingsRequest{GracePeriodDays: &zero}, meta)
	require.NoError(t, err)
	assert.Equal(t, 0, out.GracePeriodDays)
}

func TestUpdatePayment_RecargoFueraDeRango(t *testing.T) {
	s, a := new(mockSettingsRepo), new(mockAuditRepo)
	ctx := context.Background()

	_, err := newSettings(s, a).UpdatePayment(ctx, "u-1", dto.PaymentSettingsRequest{
		LateFeePercentage: decimal.NewFromInt(-1),
	}, meta)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	s.AssertNotCalled(t, "GetCompany", mock.Anything, mock.Anything)
}

// ─── Perfil para reportes ───────────────────────────────────────────────────

func TestCompanyProfile_UsaRespaldo(t *testing.T) {
	s, a := new(mockSettingsRepo), new(mockAuditRepo)
	ctx := context.Background()
	s.On("GetCompany", ctx, "u-1").Return(nil, errors.New("db caída"))

	name, currency := newSettings(s, a).CompanyProfile(ctx, "u-1")
	assert.Equal(t, "Cartera", name)
	assert.Equal(t, "INR", currency)
}

func TestCompanyProfile_UsaConfiguracion(t *testing.T) {
	s, a := new(mockSettingsRepo), new(mockAuditRepo)
	ctx := context.Background()
	s.On("GetCompany", ctx, "u-1").Return(&entity.CompanySettings{Name: "Acme", Currency: "USD"}, nil)

	name, currency := newSettings(s, a).CompanyProfile(ctx, "u-1")
	assert.Equal(t, "Acme", name)
	assert.Equal(t, "USD", currency)
}

func TestListAudit_MapeaEntradas(t *testing.T) {
	s, a := new(mockSettingsRepo), new(mockAuditRepo)
	ctx := context.Background()
	a.On("ListByUser", ctx, "u-1", 20, 0).Return([]*entity.AuditLog{
		{ID: "a-1", Action: usecase.AuditCompanyUpdate, Details: map[string]any{"name": "Acme"}},
	}, nil)

	out, err := newSettings(s, a).ListAudit(ctx, "u-1", 20, 0)
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "Acme", out.Items[0].Details["name"])
	assert.Equal(t, 20, out.Page.Limit)
}
