package collections_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Cartera-api/internal/application/collections"
	"github.com/jhoicas/Cartera-api/internal/application/dto"
	"github.com/jhoicas/Cartera-api/internal/domain"
	domaincoll "github.com/jhoicas/Cartera-api/internal/domain/collections"
	"github.com/jhoicas/Cartera-api/internal/domain/entity"
)

func newDashboard(ledger *fakeLedger) *collections.DashboardUseCase {
	return collections.NewDashboardUseCase(ledger, collections.FixedDSO(45), &fixedClock{now: testNow()})
}

func money(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// ─── GetDelinquentAccounts ──────────────────────────────────────────────────

func TestGetDelinquentAccounts_EscenarioCompleto(t *testing.T) {
	now := testNow()
	ledger := &fakeLedger{
		customers: []entity.Customer{{ID: "C1", Name: "Acme"}},
		invoices: []entity.Invoice{
			{ID: "I1", CustomerID: "C1", DueDate: dayOffset(now, -45), PaymentStatus: entity.PaymentStatusOverdue, TotalAmount: money("1000")},
		},
	}

	rows, err := newDashboard(ledger).GetDelinquentAccounts(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []dto.DelinquentInvoiceDTO{{
		InvoiceID:    "I1",
		DueDate:      dayOffset(now, -45).Format("2006-01-02"),
		TotalAmount:  money("1000"),
		CustomerName: "Acme",
		CustomerID:   "C1",
		AgingBucket:  domaincoll.Bucket31To60,
	}}, rows)
}

func TestGetDelinquentAccounts_SinVencidas_ListaVacia(t *testing.T) {
	ledger := &fakeLedger{
		customers: []entity.Customer{{ID: "C1", Name: "Acme"}},
		invoices:  []entity.Invoice{{ID: "I1", CustomerID: "C1", PaymentStatus: entity.PaymentStatusPaid}},
	}

	rows, err := newDashboard(ledger).GetDelinquentAccounts(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestGetDelinquentAccounts_FechaNulaYClienteDesconocido(t *testing.T) {
	ledger := &fakeLedger{
		invoices: []entity.Invoice{{ID: "I9", CustomerID: "CX", PaymentStatus: entity.PaymentStatusOverdue, TotalAmount: money("5")}},
	}

	rows, err := newDashboard(ledger).GetDelinquentAccounts(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "N/A", rows[0].DueDate)
	assert.Equal(t, domaincoll.BucketNotAvail, rows[0].AgingBucket)
	assert.Empty(t, rows[0].CustomerName)
}

// ─── GetARDashboard ─────────────────────────────────────────────────────────

func TestGetARDashboard_SumaPorTramoYTotal(t *testing.T) {
	now := testNow()
	ledger := &fakeLedger{
		customers: []entity.Customer{{ID: "C1", Name: "Acme"}, {ID: "C2", Name: "Globex"}},
		invoices: []entity.Invoice{
			{ID: "I1", CustomerID: "C1", DueDate: dayOffset(now, -10), PaymentStatus: entity.PaymentStatusOverdue, TotalAmount: money("100.25")},
			{ID: "I2", CustomerID: "C2", DueDate: dayOffset(now, -20), PaymentStatus: entity.PaymentStatusOverdue, TotalAmount: money("50")},
			{ID: "I3", CustomerID: "C2", DueDate: dayOffset(now, -120), PaymentStatus: entity.PaymentStatusOverdue, TotalAmount: money("7")},
			{ID: "I4", CustomerID: "C1", DueDate: dayOffset(now, -120), PaymentStatus: entity.PaymentStatusPaid, TotalAmount: money("999")},
		},
	}

	out, err := newDashboard(ledger).GetARDashboard(context.Background())
	require.NoError(t, err)

	assert.Len(t, out.OverdueInvoices, 3)
	assert.Equal(t, "Globex", out.OverdueInvoices[1].CustomerName)
	assert.True(t, money("150.25").Equal(out.AgingSummaryAmount[domaincoll.Bucket1To30]))
	assert.True(t, money("7").Equal(out.AgingSummaryAmount[domaincoll.BucketOver90]))
	assert.True(t, out.AgingSummaryAmount[domaincoll.BucketCurrent].IsZero())
	assert.True(t, money("157.25").Equal(out.TotalOverdueAmount))
	assert.Equal(t, 45, out.CalculatedDSO)
}

func TestGetARDashboard_SiempreSeisTramos(t *testing.T) {
	out, err := newDashboard(&fakeLedger{}).GetARDashboard(context.Background())
	require.NoError(t, err)

	require.Len(t, out.AgingSummaryAmount, 6)
	for _, b := range domaincoll.AgingBuckets {
		v, ok := out.AgingSummaryAmount[b]
		assert.True(t, ok, "falta el tramo %s", b)
		assert.True(t, v.IsZero())
	}
	assert.Empty(t, out.OverdueInvoices)
	assert.Equal(t, 45, out.CalculatedDSO)
}

func TestGetARDashboard_DatosNoDisponibles(t *testing.T) {
	ledger := &fakeLedger{readErr: domain.ErrDataUnavailable}

	_, err := newDashboard(ledger).GetARDashboard(context.Background())
	assert.True(t, errors.Is(err, domain.ErrDataUnavailable))
}

// ─── GetReportSummary ───────────────────────────────────────────────────────

func TestGetReportSummary_SinVencidas_ResumenVacio(t *testing.T) {
	ledger := &fakeLedger{
		invoices: []entity.Invoice{{ID: "I1", CustomerID: "C1", PaymentStatus: entity.PaymentStatusPaid, TotalAmount: money("10")}},
	}

	out, err := newDashboard(ledger).GetReportSummary(context.Background())
	require.NoError(t, err)

	assert.NotNil(t, out.AgingSummary)
	assert.Empty(t, out.AgingSummary, "sin vencidas no se aplica la plantilla de tramos")
	assert.Equal(t, 0, out.TotalOverdueCount)
	assert.True(t, out.TotalOverdueAmount.IsZero())
	assert.Equal(t, 0, out.CalculatedDSO)
}

func TestGetReportSummary_SumaYConteo(t *testing.T) {
	now := testNow()
	ledger := &fakeLedger{
		invoices: []entity.Invoice{
			{ID: "I1", DueDate: dayOffset(now, -61), PaymentStatus: entity.PaymentStatusOverdue, TotalAmount: money("10")},
			{ID: "I2", DueDate: dayOffset(now, -90), PaymentStatus: entity.PaymentStatusOverdue, TotalAmount: money("15.5")},
			{ID: "I3", PaymentStatus: entity.PaymentStatusOverdue, TotalAmount: money("1")},
			{ID: "I4", DueDate: dayOffset(now, 3), PaymentStatus: entity.PaymentStatusOverdue, TotalAmount: money("2")},
		},
	}

	out, err := newDashboard(ledger).GetReportSummary(context.Background())
	require.NoError(t, err)

	require.Len(t, out.AgingSummary, 6)
	assert.Equal(t, 2, out.AgingSummary[domaincoll.Bucket61To90].Count)
	assert.True(t, money("25.5").Equal(out.AgingSummary[domaincoll.Bucket61To90].Sum))
	assert.Equal(t, 1, out.AgingSummary[domaincoll.BucketNotAvail].Count)
	assert.Equal(t, 1, out.AgingSummary[domaincoll.BucketCurrent].Count)
	assert.Equal(t, 0, out.AgingSummary[domaincoll.Bucket1To30].Count)
	assert.Equal(t, 4, out.TotalOverdueCount)
	assert.True(t, money("28.5").Equal(out.TotalOverdueAmount))
	assert.Equal(t, 45, out.CalculatedDSO)
}
