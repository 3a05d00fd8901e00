package collections_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Cartera-api/internal/application/collections"
	"github.com/jhoicas/Cartera-api/internal/domain"
	"github.com/jhoicas/Cartera-api/internal/domain/entity"
)

// ─── Helpers ────────────────────────────────────────────────────────────────

func newReminders(ledger *fakeLedger, gw collections.NotificationGateway, clock collections.Clock) *collections.ReminderUseCase {
	il := collections.NewInteractionLogger(ledger, clock, nil)
	return collections.NewReminderUseCase(ledger, gw, il, clock, collections.DefaultReminderConfig(), nil)
}

func dueFiveDaysAgo(id, customerID string) entity.Invoice {
	return entity.Invoice{
		ID:            id,
		CustomerID:    customerID,
		DueDate:       dayOffset(testNow(), -5),
		PaymentStatus: entity.PaymentStatusOverdue,
		TotalAmount:   money("1000"),
	}
}

func reminderAt(customerID string, at time.Time) entity.Interaction {
	return entity.Interaction{ID: "INT_old", CustomerID: customerID, Type: entity.ChannelEmailReminder, Date: &at}
}

// ─── Escenarios ─────────────────────────────────────────────────────────────

func TestTriggerReminders_EnviaUnoYRegistra(t *testing.T) {
	ledger := &fakeLedger{
		customers: []entity.Customer{{ID: "C1", Name: "Acme", Email: "ar@acme.test"}},
		invoices:  []entity.Invoice{dueFiveDaysAgo("I1", "C1")},
	}
	gw := new(mockGateway)
	gw.On("SendEmail", mock.Anything, "ar@acme.test", "Payment Reminder for Invoice I1",
		"Dear Acme, Reminder: Invoice I1 for INR 1000.00 was due on 2025-04-13. Please pay soon. Collections Team.").
		Return(nil).Once()

	n, msg, err := newReminders(ledger, gw, &fixedClock{now: testNow()}).TriggerReminders(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, "sent 1 reminders", msg)
	gw.AssertExpectations(t)

	require.Len(t, ledger.interactions, 1)
	logged := ledger.interactions[0]
	assert.Equal(t, entity.ChannelEmailReminder, logged.Type)
	assert.Equal(t, entity.ReminderEngineAgentID, logged.HandledBy)
	assert.Equal(t, entity.InitiatedBySystem, logged.InitiatedBy)
	assert.Equal(t, "I1", logged.RelatedInvoice)
	assert.Equal(t, "Sent reminder for Invoice I1", logged.Notes)
}

func TestTriggerReminders_IdempotenteDentroDelEnfriamiento(t *testing.T) {
	ledger := &fakeLedger{
		customers: []entity.Customer{{ID: "C1", Name: "Acme", Email: "ar@acme.test"}},
		invoices:  []entity.Invoice{dueFiveDaysAgo("I1", "C1")},
	}
	gw := new(mockGateway)
	gw.On("SendEmail", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	clock := &fixedClock{now: testNow()}
	uc := newReminders(ledger, gw, clock)

	n, _, err := uc.TriggerReminders(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, n)

	clock.Advance(2 * time.Hour)
	n, msg, err := uc.TriggerReminders(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.Equal(t, collections.MsgAlreadyReminded, msg)
	gw.AssertNumberOfCalls(t, "SendEmail", 1)
	assert.Len(t, ledger.interactions, 1)
}

func TestTriggerReminders_SinCoincidencias(t *testing.T) {
	inv := dueFiveDaysAgo("I1", "C1")
	inv.DueDate = dayOffset(testNow(), -6)
	paid := dueFiveDaysAgo("I2", "C1")
	paid.PaymentStatus = entity.PaymentStatusPaid
	ledger := &fakeLedger{
		customers: []entity.Customer{{ID: "C1", Email: "ar@acme.test"}},
		invoices:  []entity.Invoice{inv, paid, {ID: "I3", CustomerID: "C1", PaymentStatus: entity.PaymentStatusOverdue}},
	}
	gw := new(mockGateway)

	n, msg, err := newReminders(ledger, gw, &fixedClock{now: testNow()}).TriggerReminders(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.Equal(t, "no invoices match criteria", msg)
	gw.AssertNotCalled(t, "SendEmail", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestTriggerReminders_LimiteDeEnfriamiento(t *testing.T) {
	now := testNow()
	cases := []struct {
		name     string
		lastSent time.Time
		wantSent int
	}{
		{"justo en el corte se excluye", now.Add(-72 * time.Hour), 0},
		{"antes del corte se reenvía", now.Add(-72*time.Hour - time.Second), 1},
		{"hace cuatro días se reenvía", now.AddDate(0, 0, -4), 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ledger := &fakeLedger{
				customers:    []entity.Customer{{ID: "C1", Name: "Acme", Email: "ar@acme.test"}},
				invoices:     []entity.Invoice{dueFiveDaysAgo("I1", "C1")},
				interactions: []entity.Interaction{reminderAt("C1", tc.lastSent)},
			}
			gw := new(mockGateway)
			gw.On("SendEmail", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

			n, _, err := newReminders(ledger, gw, &fixedClock{now: now}).TriggerReminders(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tc.wantSent, n)
		})
	}
}

func TestTriggerReminders_OtrosCanalesNoCuentanComoRecordatorio(t *testing.T) {
	now := testNow()
	call := reminderAt("C1", now.Add(-time.Hour))
	call.Type = entity.ChannelManualCall
	ledger := &fakeLedger{
		customers:    []entity.Customer{{ID: "C1", Name: "Acme", Email: "ar@acme.test"}},
		invoices:     []entity.Invoice{dueFiveDaysAgo("I1", "C1")},
		interactions: []entity.Interaction{call},
	}
	gw := new(mockGateway)
	gw.On("SendEmail", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	n, _, err := newReminders(ledger, gw, &fixedClock{now: now}).TriggerReminders(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestTriggerReminders_SinEmailSeOmite(t *testing.T) {
	ledger := &fakeLedger{
		customers: []entity.Customer{
			{ID: "C1", Name: "Acme", Email: "ar@acme.test"},
			{ID: "C2", Name: "Globex", Email: "  "},
		},
		invoices: []entity.Invoice{dueFiveDaysAgo("I1", "C1"), dueFiveDaysAgo("I2", "C2"), dueFiveDaysAgo("I3", "C404")},
	}
	gw := new(mockGateway)
	gw.On("SendEmail", mock.Anything, "ar@acme.test", mock.Anything, mock.Anything).Return(nil).Once()

	n, msg, err := newReminders(ledger, gw, &fixedClock{now: testNow()}).TriggerReminders(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, "sent 1 reminders", msg)
	assert.Len(t, ledger.interactions, 1)
	gw.AssertExpectations(t)
}

func TestTriggerReminders_EnvioFallido_NiSeRegistraNiCuenta(t *testing.T) {
	ledger := &fakeLedger{
		customers: []entity.Customer{{ID: "C1", Name: "Acme", Email: "ar@acme.test"}},
		invoices:  []entity.Invoice{dueFiveDaysAgo("I1", "C1")},
	}
	gw := new(mockGateway)
	gw.On("SendEmail", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("smtp caído"))

	n, msg, err := newReminders(ledger, gw, &fixedClock{now: testNow()}).TriggerReminders(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.Equal(t, "sent 0 reminders", msg)
	assert.Empty(t, ledger.interactions)
}

func TestTriggerReminders_FalloDeLog_SeCuentaIgual(t *testing.T) {
	ledger := &fakeLedger{
		customers: []entity.Customer{{ID: "C1", Name: "Acme", Email: "ar@acme.test"}},
		invoices:  []entity.Invoice{dueFiveDaysAgo("I1", "C1")},
		appendErr: errors.New("solo lectura"),
	}
	gw := new(mockGateway)
	gw.On("SendEmail", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	n, _, err := newReminders(ledger, gw, &fixedClock{now: testNow()}).TriggerReminders(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestTriggerReminders_MismoClienteDosFacturas(t *testing.T) {
	ledger := &fakeLedger{
		customers: []entity.Customer{{ID: "C1", Name: "Acme", Email: "ar@acme.test"}},
		invoices:  []entity.Invoice{dueFiveDaysAgo("I1", "C1"), dueFiveDaysAgo("I2", "C1")},
	}
	gw := new(mockGateway)
	gw.On("SendEmail", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	n, _, err := newReminders(ledger, gw, &fixedClock{now: testNow()}).TriggerReminders(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n, "el conjunto de recientes se calcula una vez por corrida")
}

func TestTriggerReminders_DatosNoDisponibles(t *testing.T) {
	ledger := &fakeLedger{readErr: domain.ErrDataUnavailable}

	_, _, err := newReminders(ledger, new(mockGateway), nil).TriggerReminders(context.Background())
	assert.ErrorIs(t, err, domain.ErrDataUnavailable)
}
