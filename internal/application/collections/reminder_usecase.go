package collections

import (
	"context"
	"fmt"
	"strings"
	"time"

	domaincoll "github.com/jhoicas/Cartera-api/internal/domain/collections"
	"github.com/jhoicas/Cartera-api/internal/domain/entity"
	"github.com/jhoicas/Cartera-api/internal/domain/repository"
	"github.com/jhoicas/Cartera-api/internal/observer"
	"github.com/jhoicas/Cartera-api/pkg/logger"
)

// Mensajes de resultado de TriggerReminders.
const (
	MsgNoInvoicesMatch = "no invoices match criteria"
	MsgAlreadyReminded = "reminders needed but already sent recently"
	msgSentFmt         = "sent %d reminders"
)

// ReminderConfig parámetros del motor de recordatorios.
type ReminderConfig struct {
	LagDays      int    // días desde el vencimiento
	CooldownDays int    // ventana sin reenviar al mismo cliente
	Currency     string // moneda del cuerpo del correo
	Signature    string
}

// DefaultReminderConfig 5 días de atraso, 3 días de enfriamiento.
func DefaultReminderConfig() ReminderConfig {
	return ReminderConfig{LagDays: 5, CooldownDays: 3, Currency: "INR", Signature: "Collections Team"}
}

// ReminderUseCase envía recordatorios de pago por correo a facturas vencidas hace exactamente LagDays días.
// No se auto-agenda: lo dispara un cron externo o POST /api/system/run_reminders.
type ReminderUseCase struct {
	ledger       repository.LedgerRepository
	gateway      NotificationGateway
	interactions *InteractionLogger
	clock        Clock
	cfg          ReminderConfig
	log          *logger.Logger
}

// NewReminderUseCase construye el caso de uso.
func NewReminderUseCase(
	ledger repository.LedgerRepository,
	gateway NotificationGateway,
	interactions *InteractionLogger,
	clock Clock,
	cfg ReminderConfig,
	log *logger.Logger,
) *ReminderUseCase {
	if clock == nil {
		clock = SystemClock
	}
	if log == nil {
		log = logger.Nop()
	}
	return &ReminderUseCase{ledger: ledger, gateway: gateway, interactions: interactions, clock: clock, cfg: cfg, log: log}
}

// TriggerReminders ejecuta una corrida completa. El error solo es no nil cuando los
// datos de cartera no están disponibles; los fallos de envío se cuentan en métricas y logs.
//
// La deduplicación es por cliente: si un cliente recibió un recordatorio automático
// dentro de la ventana de enfriamiento, se omiten todas sus facturas. El conjunto de
// recientes se calcula una vez al inicio de la corrida.
func (uc *ReminderUseCase) TriggerReminders(ctx context.Context) (int, string, error) {
	started := time.Now()
	defer func() { observer.ObserveReminderRun(time.Since(started)) }()

	invoices, err := uc.ledger.Invoices(ctx)
	if err != nil {
		return 0, "", err
	}
	customers, err := uc.ledger.Customers(ctx)
	if err != nil {
		return 0, "", err
	}
	history, err := uc.ledger.Interactions(ctx)
	if err != nil {
		return 0, "", err
	}

	now := uc.clock.Now()
	target := now.AddDate(0, 0, -uc.cfg.LagDays)

	var due []entity.Invoice
	for _, inv := range invoices {
		if inv.IsOverdue() && inv.DueDate != nil && domaincoll.SameDay(*inv.DueDate, target) {
			due = append(due, inv)
		}
	}
	if len(due) == 0 {
		uc.log.Info().Str("target_due_date", target.Format(dueDateLayout)).Msg("sin facturas para recordar")
		return 0, MsgNoInvoicesMatch, nil
	}

	cutoff := now.Add(-time.Duration(uc.cfg.CooldownDays) * 24 * time.Hour)
	recent := make(map[string]bool)
	for _, it := range history {
		if it.Type == entity.ChannelEmailReminder && it.Date != nil && !it.Date.Before(cutoff) {
			recent[it.CustomerID] = true
		}
	}

	var pending []entity.Invoice
	for _, inv := range due {
		if !recent[inv.CustomerID] {
			pending = append(pending, inv)
		}
	}
	if len(pending) == 0 {
		uc.log.Info().Int("candidates", len(due)).Msg("recordatorios ya enviados dentro de la ventana de enfriamiento")
		return 0, MsgAlreadyReminded, nil
	}

	byID := make(map[string]entity.Customer, len(customers))
	for _, c := range customers {
		if _, ok := byID[c.ID]; !ok {
			byID[c.ID] = c
		}
	}

	sent := 0
	for _, inv := range pending {
		cust, ok := byID[inv.CustomerID]
		email := strings.TrimSpace(cust.Email)
		if !ok || email == "" {
			uc.log.Debug().Str("invoice_id", inv.ID).Str("customer_id", inv.CustomerID).Msg("cliente sin email, se omite")
			continue
		}

		subject := fmt.Sprintf("Payment Reminder for Invoice %s", inv.ID)
		if err := uc.gateway.SendEmail(ctx, email, subject, uc.body(cust, inv)); err != nil {
			uc.log.Warn().Err(err).Str("invoice_id", inv.ID).Str("to", email).Msg("envío de recordatorio fallido")
			observer.IncReminderFailed()
			continue
		}

		res := uc.interactions.LogCommunication(ctx, CommunicationInput{
			CustomerID:     inv.CustomerID,
			Channel:        entity.ChannelEmailReminder,
			AgentID:        entity.ReminderEngineAgentID,
			Notes:          fmt.Sprintf("Sent reminder for Invoice %s", inv.ID),
			RelatedInvoice: inv.ID,
		})
		if !res.OK {
			// El correo ya salió: se cuenta igual, pero la próxima corrida podría reenviarlo.
			uc.log.Warn().Str("invoice_id", inv.ID).Str("reason", res.Message).Msg("recordatorio enviado sin registro en el log")
		}
		sent++
		observer.IncReminderSent()
	}

	uc.log.Info().Int("sent", sent).Int("pending", len(pending)).Msg("corrida de recordatorios completada")
	return sent, fmt.Sprintf(msgSentFmt, sent), nil
}

func (uc *ReminderUseCase) body(c entity.Customer, inv entity.Invoice) string {
	return fmt.Sprintf(
		"Dear %s, Reminder: Invoice %s for %s %s was due on %s. Please pay soon. %s.",
		c.Name, inv.ID, uc.cfg.Currency, inv.TotalAmount.StringFixed(2), inv.DueDate.Format(dueDateLayout), uc.cfg.Signature,
	)
}
