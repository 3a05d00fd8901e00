package collections

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/jhoicas/Cartera-api/internal/domain/entity"
	"github.com/jhoicas/Cartera-api/internal/domain/repository"
	"github.com/jhoicas/Cartera-api/internal/observer"
	"github.com/jhoicas/Cartera-api/pkg/logger"
)

const summaryMaxRunes = 100

// CommunicationInput datos de una comunicación a registrar.
type CommunicationInput struct {
	CustomerID       string
	Channel          string
	AgentID          string
	Notes            string
	Disposition      string
	ComplianceStatus string
	RelatedInvoice   string
}

// LogResult resultado de LogCommunication. El llamador debe revisar OK: los fallos
// no se propagan como error.
type LogResult struct {
	OK          bool
	Message     string
	Interaction *entity.Interaction
}

// InteractionLogger escribe en el log de comunicaciones de cartera.
type InteractionLogger struct {
	ledger repository.LedgerRepository
	clock  Clock
	log    *logger.Logger

	idMu   sync.Mutex
	lastID int64
}

// NewInteractionLogger construye el escritor del log.
func NewInteractionLogger(ledger repository.LedgerRepository, clock Clock, log *logger.Logger) *InteractionLogger {
	if clock == nil {
		clock = SystemClock
	}
	if log == nil {
		log = logger.Nop()
	}
	return &InteractionLogger{ledger: ledger, clock: clock, log: log}
}

// LogCommunication arma el registro y lo anexa al store.
func (l *InteractionLogger) LogCommunication(ctx context.Context, in CommunicationInput) LogResult {
	customers, err := l.ledger.Customers(ctx)
	if err != nil {
		l.log.Error().Err(err).Str("customer_id", in.CustomerID).Msg("no se pudo resolver el cliente")
		observer.IncInteractionLogged(in.Channel, false)
		return LogResult{Message: fmt.Sprintf("failed to log: %v", err)}
	}

	name := entity.UnknownCustomerName
	for _, c := range customers {
		if c.ID == in.CustomerID {
			name = c.Name
			break
		}
	}

	now := l.clock.Now()
	initiatedBy := entity.InitiatedByAgent
	if in.AgentID == entity.ReminderEngineAgentID {
		initiatedBy = entity.InitiatedBySystem
	}
	outcome := in.Disposition
	if in.ComplianceStatus == entity.ComplianceBlocked {
		outcome = in.ComplianceStatus
	}

	rec := entity.Interaction{
		ID:             l.nextID(now.UnixMilli()),
		CustomerID:     in.CustomerID,
		CustomerName:   name,
		Date:           &now,
		Type:           in.Channel,
		Purpose:        entity.InteractionPurposeAR,
		Summary:        truncateRunes(in.Notes, summaryMaxRunes),
		InitiatedBy:    initiatedBy,
		HandledBy:      in.AgentID,
		RelatedInvoice: in.RelatedInvoice,
		Outcome:        outcome,
		Notes:          in.Notes,
	}

	if err := l.ledger.AppendInteraction(ctx, rec); err != nil {
		l.log.Error().Err(err).Str("customer_id", in.CustomerID).Str("channel", in.Channel).Msg("no se pudo registrar la comunicación")
		observer.IncInteractionLogged(in.Channel, false)
		return LogResult{Message: fmt.Sprintf("failed to log: %v", err)}
	}

	l.log.Info().
		Str("interaction_id", rec.ID).
		Str("customer_id", rec.CustomerID).
		Str("channel", rec.Type).
		Str("handled_by", rec.HandledBy).
		Msg("comunicación registrada")
	observer.IncInteractionLogged(in.Channel, true)
	return LogResult{OK: true, Message: "logged successfully", Interaction: &rec}
}

// History interacciones de un cliente, más recientes primero. customerID vacío = todas.
func (l *InteractionLogger) History(ctx context.Context, customerID string) ([]entity.Interaction, error) {
	all, err := l.ledger.Interactions(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]entity.Interaction, 0)
	for _, it := range all {
		if customerID == "" || it.CustomerID == customerID {
			out = append(out, it)
		}
	}
	// Registros sin fecha al final; entre iguales se respeta el orden inverso de escritura.
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].Date, out[j].Date
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.After(*b)
		}
	})
	return out, nil
}

// nextID genera INT_<millis>, estrictamente creciente dentro del proceso.
func (l *InteractionLogger) nextID(millis int64) string {
	l.idMu.Lock()
	defer l.idMu.Unlock()
	if millis <= l.lastID {
		millis = l.lastID + 1
	}
	l.lastID = millis
	return fmt.Sprintf("INT_%d", millis)
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
