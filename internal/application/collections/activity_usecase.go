package collections

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jhoicas/Cartera-api/internal/domain"
	domaincoll "github.com/jhoicas/Cartera-api/internal/domain/collections"
	"github.com/jhoicas/Cartera-api/internal/domain/entity"
	"github.com/jhoicas/Cartera-api/internal/observer"
	"github.com/jhoicas/Cartera-api/pkg/logger"
)

// ErrLogWriteFailed la interacción no pudo persistirse.
var ErrLogWriteFailed = errors.New("no se pudo registrar la interacción")

// ComplianceBlockedError llamada manual fuera de horario. Logged indica si el intento
// bloqueado quedó registrado.
type ComplianceBlockedError struct {
	Window      string
	Logged      bool
	Interaction *entity.Interaction
}

func (e *ComplianceBlockedError) Error() string {
	return fmt.Sprintf("Compliance Violation: Call outside allowed hours (%s)", e.Window)
}

func (e *ComplianceBlockedError) Unwrap() error { return domain.ErrCallOutsideWindow }

// ActivityInput gestión de cobranza registrada por un agente.
type ActivityInput struct {
	AgentID        string
	ActivityType   string // vacío = Manual Call
	CustomerID     string
	Notes          string
	Disposition    string
	RelatedInvoice string
}

// ActivityUseCase registra gestiones de agentes aplicando la política horaria a las llamadas.
type ActivityUseCase struct {
	interactions *InteractionLogger
	window       domaincoll.CallWindow
	clock        Clock
	log          *logger.Logger
}

// NewActivityUseCase construye el caso de uso.
func NewActivityUseCase(interactions *InteractionLogger, window domaincoll.CallWindow, clock Clock, log *logger.Logger) *ActivityUseCase {
	if clock == nil {
		clock = SystemClock
	}
	if log == nil {
		log = logger.Nop()
	}
	return &ActivityUseCase{interactions: interactions, window: window, clock: clock, log: log}
}

// LogActivity valida, aplica la política horaria y registra.
//
// Una llamada manual fuera de la ventana se registra igualmente con estado
// "Blocked - Timing" y se devuelve *ComplianceBlockedError.
func (uc *ActivityUseCase) LogActivity(ctx context.Context, in ActivityInput) (*entity.Interaction, error) {
	if strings.TrimSpace(in.CustomerID) == "" || in.Notes == "" {
		return nil, fmt.Errorf("%w: customerId y notes son obligatorios", domain.ErrInvalidInput)
	}
	channel := in.ActivityType
	if channel == "" {
		channel = entity.ChannelManualCall
	}

	status := entity.ComplianceNA
	if channel == entity.ChannelManualCall {
		if !uc.window.IsCallAllowed(uc.clock.Now()) {
			return nil, uc.block(ctx, in, channel)
		}
		status = entity.ComplianceCompliant
	}

	res := uc.interactions.LogCommunication(ctx, CommunicationInput{
		CustomerID:       in.CustomerID,
		Channel:          channel,
		AgentID:          in.AgentID,
		Notes:            in.Notes,
		Disposition:      in.Disposition,
		ComplianceStatus: status,
		RelatedInvoice:   in.RelatedInvoice,
	})
	if !res.OK {
		return nil, fmt.Errorf("%w: %s", ErrLogWriteFailed, res.Message)
	}
	return res.Interaction, nil
}

func (uc *ActivityUseCase) block(ctx context.Context, in ActivityInput, channel string) error {
	observer.IncComplianceBlock()
	uc.log.Warn().
		Str("agent_id", in.AgentID).
		Str("customer_id", in.CustomerID).
		Str("window", uc.window.String()).
		Msg("llamada fuera de horario, se registra el intento bloqueado")

	res := uc.interactions.LogCommunication(ctx, CommunicationInput{
		CustomerID:       in.CustomerID,
		Channel:          channel,
		AgentID:          in.AgentID,
		Notes:            in.Notes,
		Disposition:      in.Disposition,
		ComplianceStatus: entity.ComplianceBlocked,
		RelatedInvoice:   in.RelatedInvoice,
	})
	return &ComplianceBlockedError{Window: uc.window.String(), Logged: res.OK, Interaction: res.Interaction}
}
