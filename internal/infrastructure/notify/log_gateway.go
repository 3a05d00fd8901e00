// Package notify implementa la pasarela de correo para recordatorios de cobranza.
package notify

import (
	"context"
	"strings"

	"github.com/jhoicas/Cartera-api/internal/application/collections"
	"github.com/jhoicas/Cartera-api/pkg/logger"
)

var _ collections.NotificationGateway = (*LogGateway)(nil)

// LogGateway pasarela simulada: registra el correo en el log y lo da por enviado.
// Es el driver por defecto (MAIL_DRIVER=log) en desarrollo.
type LogGateway struct {
	log *logger.Logger
}

// NewLogGateway construye la pasarela simulada.
func NewLogGateway(log *logger.Logger) *LogGateway {
	if log == nil {
		log = logger.Nop()
	}
	return &LogGateway{log: log}
}

// SendEmail nunca falla salvo contexto cancelado o destinatario vacío.
func (g *LogGateway) SendEmail(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(to) == "" {
		return errEmptyRecipient
	}
	g.log.Info().
		Str("to", to).
		Str("subject", subject).
		Int("body_len", len(body)).
		Msg("correo simulado enviado")
	return nil
}
