package notify

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/gomail.v2"

	"github.com/jhoicas/Cartera-api/internal/application/collections"
	"github.com/jhoicas/Cartera-api/pkg/config"
	"github.com/jhoicas/Cartera-api/pkg/logger"
)

var errEmptyRecipient = errors.New("notify: destinatario vacío")

var _ collections.NotificationGateway = (*SMTPGateway)(nil)

// dialer subconjunto de gomail.Dialer usado por la pasarela (reemplazable en tests).
type dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPGateway envía correos por SMTP con gomail. Una conexión por envío, sin reintentos.
type SMTPGateway struct {
	from   string
	dialer dialer
	log    *logger.Logger
}

// NewSMTPGateway construye la pasarela desde la configuración de correo.
func NewSMTPGateway(cfg config.MailConfig, log *logger.Logger) *SMTPGateway {
	if log == nil {
		log = logger.Nop()
	}
	return &SMTPGateway{
		from:   cfg.From,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		log:    log,
	}
}

// SendEmail arma un mensaje de texto plano y lo entrega al servidor SMTP.
func (g *SMTPGateway) SendEmail(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	to = strings.TrimSpace(to)
	if to == "" {
		return errEmptyRecipient
	}

	m := gomail.NewMessage()
	m.SetHeader("From", g.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if err := g.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("smtp: enviar a %s: %w", to, err)
	}
	g.log.Debug().Str("to", to).Str("subject", subject).Msg("correo enviado por smtp")
	return nil
}

// New elige la pasarela según MAIL_DRIVER.
func New(cfg config.MailConfig, log *logger.Logger) collections.NotificationGateway {
	if cfg.Driver == "smtp" {
		return NewSMTPGateway(cfg, log)
	}
	return NewLogGateway(log)
}
