// Package collections contiene los casos de uso de cartera y cobranza: dashboard de
// vencidos, reporte por tramos, log de comunicaciones, recordatorios automáticos y
// registro de gestiones con control horario.
package collections

import (
	"context"
	"time"
)

// NotificationGateway pasarela externa de correo. Síncrona y sin reintentos:
// un error significa que el correo no salió.
type NotificationGateway interface {
	SendEmail(ctx context.Context, to, subject, body string) error
}

// Clock fuente de la hora actual; se inyecta para que los cálculos por fecha sean deterministas.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapta una función a Clock.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

// SystemClock reloj de pared del proceso.
var SystemClock Clock = ClockFunc(time.Now)

// DSOProvider origen del indicador de días de cobro (DSO).
type DSOProvider interface {
	DSO(ctx context.Context) int
}

// FixedDSO valor constante configurado; no se calcula a partir de los datos.
type FixedDSO int

func (d FixedDSO) DSO(context.Context) int { return int(d) }
