package collections

import (
	"fmt"
	"time"
)

// CallWindow política horaria de llamadas manuales (ambos extremos inclusive).
// Solo aplica a llamadas; los recordatorios por email no pasan por aquí.
type CallWindow struct {
	Start    time.Duration // desde medianoche
	End      time.Duration
	Location *time.Location
}

// DefaultCallWindow 08:00–19:00 en la zona local del proceso.
func DefaultCallWindow() CallWindow {
	return CallWindow{Start: 8 * time.Hour, End: 19 * time.Hour, Location: time.Local}
}

// NewCallWindow construye la ventana desde "HH:MM" y un nombre de zona IANA ("Local" = zona del proceso).
func NewCallWindow(start, end, tz string) (CallWindow, error) {
	s, err := parseClock(start)
	if err != nil {
		return CallWindow{}, fmt.Errorf("call window: inicio: %w", err)
	}
	e, err := parseClock(end)
	if err != nil {
		return CallWindow{}, fmt.Errorf("call window: fin: %w", err)
	}
	if e < s {
		return CallWindow{}, fmt.Errorf("call window: fin %s anterior al inicio %s", end, start)
	}
	loc := time.Local
	if tz != "" && tz != "Local" {
		loc, err = time.LoadLocation(tz)
		if err != nil {
			return CallWindow{}, fmt.Errorf("call window: zona horaria %q: %w", tz, err)
		}
	}
	return CallWindow{Start: s, End: e, Location: loc}, nil
}

// IsCallAllowed informa si now (convertido a la zona de la ventana) cae en [Start, End].
func (w CallWindow) IsCallAllowed(now time.Time) bool {
	loc := w.Location
	if loc == nil {
		loc = time.Local
	}
	t := now.In(loc)
	tod := time.Duration(t.Hour())*time.Hour +
		time.Duration(t.Minute())*time.Minute +
		time.Duration(t.Second())*time.Second +
		time.Duration(t.Nanosecond())
	return tod >= w.Start && tod <= w.End
}

// String formato legible "08:00-19:00".
func (w CallWindow) String() string {
	return fmt.Sprintf("%s-%s", formatClock(w.Start), formatClock(w.End))
}

func parseClock(s string) (time.Duration, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("hora inválida %q (HH:MM)", s)
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, nil
}

func formatClock(d time.Duration) string {
	return fmt.Sprintf("%02d:%02d", int(d.Hours()), int(d.Minutes())%60)
}
