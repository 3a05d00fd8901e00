// Package collections contiene las reglas de dominio de cobranza: clasificación
// de cartera por antigüedad y la política horaria de llamadas.
package collections

import "time"

// Etiquetas de antigüedad de cartera.
const (
	BucketCurrent  = "Current"
	Bucket1To30    = "1-30 Days"
	Bucket31To60   = "31-60 Days"
	Bucket61To90   = "61-90 Days"
	BucketOver90   = "90+ Days"
	BucketNotAvail = "N/A"
)

// AgingBuckets orden fijo de la plantilla de resumen (seis claves).
var AgingBuckets = []string{
	BucketCurrent, Bucket1To30, Bucket31To60, Bucket61To90, BucketOver90, BucketNotAvail,
}

// ClassifyAging clasifica una fecha de vencimiento en su tramo de antigüedad.
// today se inyecta para que el resultado sea determinista; solo cuenta la fecha
// calendario de ambos valores, no la hora.
func ClassifyAging(due *time.Time, today time.Time) string {
	if due == nil {
		return BucketNotAvail
	}
	delta := DaysBetween(*due, today)
	switch {
	case delta <= 0:
		return BucketCurrent
	case delta <= 30:
		return Bucket1To30
	case delta <= 60:
		return Bucket31To60
	case delta <= 90:
		return Bucket61To90
	default:
		return BucketOver90
	}
}

// DaysBetween diferencia en días calendario (to - from), ignorando hora y zona.
func DaysBetween(from, to time.Time) int {
	return int(CalendarDate(to).Sub(CalendarDate(from)).Hours() / 24)
}

// CalendarDate normaliza t a medianoche UTC de su misma fecha (año, mes, día).
func CalendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SameDay informa si a y b caen en la misma fecha calendario.
func SameDay(a, b time.Time) bool {
	return CalendarDate(a).Equal(CalendarDate(b))
}
