package observer

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/jhoicas/Cartera-api/internal/domain/entity"
)

// OtherChannel etiqueta para cualquier canal fuera de los conocidos.
const OtherChannel = "other"

var (
	metricsEnabled = true

	interactionLabels = []string{"channel", "result"}

	RemindersSentTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cartera_reminders_sent_total",
		Help: "Total de recordatorios de pago enviados por la pasarela.",
	})
	ReminderSendFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cartera_reminder_send_failures_total",
		Help: "Total de envíos de recordatorio rechazados por la pasarela.",
	})
	ReminderRunDurationSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "cartera_reminder_run_duration_seconds",
		Help:    "Duración de cada corrida del motor de recordatorios.",
		Buckets: prometheus.ExponentialBuckets(0.005, 2, 12), // 5ms a ~10s
	})

	InteractionsLoggedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cartera_interactions_logged_total",
			Help: "Interacciones escritas en el log de comunicaciones, por canal y resultado (ok|error).",
		},
		interactionLabels,
	)
	ComplianceBlocksTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cartera_compliance_blocks_total",
		Help: "Llamadas manuales rechazadas por estar fuera del horario permitido.",
	})

	StoreReloadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cartera_store_reloads_total",
			Help: "Recargas completas del store CSV, por resultado.",
		},
		[]string{"result"},
	)
)

// SetEnabled activa o desactiva la recolección (config METRICS_ENABLED).
func SetEnabled(enabled bool) {
	metricsEnabled = enabled
}

// IncReminderSent cuenta un recordatorio aceptado por la pasarela.
func IncReminderSent() {
	if !metricsEnabled {
		return
	}
	RemindersSentTotal.Inc()
}

func IncReminderFailed() {
	if !metricsEnabled {
		return
	}
	ReminderSendFailuresTotal.Inc()
}

// ObserveReminderRun registra la duración de una corrida completa.
func ObserveReminderRun(d time.Duration) {
	if !metricsEnabled {
		return
	}
	ReminderRunDurationSeconds.Observe(d.Seconds())
}

// IncInteractionLogged cuenta una escritura al log; ok=false para fallos de persistencia.
// El canal llega del cliente: solo los canales conocidos conservan su etiqueta.
func IncInteractionLogged(channel string, ok bool) {
	if !metricsEnabled {
		return
	}
	result := "ok"
	if !ok {
		result = "error"
	}
	InteractionsLoggedTotal.WithLabelValues(channelLabel(channel), result).Inc()
}

func channelLabel(channel string) string {
	switch channel {
	case entity.ChannelManualCall, entity.ChannelEmailReminder, entity.ChannelEmail, entity.ChannelSMS:
		return channel
	}
	return OtherChannel
}

func IncComplianceBlock() {
	if !metricsEnabled {
		return
	}
	ComplianceBlocksTotal.Inc()
}

// IncStoreReload cuenta una recarga del store (manual, watcher o perezosa).
func IncStoreReload(err error) {
	if !metricsEnabled {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	StoreReloadsTotal.WithLabelValues(result).Inc()
}
