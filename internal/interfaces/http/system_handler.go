package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Cartera-api/internal/application/collections"
	"github.com/jhoicas/Cartera-api/internal/application/dto"
	"github.com/jhoicas/Cartera-api/internal/observer"
)

// storeReloader recarga completa de los CSV de cartera. Lo implementa *csvstore.Store.
type storeReloader interface {
	Load() error
	Counts() (customers, invoices, interactions int, loaded bool)
}

// SystemHandler operaciones disparadas desde fuera (cron, integraciones, gerente).
type SystemHandler struct {
	reminders *collections.ReminderUseCase
	store     storeReloader
}

// NewSystemHandler construye el handler.
func NewSystemHandler(reminders *collections.ReminderUseCase, store storeReloader) *SystemHandler {
	return &SystemHandler{reminders: reminders, store: store}
}

// RunReminders godoc
// @Summary      Ejecutar recordatorios de pago
// @Description  Envía un correo por cada factura vencida cuyo vencimiento fue exactamente hace N días (COLLECTIONS_REMINDER_LAG_DAYS). Omite clientes con un recordatorio automático dentro del período de enfriamiento.
// @Tags         system
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.RemindersResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/system/run_reminders [post]
func (h *SystemHandler) RunReminders(c *fiber.Ctx) error {
	sent, msg, err := h.reminders.TriggerReminders(c.UserContext())
	if err != nil {
		return readError(c, err)
	}
	return c.JSON(dto.RemindersResponse{Message: msg, SentCount: sent})
}

// Reload godoc
// @Summary      Recargar datos de cartera
// @Tags         system
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.ReloadResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/system/reload [post]
func (h *SystemHandler) Reload(c *fiber.Ctx) error {
	err := h.store.Load()
	observer.IncStoreReload(err)
	if err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "RELOAD_FAILED", Message: err.Error()})
	}
	customers, invoices, interactions, _ := h.store.Counts()
	return c.JSON(dto.ReloadResponse{Customers: customers, Invoices: invoices, Interactions: interactions})
}
