package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Cartera-api/internal/application/collections"
	"github.com/jhoicas/Cartera-api/internal/application/dto"
	"github.com/jhoicas/Cartera-api/internal/domain"
	"github.com/jhoicas/Cartera-api/internal/domain/entity"
	"github.com/jhoicas/Cartera-api/internal/validator"
)

// CollectionsHandler dashboard de cartera, vencidos y registro de gestiones.
type CollectionsHandler struct {
	dashboard    *collections.DashboardUseCase
	activity     *collections.ActivityUseCase
	interactions *collections.InteractionLogger
}

// NewCollectionsHandler construye el handler.
func NewCollectionsHandler(dashboard *collections.DashboardUseCase, activity *collections.ActivityUseCase, interactions *collections.InteractionLogger) *CollectionsHandler {
	return &CollectionsHandler{dashboard: dashboard, activity: activity, interactions: interactions}
}

// Dashboard godoc
// @Summary      Dashboard de cartera
// @Description  Facturas vencidas, monto por tramo de antigüedad (los seis tramos), total vencido y DSO. Montos como cadenas decimales.
// @Tags         collections
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.ARDashboardDTO
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/ar/dashboard [get]
func (h *CollectionsHandler) Dashboard(c *fiber.Ctx) error {
	out, err := h.dashboard.GetARDashboard(c.UserContext())
	if err != nil {
		return readError(c, err)
	}
	return c.JSON(out)
}

// Delinquent godoc
// @Summary      Cuentas morosas
// @Description  Montos como cadenas decimales.
// @Tags         collections
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   dto.DelinquentInvoiceDTO
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/collections/delinquent [get]
func (h *CollectionsHandler) Delinquent(c *fiber.Ctx) error {
	out, err := h.dashboard.GetDelinquentAccounts(c.UserContext())
	if err != nil {
		return readError(c, err)
	}
	return c.JSON(out)
}

// LogActivity godoc
// @Summary      Registrar gestión de cobranza
// @Description  Las llamadas manuales fuera del horario permitido se registran como bloqueadas y responden 403.
// @Tags         collections
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.LogActivityRequest  true  "customerId y notes obligatorios"
// @Success      201   {object}  dto.LogActivityResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.BlockedActivityResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/collections/log_activity [post]
func (h *CollectionsHandler) LogActivity(c *fiber.Ctx) error {
	var in dto.LogActivityRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validator.Validate(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	rec, err := h.activity.LogActivity(c.UserContext(), collections.ActivityInput{
		AgentID:        GetUserID(c),
		ActivityType:   in.ActivityType,
		CustomerID:     in.CustomerID,
		Notes:          in.Notes,
		Disposition:    in.Disposition,
		RelatedInvoice: in.RelatedInvoice,
	})
	if err != nil {
		var blocked *collections.ComplianceBlockedError
		switch {
		case errors.As(err, &blocked):
			return c.Status(fiber.StatusForbidden).JSON(dto.BlockedActivityResponse{
				Error:  blocked.Error(),
				Logged: blocked.Logged,
				Status: "Blocked",
			})
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		case errors.Is(err, collections.ErrLogWriteFailed):
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "LOG_WRITE_FAILED", Message: err.Error()})
		}
		return readError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.LogActivityResponse{
		Message:       "logged successfully",
		InteractionID: rec.ID,
	})
}

// Interactions godoc
// @Summary      Historial de interacciones de un cliente
// @Tags         collections
// @Produce      json
// @Security     BearerAuth
// @Param        customer_id  query  string  true  "ID del cliente"
// @Success      200  {array}   dto.InteractionDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/collections/interactions [get]
func (h *CollectionsHandler) Interactions(c *fiber.Ctx) error {
	customerID := c.Query("customer_id")
	if customerID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "customer_id es requerido"})
	}
	list, err := h.interactions.History(c.UserContext(), customerID)
	if err != nil {
		return readError(c, err)
	}
	out := make([]dto.InteractionDTO, 0, len(list))
	for _, r := range list {
		out = append(out, toInteractionDTO(r))
	}
	return c.JSON(out)
}

// readError traduce errores de lectura de cartera: datos no disponibles → 503.
func readError(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrDataUnavailable) {
		return dataUnavailable(c)
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

func toInteractionDTO(r entity.Interaction) dto.InteractionDTO {
	return dto.InteractionDTO{
		InteractionID:   r.ID,
		CustomerID:      r.CustomerID,
		CustomerName:    r.CustomerName,
		InteractionDate: r.Date,
		InteractionType: r.Type,
		Purpose:         r.Purpose,
		Summary:         r.Summary,
		InitiatedBy:     r.InitiatedBy,
		HandledBy:       r.HandledBy,
		RepID:           r.RepID,
		RelatedInvoice:  r.RelatedInvoice,
		Outcome:         r.Outcome,
		Notes:           r.Notes,
	}
}
