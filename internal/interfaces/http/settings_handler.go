package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Cartera-api/internal/application/dto"
	"github.com/jhoicas/Cartera-api/internal/application/usecase"
	"github.com/jhoicas/Cartera-api/internal/domain"
	"github.com/jhoicas/Cartera-api/internal/validator"
)

// SettingsHandler configuración de empresa y pagos del usuario autenticado.
type SettingsHandler struct {
	uc *usecase.SettingsUseCase
}

// NewSettingsHandler construye el handler.
func NewSettingsHandler(uc *usecase.SettingsUseCase) *SettingsHandler {
	return &SettingsHandler{uc: uc}
}

// GetCompany godoc
// @Summary      Obtener configuración de empresa
// @Tags         settings
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.CompanySettingsResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/settings/company [get]
func (h *SettingsHandler) GetCompany(c *fiber.Ctx) error {
	out, err := h.uc.GetCompany(c.UserContext(), GetUserID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "empresa no configurada"})
	}
	return c.JSON(out)
}

// UpdateCompany godoc
// @Summary      Crear o actualizar configuración de empresa
// @Tags         settings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CompanySettingsRequest  true  "Datos de la empresa"
// @Success      200   {object}  dto.CompanySettingsResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/settings/company [put]
func (h *SettingsHandler) UpdateCompany(c *fiber.Ctx) error {
	var in dto.CompanySettingsRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validator.Validate(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	out, err := h.uc.UpdateCompany(c.UserContext(), GetUserID(c), in, requestMeta(c))
	if err != nil {
		return settingsError(c, err)
	}
	return c.JSON(out)
}

// GetPayment godoc
// @Summary      Obtener política de pagos
// @Tags         settings
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.PaymentSettingsResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/settings/payment [get]
func (h *SettingsHandler) GetPayment(c *fiber.Ctx) error {
	out, err := h.uc.GetPayment(c.UserContext(), GetUserID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "política de pagos no configurada"})
	}
	return c.JSON(out)
}

// UpdatePayment godoc
// @Summary      Crear o actualizar política de pagos
// @Tags         settings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.PaymentSettingsRequest  true  "Política de pagos"
// @Success      200   {object}  dto.PaymentSettingsResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/settings/payment [put]
func (h *SettingsHandler) UpdatePayment(c *fiber.Ctx) error {
	var in dto.PaymentSettingsRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validator.Validate(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	out, err := h.uc.UpdatePayment(c.UserContext(), GetUserID(c), in, requestMeta(c))
	if err != nil {
		return settingsError(c, err)
	}
	return c.JSON(out)
}

// ListAudit godoc
// @Summary      Log de auditoría de configuración
// @Tags         settings
// @Produce      json
// @Security     BearerAuth
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {object}  dto.AuditListResponse
// @Router       /api/settings/audit [get]
func (h *SettingsHandler) ListAudit(c *fiber.Ctx) error {
	page := pageFromQuery(c)
	out, err := h.uc.ListAudit(c.UserContext(), GetUserID(c), page.Limit, page.Offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

func settingsError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "COMPANY_REQUIRED", Message: err.Error()})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

func requestMeta(c *fiber.Ctx) dto.RequestMeta {
	return dto.RequestMeta{IPAddress: c.IP(), UserAgent: c.Get(fiber.HeaderUserAgent)}
}

func pageFromQuery(c *fiber.Ctx) dto.PageRequest {
	page := dto.PageRequest{Limit: c.QueryInt("limit", dto.DefaultPageLimit), Offset: c.QueryInt("offset", 0)}
	page.DefaultPage()
	return page
}
