package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Cartera-api/internal/application/dto"
	"github.com/jhoicas/Cartera-api/internal/application/usecase"
	"github.com/jhoicas/Cartera-api/internal/domain"
)

// DataHandler datasets CSV auxiliares en solo lectura.
type DataHandler struct {
	uc *usecase.DatasetUseCase
}

// NewDataHandler construye el handler.
func NewDataHandler(uc *usecase.DatasetUseCase) *DataHandler {
	return &DataHandler{uc: uc}
}

// Get godoc
// @Summary      Leer dataset
// @Tags         data
// @Produce      json
// @Security     BearerAuth
// @Param        dataset  path   string  true   "payments, disputes, risk_scores, ..."
// @Param        limit    query  int     false  "Límite"  default(20)
// @Param        offset   query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.DatasetPageDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/data/{dataset} [get]
func (h *DataHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Read(c.UserContext(), c.Params("dataset"), pageFromQuery(c))
	if err != nil {
		if errors.Is(err, domain.ErrDatasetNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "DATASET_NOT_FOUND", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
