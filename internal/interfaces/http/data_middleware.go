package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Cartera-api/internal/application/dto"
)

// readinessChecker es el contrato mínimo que necesita el middleware para saber si la
// cartera está en memoria. Lo implementa *csvstore.Store.
type readinessChecker interface {
	Ready(ctx context.Context) error
}

// RequireData corta con 503 DATA_UNAVAILABLE si los datos de cartera no pueden cargarse,
// antes de llegar al handler.
func RequireData(checker readinessChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := checker.Ready(c.UserContext()); err != nil {
			return dataUnavailable(c)
		}
		return c.Next()
	}
}

func dataUnavailable(c *fiber.Ctx) error {
	return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
		Code:    "DATA_UNAVAILABLE",
		Message: "datos de cartera no disponibles, intente más tarde",
	})
}
