package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Fulfillment-api/internal/application/dto"
	"github.com/jhoicas/Fulfillment-api/internal/application/posting"
	"github.com/jhoicas/Fulfillment-api/internal/domain"
)

// writeError traduce un error de aplicación a la respuesta HTTP correspondiente.
// El orden importa: UnfulfillableError también es un conflicto para el cliente,
// pero se reporta con su propio código.
func writeError(c *fiber.Ctx, err error) error {
	var unf *domain.UnfulfillableError
	switch {
	case errors.As(err, &unf), errors.Is(err, domain.ErrUnfulfillable):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "UNFULFILLABLE", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()})
	case errors.Is(err, posting.ErrPickListUnavailable):
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "PDF_UNAVAILABLE", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
