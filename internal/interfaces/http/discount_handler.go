package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Fulfillment-api/internal/application/dto"
	"github.com/jhoicas/Fulfillment-api/internal/application/ledger"
)

// DiscountHandler maneja los descuentos promocionales por SKU.
type DiscountHandler struct {
	uc *ledger.UseCase
}

// NewDiscountHandler construye el handler.
func NewDiscountHandler(uc *ledger.UseCase) *DiscountHandler {
	return &DiscountHandler{uc: uc}
}

// Create godoc
// @Summary      Crear descuento
// @Description  Asocia un descuento activo a todos los SKU indicados y recalcula sus precios.
// @Tags         discounts
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateDiscountRequest  true  "SKUs y porcentaje en (0,1)"
// @Success      201   {object}  dto.DiscountResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/discounts [post]
func (h *DiscountHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateDiscountRequest
	if err := bindBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.AttachDiscount(c.UserContext(), in.SKUIDs, in.Percentage)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Cancel godoc
// @Summary      Finalizar descuento
// @Tags         discounts
// @Param        id   path  string  true  "ID del descuento"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/discounts/{id}/cancel [post]
func (h *DiscountHandler) Cancel(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return writeError(c, err)
	}
	if err := h.uc.DetachDiscount(c.UserContext(), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetByID godoc
// @Summary      Obtener descuento
// @Tags         discounts
// @Produce      json
// @Param        id   path  string  true  "ID del descuento"
// @Success      200  {object}  dto.DiscountResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/discounts/{id} [get]
func (h *DiscountHandler) GetByID(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.GetDiscount(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
