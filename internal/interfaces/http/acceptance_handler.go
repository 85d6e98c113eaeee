package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Fulfillment-api/internal/application/acceptance"
	"github.com/jhoicas/Fulfillment-api/internal/application/dto"
)

// AcceptanceHandler maneja las recepciones de mercancía.
type AcceptanceHandler struct {
	uc *acceptance.UseCase
}

// NewAcceptanceHandler construye el handler.
func NewAcceptanceHandler(uc *acceptance.UseCase) *AcceptanceHandler {
	return &AcceptanceHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar recepción
// @Description  Crea una tarea de placing por cada unidad recibida.
// @Tags         acceptances
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateAcceptanceRequest  true  "Unidades por SKU y clase"
// @Success      201   {object}  dto.IDResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/acceptances [post]
func (h *AcceptanceHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateAcceptanceRequest
	if err := bindBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener recepción
// @Tags         acceptances
// @Produce      json
// @Param        id   path  string  true  "ID de la recepción"
// @Success      200  {object}  dto.AcceptanceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/acceptances/{id} [get]
func (h *AcceptanceHandler) GetByID(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Get(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
