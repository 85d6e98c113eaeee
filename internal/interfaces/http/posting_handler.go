package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Fulfillment-api/internal/application/dto"
	"github.com/jhoicas/Fulfillment-api/internal/application/posting"
)

// PostingHandler maneja los pedidos.
type PostingHandler struct {
	uc *posting.UseCase
}

// NewPostingHandler construye el handler.
func NewPostingHandler(uc *posting.UseCase) *PostingHandler {
	return &PostingHandler{uc: uc}
}

// Create godoc
// @Summary      Crear pedido
// @Description  Reserva las unidades pedidas y crea una tarea de picking por unidad.
// @Tags         postings
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePostingRequest  true  "Unidades por SKU"
// @Success      201   {object}  dto.IDResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/postings [post]
func (h *PostingHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePostingRequest
	if err := bindBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Cancel godoc
// @Summary      Cancelar pedido
// @Description  Cancela el picking en curso y devuelve cada unidad al stock con una tarea de placing.
// @Tags         postings
// @Param        id   path  string  true  "ID del pedido"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/postings/{id}/cancel [post]
func (h *PostingHandler) Cancel(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return writeError(c, err)
	}
	if err := h.uc.Cancel(c.UserContext(), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetByID godoc
// @Summary      Obtener pedido
// @Tags         postings
// @Produce      json
// @Param        id   path  string  true  "ID del pedido"
// @Success      200  {object}  dto.PostingResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/postings/{id} [get]
func (h *PostingHandler) GetByID(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.GetInfo(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// PickList godoc
// @Summary      Hoja de picking en PDF
// @Tags         postings
// @Produce      application/pdf
// @Param        id   path  string  true  "ID del pedido"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/postings/{id}/pick-list [get]
func (h *PostingHandler) PickList(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return writeError(c, err)
	}
	b, filename, err := h.uc.PickListPDF(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="`+filename+`"`)
	return c.Send(b)
}
