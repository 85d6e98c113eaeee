package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Fulfillment-api/internal/application/dto"
	"github.com/jhoicas/Fulfillment-api/internal/application/ledger"
)

// StockHandler maneja precios y consultas de SKUs y unidades físicas.
type StockHandler struct {
	uc *ledger.UseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *ledger.UseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

// SetMarkdown godoc
// @Summary      Rebajar unidad
// @Description  Aplica un markdown a la unidad; la unidad pasa a stock defect.
// @Tags         items
// @Accept       json
// @Param        id    path  string               true  "ID de la unidad"
// @Param        body  body  dto.MarkdownRequest  true  "Porcentaje en [0,1)"
// @Success      204
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/items/{id}/markdown [post]
func (h *StockHandler) SetMarkdown(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return writeError(c, err)
	}
	var in dto.MarkdownRequest
	if err := bindBody(c, &in); err != nil {
		return writeError(c, err)
	}
	if err := h.uc.SetMarkdown(c.UserContext(), id, in.Percentage); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// MoveToNotFound godoc
// @Summary      Marcar unidad como no encontrada
// @Tags         items
// @Param        id   path  string  true  "ID de la unidad"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/items/{id}/not-found [post]
func (h *StockHandler) MoveToNotFound(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return writeError(c, err)
	}
	if err := h.uc.MoveToNotFound(c.UserContext(), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetItem godoc
// @Summary      Obtener unidad
// @Tags         items
// @Produce      json
// @Param        id   path  string  true  "ID de la unidad"
// @Success      200  {object}  dto.ItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{id} [get]
func (h *StockHandler) GetItem(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.GetItemInfo(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// SetPrice godoc
// @Summary      Fijar precio base del SKU
// @Tags         skus
// @Accept       json
// @Param        id    path  string                  true  "ID del SKU"
// @Param        body  body  dto.SetSkuPriceRequest  true  "Precio base >= 0"
// @Success      204
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/skus/{id}/price [put]
func (h *StockHandler) SetPrice(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return writeError(c, err)
	}
	var in dto.SetSkuPriceRequest
	if err := bindBody(c, &in); err != nil {
		return writeError(c, err)
	}
	if err := h.uc.SetBasePrice(c.UserContext(), id, in.BasePrice); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// SetHidden godoc
// @Summary      Ocultar o mostrar SKU
// @Tags         skus
// @Accept       json
// @Param        id    path  string                   true  "ID del SKU"
// @Param        body  body  dto.SetSkuHiddenRequest  true  "is_hidden"
// @Success      204
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/skus/{id}/hidden [put]
func (h *StockHandler) SetHidden(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return writeError(c, err)
	}
	var in dto.SetSkuHiddenRequest
	if err := bindBody(c, &in); err != nil {
		return writeError(c, err)
	}
	if err := h.uc.SetHidden(c.UserContext(), id, in.IsHidden); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetSku godoc
// @Summary      Obtener SKU
// @Tags         skus
// @Produce      json
// @Param        id   path  string  true  "ID del SKU"
// @Success      200  {object}  dto.SkuResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/skus/{id} [get]
func (h *StockHandler) GetSku(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.GetSkuInfo(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListItems godoc
// @Summary      Listar unidades de un SKU
// @Tags         skus
// @Produce      json
// @Param        id   path  string  true  "ID del SKU"
// @Success      200  {object}  dto.ItemListResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/skus/{id}/items [get]
func (h *StockHandler) ListItems(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.ListItemsBySku(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
