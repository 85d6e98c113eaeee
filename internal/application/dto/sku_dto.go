package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SetSkuPriceRequest body para PUT /api/skus/:id/price.
type SetSkuPriceRequest struct {
	BasePrice decimal.Decimal `json:"base_price"`
}

// SetSkuHiddenRequest body para PUT /api/skus/:id/hidden.
type SetSkuHiddenRequest struct {
	IsHidden bool `json:"is_hidden"`
}

// MarkdownRequest body para POST /api/items/:id/markdown.
type MarkdownRequest struct {
	Percentage decimal.Decimal `json:"percentage"`
}

// SkuResponse detalle agregado de un SKU.
type SkuResponse struct {
	ID               string          `json:"id"`
	BasePrice        decimal.Decimal `json:"base_price"`
	ActualPriceTotal decimal.Decimal `json:"actual_price"` // suma de precios efectivos de sus unidades
	Count            int             `json:"count"`
	IsHidden         bool            `json:"is_hidden"`
	ActiveDiscountID *string         `json:"active_discount,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
}

// ItemResponse detalle de una unidad física.
type ItemResponse struct {
	ID          string          `json:"id"`
	SKUID       string          `json:"sku_id"`
	Stock       string          `json:"stock"`
	Reserved    bool            `json:"reserved_state"`
	OnShelf     bool            `json:"on_shelf"`
	Markdown    decimal.Decimal `json:"markdown"`
	ActualPrice decimal.Decimal `json:"actual_price"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ItemListResponse unidades de un SKU.
type ItemListResponse struct {
	Items []ItemResponse `json:"items"`
}
