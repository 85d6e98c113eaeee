package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateDiscountRequest body para POST /api/discounts.
type CreateDiscountRequest struct {
	SKUIDs     []string        `json:"sku_ids" validate:"required,min=1,dive,uuid"`
	Percentage decimal.Decimal `json:"percentage"`
}

// DiscountResponse detalle de un descuento y los SKU que lo referencian.
type DiscountResponse struct {
	ID         string          `json:"id"`
	Status     string          `json:"status"`
	Percentage decimal.Decimal `json:"percentage"`
	SKUIDs     []string        `json:"sku_ids"`
	CreatedAt  time.Time       `json:"created_at"`
}
