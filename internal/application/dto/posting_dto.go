package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderedGoodsRequest unidades pedidas de un SKU, por clase.
type OrderedGoodsRequest struct {
	SKU           string   `json:"sku" validate:"required,uuid"`
	FromValidIDs  []string `json:"from_valid_ids" validate:"dive,uuid"`
	FromDefectIDs []string `json:"from_defect_ids" validate:"dive,uuid"`
}

// CreatePostingRequest body para POST /api/postings.
type CreatePostingRequest struct {
	OrderedGoods []OrderedGoodsRequest `json:"ordered_goods" validate:"required,min=1,dive"`
}

// OrderedGoodsDTO unidades de un SKU dentro de un pedido.
type OrderedGoodsDTO struct {
	SKU           string   `json:"sku"`
	FromValidIDs  []string `json:"from_valid_ids"`
	FromDefectIDs []string `json:"from_defect_ids"`
}

// PostingResponse detalle de un pedido.
type PostingResponse struct {
	ID           string            `json:"id"`
	Status       string            `json:"status"`
	CreatedAt    time.Time         `json:"created_at"`
	Cost         decimal.Decimal   `json:"cost"`
	OrderedGoods []OrderedGoodsDTO `json:"ordered_goods"`
	NotFound     []string          `json:"not_found"`
	Tasks        []TaskSummaryDTO  `json:"task_ids"`
}
