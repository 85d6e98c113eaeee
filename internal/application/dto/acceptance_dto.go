package dto

import "time"

// ItemToAccept línea de una recepción: count unidades de un SKU en una clase.
type ItemToAccept struct {
	SKUID string `json:"sku_id" validate:"required,uuid"`
	Stock string `json:"stock" validate:"required,oneof=valid defect"`
	Count int    `json:"count" validate:"min=1,max=10000"`
}

// CreateAcceptanceRequest body para POST /api/acceptances.
type CreateAcceptanceRequest struct {
	ItemsToAccept []ItemToAccept `json:"items_to_accept" validate:"required,min=1,dive"`
}

// AcceptedCountDTO conteo de unidades por SKU y clase dentro de una recepción.
type AcceptedCountDTO struct {
	SKUID string `json:"sku_id"`
	Stock string `json:"stock"`
	Count int    `json:"count"`
}

// AcceptanceResponse detalle de una recepción.
type AcceptanceResponse struct {
	ID        string             `json:"id"`
	CreatedAt time.Time          `json:"created_at"`
	Accepted  []AcceptedCountDTO `json:"accepted"`
	Tasks     []TaskSummaryDTO   `json:"task_ids"`
}
