package repository

import (
	"context"

	"github.com/jhoicas/Fulfillment-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// SKURepository define el puerto de persistencia para SKU (DIP).
// Los métodos Get retornan (nil, nil) si el registro no existe.
type SKURepository interface {
	// CreateIfAbsent inserta el SKU si no existe (creación perezosa en placing).
	CreateIfAbsent(ctx context.Context, sku *entity.SKU) error
	GetByID(ctx context.Context, id string) (*entity.SKU, error)
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.SKU, error)
	ListByDiscount(ctx context.Context, discountID string) ([]*entity.SKU, error)
	UpdateBasePrice(ctx context.Context, id string, price decimal.Decimal) error
	SetActiveDiscount(ctx context.Context, id string, discountID *string) error
	SetHidden(ctx context.Context, id string, hidden bool) error
}
