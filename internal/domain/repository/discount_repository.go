package repository

import (
	"context"

	"github.com/jhoicas/Fulfillment-api/internal/domain/entity"
)

// DiscountRepository define el puerto de persistencia para descuentos.
type DiscountRepository interface {
	Create(ctx context.Context, discount *entity.Discount) error
	GetByID(ctx context.Context, id string) (*entity.Discount, error)
	GetForUpdate(ctx context.Context, id string) (*entity.Discount, error)
	UpdateStatus(ctx context.Context, id string, status entity.DiscountStatus) error
}
