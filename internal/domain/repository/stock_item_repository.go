package repository

import (
	"context"

	"github.com/jhoicas/Fulfillment-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// StockItemRepository define el puerto para las unidades físicas.
// Usado dentro de transacciones para garantizar consistencia.
type StockItemRepository interface {
	Create(ctx context.Context, item *entity.StockItem) error
	GetByID(ctx context.Context, id string) (*entity.StockItem, error)
	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.StockItem, error)
	ListBySKU(ctx context.Context, skuID string) ([]*entity.StockItem, error)
	// Update persiste clase, reserva, ubicación y rebaja (no el precio).
	Update(ctx context.Context, item *entity.StockItem) error
	UpdatePrice(ctx context.Context, id string, price decimal.Decimal) error
	// TryReserve es un compare-and-swap reserved=false→true sobre una unidad en estante.
	// Retorna false si otra operación la reservó antes.
	TryReserve(ctx context.Context, id string) (bool, error)
	// FindSubstitute busca una unidad reservable del mismo SKU y clase, distinta de excludeID,
	// y la bloquea. Retorna nil si no hay.
	FindSubstitute(ctx context.Context, skuID string, class entity.StockClass, excludeID string) (*entity.StockItem, error)
}
