package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Fulfillment-api/internal/domain"
	"github.com/jhoicas/Fulfillment-api/internal/domain/entity"
	"github.com/jhoicas/Fulfillment-api/internal/domain/pricing"
	"github.com/jhoicas/Fulfillment-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// Operaciones dentro de una transacción abierta por el llamador (motor de tareas, pedidos).
// Orden de bloqueo: SKU antes que unidad.

// RegisterItem crea la unidad de una colocación completada. Si el SKU no existe lo crea
// con precio base 0. La unidad queda en estante, sin reserva, sin rebaja y con precio
// calculado con el descuento activo del SKU.
func RegisterItem(ctx context.Context, repos repository.Repositories, skuID, itemID string, class entity.StockClass, now time.Time) (*entity.StockItem, error) {
	if !class.Orderable() {
		return nil, fmt.Errorf("clase %q no admitida en colocación: %w", class, domain.ErrInvalidInput)
	}
	if err := repos.SKUs.CreateIfAbsent(ctx, &entity.SKU{ID: skuID, BasePrice: decimal.Zero, CreatedAt: now}); err != nil {
		return nil, err
	}
	sku, err := repos.SKUs.GetForUpdate(ctx, skuID)
	if err != nil {
		return nil, err
	}
	if sku == nil {
		return nil, fmt.Errorf("sku %s: %w", skuID, domain.ErrNotFound)
	}
	discount, err := DiscountFraction(ctx, repos, sku)
	if err != nil {
		return nil, err
	}
	item := &entity.StockItem{
		ID:          itemID,
		SKUID:       skuID,
		Stock:       class,
		Reserved:    false,
		OnShelf:     true,
		Markdown:    decimal.Zero,
		ActualPrice: pricing.ActualPrice(sku.BasePrice, discount, decimal.Zero),
		CreatedAt:   now,
	}
	if err := repos.Items.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// Restock devuelve una unidad existente al estante sin reserva. No cambia la clase.
func Restock(ctx context.Context, repos repository.Repositories, item *entity.StockItem) error {
	item.Reserved = false
	item.OnShelf = true
	return repos.Items.Update(ctx, item)
}

// Release quita la reserva. onShelf=false indica que la unidad salió de su ubicación.
func Release(ctx context.Context, repos repository.Repositories, item *entity.StockItem, onShelf bool) error {
	item.Reserved = false
	item.OnShelf = onShelf
	return repos.Items.Update(ctx, item)
}

// MarkNotFound pasa la unidad a NotFound sin tocar reserva ni precio.
func MarkNotFound(ctx context.Context, repos repository.Repositories, item *entity.StockItem) error {
	if item.Stock == entity.StockNotFound {
		return fmt.Errorf("unidad %s ya está en NotFound: %w", item.ID, domain.ErrConflict)
	}
	item.Stock = entity.StockNotFound
	return repos.Items.Update(ctx, item)
}

// DiscountFraction retorna el porcentaje del descuento activo del SKU, o cero.
func DiscountFraction(ctx context.Context, repos repository.Repositories, sku *entity.SKU) (decimal.Decimal, error) {
	if !sku.HasActiveDiscount() {
		return decimal.Zero, nil
	}
	d, err := repos.Discounts.GetByID(ctx, *sku.ActiveDiscountID)
	if err != nil {
		return decimal.Zero, err
	}
	if d == nil || d.Status != entity.DiscountActive {
		return decimal.Zero, nil
	}
	return d.Percentage, nil
}

// repriceSKU recalcula actual_price de todas las unidades del SKU con el descuento dado.
func repriceSKU(ctx context.Context, repos repository.Repositories, sku *entity.SKU, discount decimal.Decimal) error {
	items, err := repos.Items.ListBySKU(ctx, sku.ID)
	if err != nil {
		return err
	}
	for _, item := range items {
		if err := repriceItem(ctx, repos, sku.BasePrice, discount, item); err != nil {
			return err
		}
	}
	return nil
}

func repriceItem(ctx context.Context, repos repository.Repositories, base, discount decimal.Decimal, item *entity.StockItem) error {
	price := pricing.ActualPrice(base, discount, item.Markdown)
	if price.Equal(item.ActualPrice) {
		return nil
	}
	item.ActualPrice = price
	return repos.Items.UpdatePrice(ctx, item.ID, price)
}
