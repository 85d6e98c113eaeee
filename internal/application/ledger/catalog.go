package ledger

import (
	"context"
	"fmt"

	"github.com/jhoicas/Fulfillment-api/internal/application/dto"
	"github.com/jhoicas/Fulfillment-api/internal/domain"
	"github.com/jhoicas/Fulfillment-api/internal/domain/entity"
	"github.com/jhoicas/Fulfillment-api/internal/domain/pricing"
	"github.com/jhoicas/Fulfillment-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// SetMarkdown aplica una rebaja a la unidad, la pasa a defect y la reprecia.
func (uc *UseCase) SetMarkdown(ctx context.Context, itemID string, percentage decimal.Decimal) error {
	if !pricing.ValidFraction(percentage) {
		return fmt.Errorf("percentage debe estar en (0,1): %w", domain.ErrInvalidInput)
	}
	err := uc.tx.Run(ctx, func(repos repository.Repositories) error {
		// se lee la unidad sin bloqueo para conocer su SKU y respetar el orden SKU → unidad
		probe, err := repos.Items.GetByID(ctx, itemID)
		if err != nil {
			return err
		}
		if probe == nil {
			return fmt.Errorf("unidad %s: %w", itemID, domain.ErrNotFound)
		}
		sku, err := repos.SKUs.GetForUpdate(ctx, probe.SKUID)
		if err != nil {
			return err
		}
		if sku == nil {
			return fmt.Errorf("sku %s: %w", probe.SKUID, domain.ErrNotFound)
		}
		item, err := repos.Items.GetForUpdate(ctx, itemID)
		if err != nil {
			return err
		}
		item.Markdown = percentage
		item.Stock = entity.StockDefect
		if err := repos.Items.Update(ctx, item); err != nil {
			return err
		}
		discount, err := DiscountFraction(ctx, repos, sku)
		if err != nil {
			return err
		}
		return repriceItem(ctx, repos, sku.BasePrice, discount, item)
	})
	if err != nil {
		return err
	}
	uc.log.Info().Str("item_id", itemID).Str("markdown", percentage.String()).Msg("rebaja aplicada")
	return nil
}

// SetBasePrice cambia el precio base del SKU y reprecia todas sus unidades.
func (uc *UseCase) SetBasePrice(ctx context.Context, skuID string, price decimal.Decimal) error {
	if price.IsNegative() {
		return fmt.Errorf("base_price no puede ser negativo: %w", domain.ErrInvalidInput)
	}
	return uc.tx.Run(ctx, func(repos repository.Repositories) error {
		sku, err := repos.SKUs.GetForUpdate(ctx, skuID)
		if err != nil {
			return err
		}
		if sku == nil {
			return fmt.Errorf("sku %s: %w", skuID, domain.ErrNotFound)
		}
		if err := repos.SKUs.UpdateBasePrice(ctx, skuID, price); err != nil {
			return err
		}
		sku.BasePrice = price
		discount, err := DiscountFraction(ctx, repos, sku)
		if err != nil {
			return err
		}
		return repriceSKU(ctx, repos, sku, discount)
	})
}

// MoveToNotFound marca la unidad como perdida. No toca reserva ni precio.
func (uc *UseCase) MoveToNotFound(ctx context.Context, itemID string) error {
	err := uc.tx.Run(ctx, func(repos repository.Repositories) error {
		item, err := repos.Items.GetForUpdate(ctx, itemID)
		if err != nil {
			return err
		}
		if item == nil {
			return fmt.Errorf("unidad %s: %w", itemID, domain.ErrNotFound)
		}
		return MarkNotFound(ctx, repos, item)
	})
	if err != nil {
		return err
	}
	uc.log.Warn().Str("item_id", itemID).Msg("unidad marcada como NotFound")
	return nil
}

// SetHidden oculta o publica un SKU. Falla con ErrConflict si ya está en ese estado.
func (uc *UseCase) SetHidden(ctx context.Context, skuID string, hidden bool) error {
	return uc.tx.Run(ctx, func(repos repository.Repositories) error {
		sku, err := repos.SKUs.GetForUpdate(ctx, skuID)
		if err != nil {
			return err
		}
		if sku == nil {
			return fmt.Errorf("sku %s: %w", skuID, domain.ErrNotFound)
		}
		if sku.IsHidden == hidden {
			return fmt.Errorf("sku %s ya tiene is_hidden=%t: %w", skuID, hidden, domain.ErrConflict)
		}
		return repos.SKUs.SetHidden(ctx, skuID, hidden)
	})
}

// GetSkuInfo retorna el SKU con el conteo de unidades y la suma de sus precios efectivos.
// Las unidades NotFound no cuentan.
func (uc *UseCase) GetSkuInfo(ctx context.Context, skuID string) (*dto.SkuResponse, error) {
	var out *dto.SkuResponse
	err := uc.tx.Run(ctx, func(repos repository.Repositories) error {
		sku, err := repos.SKUs.GetByID(ctx, skuID)
		if err != nil {
			return err
		}
		if sku == nil {
			return fmt.Errorf("sku %s: %w", skuID, domain.ErrNotFound)
		}
		items, err := repos.Items.ListBySKU(ctx, skuID)
		if err != nil {
			return err
		}
		total := decimal.Zero
		count := 0
		for _, i := range items {
			if i.Stock == entity.StockNotFound {
				continue
			}
			total = total.Add(i.ActualPrice)
			count++
		}
		out = &dto.SkuResponse{
			ID:               sku.ID,
			BasePrice:        sku.BasePrice,
			ActualPriceTotal: total,
			Count:            count,
			IsHidden:         sku.IsHidden,
			ActiveDiscountID: sku.ActiveDiscountID,
			CreatedAt:        sku.CreatedAt,
		}
		return nil
	})
	return out, err
}

// GetItemInfo retorna una unidad.
func (uc *UseCase) GetItemInfo(ctx context.Context, itemID string) (*dto.ItemResponse, error) {
	var out *dto.ItemResponse
	err := uc.tx.Run(ctx, func(repos repository.Repositories) error {
		item, err := repos.Items.GetByID(ctx, itemID)
		if err != nil {
			return err
		}
		if item == nil {
			return fmt.Errorf("unidad %s: %w", itemID, domain.ErrNotFound)
		}
		r := toItemResponse(item)
		out = &r
		return nil
	})
	return out, err
}

// ListItemsBySku lista las unidades de un SKU en orden de creación.
func (uc *UseCase) ListItemsBySku(ctx context.Context, skuID string) (*dto.ItemListResponse, error) {
	var out *dto.ItemListResponse
	err := uc.tx.Run(ctx, func(repos repository.Repositories) error {
		sku, err := repos.SKUs.GetByID(ctx, skuID)
		if err != nil {
			return err
		}
		if sku == nil {
			return fmt.Errorf("sku %s: %w", skuID, domain.ErrNotFound)
		}
		items, err := repos.Items.ListBySKU(ctx, skuID)
		if err != nil {
			return err
		}
		list := make([]dto.ItemResponse, 0, len(items))
		for _, i := range items {
			list = append(list, toItemResponse(i))
		}
		out = &dto.ItemListResponse{Items: list}
		return nil
	})
	return out, err
}

func toItemResponse(i *entity.StockItem) dto.ItemResponse {
	return dto.ItemResponse{
		ID:          i.ID,
		SKUID:       i.SKUID,
		Stock:       string(i.Stock),
		Reserved:    i.Reserved,
		OnShelf:     i.OnShelf,
		Markdown:    i.Markdown,
		ActualPrice: i.ActualPrice,
		CreatedAt:   i.CreatedAt,
	}
}
