package ledger

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/jhoicas/Fulfillment-api/internal/application/dto"
	"github.com/jhoicas/Fulfillment-api/internal/domain"
	"github.com/jhoicas/Fulfillment-api/internal/domain/entity"
	"github.com/jhoicas/Fulfillment-api/internal/domain/pricing"
	"github.com/jhoicas/Fulfillment-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// AttachDiscount crea un descuento activo para el conjunto de SKU y reprecia sus unidades.
// Falla con ErrConflict si algún SKU no existe o ya tiene descuento activo.
func (uc *UseCase) AttachDiscount(ctx context.Context, skuIDs []string, percentage decimal.Decimal) (*dto.DiscountResponse, error) {
	if len(skuIDs) == 0 {
		return nil, fmt.Errorf("sku_ids vacío: %w", domain.ErrInvalidInput)
	}
	if !pricing.ValidFraction(percentage) {
		return nil, fmt.Errorf("percentage debe estar en (0,1): %w", domain.ErrInvalidInput)
	}
	ids := dedupSorted(skuIDs)

	discount := &entity.Discount{
		ID:         uuid.New().String(),
		Status:     entity.DiscountActive,
		Percentage: percentage,
		CreatedAt:  uc.now(),
	}
	err := uc.tx.Run(ctx, func(repos repository.Repositories) error {
		skus := make([]*entity.SKU, 0, len(ids))
		for _, id := range ids {
			sku, err := repos.SKUs.GetForUpdate(ctx, id)
			if err != nil {
				return err
			}
			if sku == nil {
				return fmt.Errorf("sku %s no existe: %w", id, domain.ErrConflict)
			}
			if sku.HasActiveDiscount() {
				return fmt.Errorf("sku %s ya tiene descuento activo: %w", id, domain.ErrConflict)
			}
			skus = append(skus, sku)
		}
		if err := repos.Discounts.Create(ctx, discount); err != nil {
			return err
		}
		for _, sku := range skus {
			if err := repos.SKUs.SetActiveDiscount(ctx, sku.ID, &discount.ID); err != nil {
				return err
			}
			if err := repriceSKU(ctx, repos, sku, percentage); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("discount_id", discount.ID).Int("skus", len(ids)).Str("percentage", percentage.String()).Msg("descuento aplicado")
	return toDiscountResponse(discount, ids), nil
}

// DetachDiscount finaliza el descuento, reprecia las unidades solo con su rebaja y
// limpia la referencia de cada SKU.
func (uc *UseCase) DetachDiscount(ctx context.Context, discountID string) error {
	err := uc.tx.Run(ctx, func(repos repository.Repositories) error {
		d, err := repos.Discounts.GetForUpdate(ctx, discountID)
		if err != nil {
			return err
		}
		if d == nil || d.Status == entity.DiscountFinished {
			return fmt.Errorf("descuento %s: %w", discountID, domain.ErrNotFound)
		}
		if err := repos.Discounts.UpdateStatus(ctx, d.ID, entity.DiscountFinished); err != nil {
			return err
		}
		skus, err := repos.SKUs.ListByDiscount(ctx, d.ID)
		if err != nil {
			return err
		}
		for _, listed := range skus {
			sku, err := repos.SKUs.GetForUpdate(ctx, listed.ID)
			if err != nil {
				return err
			}
			if err := repriceSKU(ctx, repos, sku, decimal.Zero); err != nil {
				return err
			}
			if err := repos.SKUs.SetActiveDiscount(ctx, sku.ID, nil); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	uc.log.Info().Str("discount_id", discountID).Msg("descuento finalizado")
	return nil
}

// GetDiscount retorna el descuento y los SKU que lo referencian (vacío si está finalizado).
func (uc *UseCase) GetDiscount(ctx context.Context, discountID string) (*dto.DiscountResponse, error) {
	var out *dto.DiscountResponse
	err := uc.tx.Run(ctx, func(repos repository.Repositories) error {
		d, err := repos.Discounts.GetByID(ctx, discountID)
		if err != nil {
			return err
		}
		if d == nil {
			return fmt.Errorf("descuento %s: %w", discountID, domain.ErrNotFound)
		}
		skus, err := repos.SKUs.ListByDiscount(ctx, d.ID)
		if err != nil {
			return err
		}
		ids := make([]string, 0, len(skus))
		for _, s := range skus {
			ids = append(ids, s.ID)
		}
		out = toDiscountResponse(d, ids)
		return nil
	})
	return out, err
}

func toDiscountResponse(d *entity.Discount, skuIDs []string) *dto.DiscountResponse {
	return &dto.DiscountResponse{
		ID:         d.ID,
		Status:     string(d.Status),
		Percentage: d.Percentage,
		SKUIDs:     skuIDs,
		CreatedAt:  d.CreatedAt,
	}
}

// dedupSorted ordena los ids para bloquear filas siempre en el mismo orden.
func dedupSorted(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
