package posting

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/jhoicas/Fulfillment-api/internal/application/dto"
	"github.com/jhoicas/Fulfillment-api/internal/domain"
	"github.com/jhoicas/Fulfillment-api/internal/domain/entity"
	"github.com/jhoicas/Fulfillment-api/internal/domain/repository"
)

// orderedUnit unidad pedida explícitamente.
type orderedUnit struct {
	skuID  string
	itemID string
	class  entity.StockClass
}

// Create valida el pedido completo y, solo si todo es válido, reserva las unidades,
// crea el pedido en in_item_pick y una tarea de picking por unidad. Todo en una transacción:
// las unidades se bloquean en orden de id y se reservan con compare-and-swap.
func (uc *UseCase) Create(ctx context.Context, in dto.CreatePostingRequest) (*dto.IDResponse, error) {
	units, err := flattenOrder(in)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	posting := &entity.Posting{ID: uuid.New().String(), Status: entity.PostingInItemPick, CreatedAt: now}

	err = uc.tx.Run(ctx, func(repos repository.Repositories) error {
		for _, g := range in.OrderedGoods {
			sku, err := repos.SKUs.GetByID(ctx, g.SKU)
			if err != nil {
				return err
			}
			if sku == nil || sku.IsHidden {
				return fmt.Errorf("sku %s no existe o está oculto: %w", g.SKU, domain.ErrNotFound)
			}
		}

		locked := make([]orderedUnit, len(units))
		copy(locked, units)
		sort.Slice(locked, func(i, j int) bool { return locked[i].itemID < locked[j].itemID })
		for _, u := range locked {
			item, err := repos.Items.GetForUpdate(ctx, u.itemID)
			if err != nil {
				return err
			}
			if err := checkReservable(u, item); err != nil {
				return err
			}
		}

		if err := repos.Postings.Create(ctx, posting); err != nil {
			return err
		}
		for _, u := range units {
			ok, err := repos.Items.TryReserve(ctx, u.itemID)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("unidad %s reservada por otro pedido: %w", u.itemID, domain.ErrConflict)
			}
			task := entity.NewPickingTask(u.skuID, u.class, u.itemID, &posting.ID, now)
			if err := repos.Tasks.Create(ctx, task); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("posting_id", posting.ID).Int("units", len(units)).Msg("pedido creado")
	return &dto.IDResponse{ID: posting.ID}, nil
}

func checkReservable(u orderedUnit, item *entity.StockItem) error {
	switch {
	case item == nil:
		return fmt.Errorf("unidad %s: %w", u.itemID, domain.ErrNotFound)
	case item.SKUID != u.skuID:
		return fmt.Errorf("unidad %s no pertenece al sku %s: %w", u.itemID, u.skuID, domain.ErrConflict)
	case item.Stock != u.class:
		return fmt.Errorf("unidad %s es %s, se pidió %s: %w", u.itemID, item.Stock, u.class, domain.ErrConflict)
	case item.Reserved:
		return fmt.Errorf("unidad %s ya está reservada: %w", u.itemID, domain.ErrConflict)
	case !item.OnShelf:
		return fmt.Errorf("unidad %s no está en estante: %w", u.itemID, domain.ErrConflict)
	}
	return nil
}

// flattenOrder expande el pedido en unidades, en orden de la solicitud (valid antes que defect).
func flattenOrder(in dto.CreatePostingRequest) ([]orderedUnit, error) {
	if len(in.OrderedGoods) == 0 {
		return nil, fmt.Errorf("ordered_goods vacío: %w", domain.ErrInvalidInput)
	}
	var units []orderedUnit
	seen := make(map[string]struct{})
	add := func(skuID, itemID string, class entity.StockClass) error {
		if _, dup := seen[itemID]; dup {
			return fmt.Errorf("unidad %s repetida en el pedido: %w", itemID, domain.ErrInvalidInput)
		}
		seen[itemID] = struct{}{}
		units = append(units, orderedUnit{skuID: skuID, itemID: itemID, class: class})
		return nil
	}
	for _, g := range in.OrderedGoods {
		if len(g.FromValidIDs)+len(g.FromDefectIDs) == 0 {
			return nil, fmt.Errorf("sku %s sin unidades: %w", g.SKU, domain.ErrInvalidInput)
		}
		for _, id := range g.FromValidIDs {
			if err := add(g.SKU, id, entity.StockValid); err != nil {
				return nil, err
			}
		}
		for _, id := range g.FromDefectIDs {
			if err := add(g.SKU, id, entity.StockDefect); err != nil {
				return nil, err
			}
		}
	}
	return units, nil
}
