package posting

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/Fulfillment-api/internal/application/ledger"
	"github.com/jhoicas/Fulfillment-api/internal/domain"
	"github.com/jhoicas/Fulfillment-api/internal/domain/entity"
	"github.com/jhoicas/Fulfillment-api/internal/domain/repository"
)

// Cancel cancela un pedido in_item_pick. Toda tarea del pedido que no estuviera ya
// canceled pasa a canceled, incluidas las recogidas; las in_work liberan su unidad.
// Cada unidad de esas tareas vuelve a la cola de colocación con exactamente una tarea
// de placing sin pedido ni proceso.
func (uc *UseCase) Cancel(ctx context.Context, postingID string) error {
	now := uc.now()
	var compensated int
	err := uc.tx.Run(ctx, func(repos repository.Repositories) error {
		p, err := repos.Postings.GetByID(ctx, postingID)
		if err != nil {
			return err
		}
		if p == nil {
			return fmt.Errorf("pedido %s: %w", postingID, domain.ErrNotFound)
		}
		if p.Status != entity.PostingInItemPick {
			return fmt.Errorf("pedido %s en estado %s: %w", postingID, p.Status, domain.ErrConflict)
		}

		tasks, err := repos.Tasks.ListByPostingForUpdate(ctx, postingID)
		if err != nil {
			return err
		}
		// las tareas ya canceled fueron reemplazadas o liberadas antes y no se compensan
		var open []*entity.Task
		for _, t := range tasks {
			if t.Status != entity.TaskCanceled {
				open = append(open, t)
			}
		}
		sort.Slice(open, func(i, j int) bool { return open[i].ItemID < open[j].ItemID })
		for _, t := range open {
			inWork := t.Status == entity.TaskInWork
			if err := repos.Tasks.UpdateStatus(ctx, t.ID, entity.TaskCanceled); err != nil {
				return err
			}
			if t.Type != entity.TaskPicking {
				continue
			}
			if inWork {
				item, err := repos.Items.GetForUpdate(ctx, t.ItemID)
				if err != nil {
					return err
				}
				if item == nil {
					return fmt.Errorf("unidad %s de la tarea %s: %w", t.ItemID, t.ID, domain.ErrNotFound)
				}
				if err := ledger.Release(ctx, repos, item, false); err != nil {
					return err
				}
			}
			placing := entity.NewPlacingTask(t.SKUID, t.Stock, t.ItemID, nil, now)
			if err := repos.Tasks.Create(ctx, placing); err != nil {
				return err
			}
			compensated++
		}

		if _, err := repos.Postings.GetForUpdate(ctx, postingID); err != nil {
			return err
		}
		return repos.Postings.UpdateStatus(ctx, postingID, entity.PostingCanceled)
	})
	if err != nil {
		return err
	}
	uc.log.Info().Str("posting_id", postingID).Int("compensating_tasks", compensated).Msg("pedido cancelado")
	uc.publish(ctx, StatusChangedEvent(postingID, entity.PostingInItemPick, entity.PostingCanceled, now))
	return nil
}
