package task

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Fulfillment-api/internal/application/dto"
	"github.com/jhoicas/Fulfillment-api/internal/application/ledger"
	"github.com/jhoicas/Fulfillment-api/internal/application/posting"
	"github.com/jhoicas/Fulfillment-api/internal/domain"
	"github.com/jhoicas/Fulfillment-api/internal/domain/entity"
	"github.com/jhoicas/Fulfillment-api/internal/domain/repository"
)

// outcome resultado de una transición ya confirmada.
type outcome struct {
	task          *entity.Task
	final         entity.TaskStatus
	substituteID  string
	unfulfillable bool
	events        []entity.DomainEvent
}

// Finish lleva una tarea in_work a completed o canceled. El estado final puede diferir
// del solicitado: un picking cuya unidad se perdió termina canceled.
//
// Retorna:
//   - domain.ErrInvalidInput   si status no es completed ni canceled.
//   - domain.ErrNotFound       si la tarea no existe.
//   - domain.ErrConflict       si la tarea no está in_work.
//   - *domain.UnfulfillableError si la unidad se perdió y no hay reemplazo; la tarea
//     ya quedó canceled y el pedido recalculado.
func (uc *UseCase) Finish(ctx context.Context, taskID string, status entity.TaskStatus) (*dto.FinishTaskResponse, error) {
	if status != entity.TaskCompleted && status != entity.TaskCanceled {
		return nil, fmt.Errorf("status %q no es un estado final: %w", status, domain.ErrInvalidInput)
	}

	// el sorteo de pérdida y la transición forman un solo paso por tarea
	unlock, err := uc.locker.Obtain(ctx, "task:"+taskID, uc.lockTTL)
	if err != nil {
		return nil, fmt.Errorf("lock tarea %s: %w", taskID, err)
	}
	defer func() {
		if err := unlock(context.Background()); err != nil {
			uc.log.Warn().Err(err).Str("task_id", taskID).Msg("no se pudo liberar el lock de la tarea")
		}
	}()

	if status == entity.TaskCompleted {
		if err := uc.simulateLoss(ctx, taskID); err != nil {
			return nil, err
		}
	}

	var out outcome
	err = uc.tx.Run(ctx, func(repos repository.Repositories) error {
		var err error
		out, err = uc.transition(ctx, repos, taskID, status)
		return err
	})
	if err != nil {
		return nil, err
	}
	uc.publish(ctx, out.events)

	t := out.task
	ev := uc.log.Info
	if out.unfulfillable {
		ev = uc.log.Error
	}
	ev().Str("task_id", t.ID).Str("type", string(t.Type)).Str("requested", string(status)).
		Str("final", string(out.final)).Str("substitute_item_id", out.substituteID).Msg("tarea finalizada")

	if out.unfulfillable {
		return nil, &domain.UnfulfillableError{TaskID: t.ID, ItemID: t.ItemID, PostingID: deref(t.PostingID)}
	}
	return &dto.FinishTaskResponse{ID: t.ID, Status: string(out.final)}, nil
}

// simulateLoss confirma en su propia transacción la pérdida de la unidad de un picking.
// También rechaza temprano tareas inexistentes o terminales.
func (uc *UseCase) simulateLoss(ctx context.Context, taskID string) error {
	var lostItem string
	err := uc.tx.Run(ctx, func(repos repository.Repositories) error {
		t, err := loadInWork(ctx, repos, taskID)
		if err != nil {
			return err
		}
		if t.Type != entity.TaskPicking || !uc.loss.ItemLost(ctx, t) {
			return nil
		}
		item, err := repos.Items.GetForUpdate(ctx, t.ItemID)
		if err != nil {
			return err
		}
		if item == nil || item.Stock == entity.StockNotFound {
			return nil
		}
		lostItem = item.ID
		return ledger.MarkNotFound(ctx, repos, item)
	})
	if err != nil {
		return err
	}
	if lostItem != "" {
		uc.log.Warn().Str("task_id", taskID).Str("item_id", lostItem).Msg("unidad no encontrada durante el picking")
	}
	return nil
}

func (uc *UseCase) transition(ctx context.Context, repos repository.Repositories, taskID string, status entity.TaskStatus) (outcome, error) {
	t, err := loadInWork(ctx, repos, taskID)
	if err != nil {
		return outcome{}, err
	}
	out := outcome{task: t, final: status}

	item, err := repos.Items.GetForUpdate(ctx, t.ItemID)
	if err != nil {
		return outcome{}, err
	}

	switch {
	case t.Type == entity.TaskPlacing && status == entity.TaskCompleted:
		if item == nil {
			if _, err := ledger.RegisterItem(ctx, repos, t.SKUID, t.ItemID, t.Stock, uc.now()); err != nil {
				return outcome{}, err
			}
			break
		}
		if item.Stock == entity.StockNotFound {
			uc.log.Warn().Str("task_id", t.ID).Str("item_id", item.ID).Msg("recolocación de una unidad NotFound; la clase no cambia")
		}
		if err := ledger.Restock(ctx, repos, item); err != nil {
			return outcome{}, err
		}

	case t.Type == entity.TaskPlacing && status == entity.TaskCanceled:
		// sin cambios de stock

	case t.Type == entity.TaskPicking && status == entity.TaskCanceled:
		if item != nil {
			if err := ledger.Release(ctx, repos, item, item.OnShelf); err != nil {
				return outcome{}, err
			}
		}

	case t.Type == entity.TaskPicking && status == entity.TaskCompleted:
		if item == nil {
			return outcome{}, fmt.Errorf("unidad %s de la tarea %s: %w", t.ItemID, t.ID, domain.ErrNotFound)
		}
		if item.Stock != entity.StockNotFound {
			// la unidad salió del estante con el pedido
			if err := ledger.Release(ctx, repos, item, false); err != nil {
				return outcome{}, err
			}
			break
		}
		if err := uc.replenish(ctx, repos, t, item, &out); err != nil {
			return outcome{}, err
		}
	}

	if err := repos.Tasks.UpdateStatus(ctx, t.ID, out.final); err != nil {
		return outcome{}, err
	}
	now := uc.now()
	out.events = append(out.events, finishedEvent(t, status, out.final, now))

	if t.PostingID != nil {
		from, to, changed, err := posting.RollUp(ctx, repos, *t.PostingID)
		if err != nil {
			return outcome{}, err
		}
		if changed {
			out.events = append(out.events, posting.StatusChangedEvent(*t.PostingID, from, to, now))
		}
	}
	return out, nil
}

// replenish reemplaza una unidad perdida por otra reservable del mismo SKU y clase.
// La tarea original siempre termina canceled; sin reemplazo queda marcada como no cumplible.
func (uc *UseCase) replenish(ctx context.Context, repos repository.Repositories, t *entity.Task, lost *entity.StockItem, out *outcome) error {
	out.final = entity.TaskCanceled
	if err := ledger.Release(ctx, repos, lost, false); err != nil {
		return err
	}

	sub, err := repos.Items.FindSubstitute(ctx, t.SKUID, t.Stock, lost.ID)
	if err != nil {
		return err
	}
	if sub == nil {
		out.unfulfillable = true
		return nil
	}
	ok, err := repos.Items.TryReserve(ctx, sub.ID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("reemplazo %s tomado por otra operación: %w", sub.ID, domain.ErrConflict)
	}
	next := entity.NewPickingTask(t.SKUID, t.Stock, sub.ID, t.PostingID, uc.now())
	if err := repos.Tasks.Create(ctx, next); err != nil {
		return err
	}
	out.substituteID = sub.ID
	return nil
}

func loadInWork(ctx context.Context, repos repository.Repositories, taskID string) (*entity.Task, error) {
	t, err := repos.Tasks.GetForUpdate(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, fmt.Errorf("tarea %s: %w", taskID, domain.ErrNotFound)
	}
	if t.Status != entity.TaskInWork {
		return nil, fmt.Errorf("tarea %s en estado %s: %w", taskID, t.Status, domain.ErrConflict)
	}
	return t, nil
}

func finishedEvent(t *entity.Task, requested, final entity.TaskStatus, at time.Time) entity.DomainEvent {
	attrs := map[string]string{
		"type":      string(t.Type),
		"requested": string(requested),
		"status":    string(final),
		"item_id":   t.ItemID,
		"sku_id":    t.SKUID,
	}
	if t.PostingID != nil {
		attrs["posting_id"] = *t.PostingID
	}
	return entity.DomainEvent{Type: entity.EventTaskFinished, AggregateID: t.ID, Attributes: attrs, OccurredAt: at}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
