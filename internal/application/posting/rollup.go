package posting

import (
	"context"
	"fmt"

	"github.com/jhoicas/Fulfillment-api/internal/domain"
	"github.com/jhoicas/Fulfillment-api/internal/domain/entity"
	"github.com/jhoicas/Fulfillment-api/internal/domain/repository"
)

// RollUp recalcula el estado del pedido a partir de sus tareas dentro de la transacción
// del llamador. Solo actúa mientras el pedido está in_item_pick. Retorna el estado previo,
// el nuevo y si hubo cambio.
func RollUp(ctx context.Context, repos repository.Repositories, postingID string) (from, to entity.PostingStatus, changed bool, err error) {
	p, err := repos.Postings.GetForUpdate(ctx, postingID)
	if err != nil {
		return "", "", false, err
	}
	if p == nil {
		return "", "", false, fmt.Errorf("pedido %s: %w", postingID, domain.ErrNotFound)
	}
	if p.Status != entity.PostingInItemPick {
		return p.Status, p.Status, false, nil
	}
	inWork, completed, err := repos.Tasks.CountByPosting(ctx, postingID)
	if err != nil {
		return "", "", false, err
	}
	next := entity.RollUpPostingStatus(p.Status, inWork, completed)
	if next == p.Status {
		return p.Status, p.Status, false, nil
	}
	if err := repos.Postings.UpdateStatus(ctx, postingID, next); err != nil {
		return "", "", false, err
	}
	return p.Status, next, true, nil
}
