package task

import (
	"context"
	"fmt"

	"github.com/jhoicas/Fulfillment-api/internal/application/dto"
	"github.com/jhoicas/Fulfillment-api/internal/domain"
	"github.com/jhoicas/Fulfillment-api/internal/domain/entity"
	"github.com/jhoicas/Fulfillment-api/internal/domain/repository"
)

// Get retorna la proyección de una tarea.
func (uc *UseCase) Get(ctx context.Context, taskID string) (*dto.TaskResponse, error) {
	var t *entity.Task
	err := uc.tx.Run(ctx, func(repos repository.Repositories) error {
		var err error
		t, err = repos.Tasks.GetByID(ctx, taskID)
		return err
	})
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, fmt.Errorf("tarea %s: %w", taskID, domain.ErrNotFound)
	}
	return &dto.TaskResponse{
		ID:        t.ID,
		Status:    string(t.Status),
		Type:      string(t.Type),
		SKUID:     t.SKUID,
		Target:    dto.TaskTargetDTO{Stock: string(t.Stock), ID: t.ItemID},
		PostingID: t.PostingID,
		ProcessID: t.ProcessID,
		CreatedAt: t.CreatedAt,
	}, nil
}
