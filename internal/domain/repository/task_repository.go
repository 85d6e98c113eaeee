package repository

import (
	"context"

	"github.com/jhoicas/Fulfillment-api/internal/domain/entity"
)

// TaskRepository define el puerto de persistencia para Task.
type TaskRepository interface {
	Create(ctx context.Context, task *entity.Task) error
	GetByID(ctx context.Context, id string) (*entity.Task, error)
	GetForUpdate(ctx context.Context, id string) (*entity.Task, error)
	UpdateStatus(ctx context.Context, id string, status entity.TaskStatus) error
	// ListByPosting lista las tareas del pedido en orden de creación.
	ListByPosting(ctx context.Context, postingID string) ([]*entity.Task, error)
	// ListByPostingForUpdate igual que ListByPosting, bloqueando las filas.
	ListByPostingForUpdate(ctx context.Context, postingID string) ([]*entity.Task, error)
	ListByProcess(ctx context.Context, processID string) ([]*entity.Task, error)
	// ListByItem historial de tareas de una unidad en orden de creación.
	ListByItem(ctx context.Context, itemID string) ([]*entity.Task, error)
	// CountByPosting cuenta tareas in_work y completed del pedido (para el roll-up).
	CountByPosting(ctx context.Context, postingID string) (inWork, completed int, err error)
}
