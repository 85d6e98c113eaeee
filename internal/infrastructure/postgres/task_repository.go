package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Fulfillment-api/internal/domain"
	"github.com/jhoicas/Fulfillment-api/internal/domain/entity"
	"github.com/jhoicas/Fulfillment-api/internal/domain/repository"
)

var _ repository.TaskRepository = (*TaskRepo)(nil)

const taskColumns = `id, status, type, sku_id, stock, item_id, process_id, posting_id, created_at`

// TaskRepo implementación de TaskRepository sobre PostgreSQL (usable con pool o tx).
type TaskRepo struct {
	q Querier
}

// NewTaskRepository construye el adaptador de tareas. Pasar pool o tx (Querier).
func NewTaskRepository(q Querier) *TaskRepo {
	return &TaskRepo{q: q}
}

// Create persiste una tarea.
func (r *TaskRepo) Create(ctx context.Context, t *entity.Task) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO tasks (id, status, type, sku_id, stock, item_id, process_id, posting_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		t.ID, string(t.Status), string(t.Type), t.SKUID, string(t.Stock), t.ItemID, t.ProcessID, t.PostingID, t.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			// uq_tasks_picking_in_work: la unidad ya tiene un picking en curso
			return fmt.Errorf("insert task %s: %w", t.ID, domain.ErrConflict)
		}
		return fmt.Errorf("insert task: %w", err)
	}
	return nil
}

// GetByID obtiene una tarea. Retorna (nil, nil) si no existe.
func (r *TaskRepo) GetByID(ctx context.Context, id string) (*entity.Task, error) {
	return r.get(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = $1`, id)
}

// GetForUpdate obtiene la tarea bloqueando la fila.
func (r *TaskRepo) GetForUpdate(ctx context.Context, id string) (*entity.Task, error) {
	return r.get(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = $1 FOR UPDATE`, id)
}

func (r *TaskRepo) get(ctx context.Context, query, id string) (*entity.Task, error) {
	t, err := scanTask(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get task: %w", err)
	}
	return t, nil
}

// UpdateStatus cambia el estado de la tarea.
func (r *TaskRepo) UpdateStatus(ctx context.Context, id string, status entity.TaskStatus) error {
	cmd, err := r.q.Exec(ctx, `UPDATE tasks SET status = $2 WHERE id = $1`, id, string(status))
	if err != nil {
		return fmt.Errorf("update task status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("update task %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// ListByPosting lista las tareas del pedido en orden de creación.
func (r *TaskRepo) ListByPosting(ctx context.Context, postingID string) ([]*entity.Task, error) {
	return r.list(ctx, `SELECT `+taskColumns+` FROM tasks WHERE posting_id = $1 ORDER BY seq`, postingID)
}

// ListByPostingForUpdate igual que ListByPosting bloqueando las filas.
func (r *TaskRepo) ListByPostingForUpdate(ctx context.Context, postingID string) ([]*entity.Task, error) {
	return r.list(ctx, `SELECT `+taskColumns+` FROM tasks WHERE posting_id = $1 ORDER BY seq FOR UPDATE`, postingID)
}

// ListByProcess lista las tareas de una recepción.
func (r *TaskRepo) ListByProcess(ctx context.Context, processID string) ([]*entity.Task, error) {
	return r.list(ctx, `SELECT `+taskColumns+` FROM tasks WHERE process_id = $1 ORDER BY seq`, processID)
}

// ListByItem historial de tareas de una unidad.
func (r *TaskRepo) ListByItem(ctx context.Context, itemID string) ([]*entity.Task, error) {
	return r.list(ctx, `SELECT `+taskColumns+` FROM tasks WHERE item_id = $1 ORDER BY seq`, itemID)
}

// CountByPosting cuenta tareas in_work y completed del pedido.
func (r *TaskRepo) CountByPosting(ctx context.Context, postingID string) (int, int, error) {
	var inWork, completed int
	err := r.q.QueryRow(ctx, `
		SELECT
			COUNT(*) FILTER (WHERE status = 'in_work'),
			COUNT(*) FILTER (WHERE status = 'completed')
		FROM tasks WHERE posting_id = $1`, postingID).Scan(&inWork, &completed)
	if err != nil {
		return 0, 0, fmt.Errorf("count tasks by posting: %w", err)
	}
	return inWork, completed, nil
}

func (r *TaskRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Task, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()
	var list []*entity.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

func scanTask(row pgx.Row) (*entity.Task, error) {
	var t entity.Task
	err := row.Scan(&t.ID, &t.Status, &t.Type, &t.SKUID, &t.Stock, &t.ItemID, &t.ProcessID, &t.PostingID, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
