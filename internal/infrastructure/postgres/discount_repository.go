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

var _ repository.DiscountRepository = (*DiscountRepo)(nil)

// DiscountRepo implementación de DiscountRepository sobre PostgreSQL (usable con pool o tx).
type DiscountRepo struct {
	q Querier
}

// NewDiscountRepository construye el adaptador de descuentos. Pasar pool o tx (Querier).
func NewDiscountRepository(q Querier) *DiscountRepo {
	return &DiscountRepo{q: q}
}

// Create persiste un descuento.
func (r *DiscountRepo) Create(ctx context.Context, d *entity.Discount) error {
	_, err := r.q.Exec(ctx, `INSERT INTO discounts (id, status, percentage, created_at) VALUES ($1, $2, $3, $4)`,
		d.ID, string(d.Status), d.Percentage, d.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert discount: %w", err)
	}
	return nil
}

// GetByID obtiene un descuento. Retorna (nil, nil) si no existe.
func (r *DiscountRepo) GetByID(ctx context.Context, id string) (*entity.Discount, error) {
	return r.get(ctx, `SELECT id, status, percentage, created_at FROM discounts WHERE id = $1`, id)
}

// GetForUpdate obtiene el descuento bloqueando la fila.
func (r *DiscountRepo) GetForUpdate(ctx context.Context, id string) (*entity.Discount, error) {
	return r.get(ctx, `SELECT id, status, percentage, created_at FROM discounts WHERE id = $1 FOR UPDATE`, id)
}

func (r *DiscountRepo) get(ctx context.Context, query, id string) (*entity.Discount, error) {
	var d entity.Discount
	err := r.q.QueryRow(ctx, query, id).Scan(&d.ID, &d.Status, &d.Percentage, &d.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get discount: %w", err)
	}
	return &d, nil
}

// UpdateStatus cambia el estado del descuento.
func (r *DiscountRepo) UpdateStatus(ctx context.Context, id string, status entity.DiscountStatus) error {
	cmd, err := r.q.Exec(ctx, `UPDATE discounts SET status = $2 WHERE id = $1`, id, string(status))
	if err != nil {
		return fmt.Errorf("update discount status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("update discount %s: %w", id, domain.ErrNotFound)
	}
	return nil
}
