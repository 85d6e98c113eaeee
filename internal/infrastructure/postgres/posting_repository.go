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

var _ repository.PostingRepository = (*PostingRepo)(nil)

// PostingRepo implementación de PostingRepository sobre PostgreSQL (usable con pool o tx).
type PostingRepo struct {
	q Querier
}

// NewPostingRepository construye el adaptador de pedidos. Pasar pool o tx (Querier).
func NewPostingRepository(q Querier) *PostingRepo {
	return &PostingRepo{q: q}
}

// Create persiste un pedido.
func (r *PostingRepo) Create(ctx context.Context, p *entity.Posting) error {
	_, err := r.q.Exec(ctx, `INSERT INTO postings (id, status, created_at) VALUES ($1, $2, $3)`,
		p.ID, string(p.Status), p.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert posting: %w", err)
	}
	return nil
}

// GetByID obtiene un pedido. Retorna (nil, nil) si no existe.
func (r *PostingRepo) GetByID(ctx context.Context, id string) (*entity.Posting, error) {
	return r.get(ctx, `SELECT id, status, created_at FROM postings WHERE id = $1`, id)
}

// GetForUpdate obtiene el pedido bloqueando la fila.
func (r *PostingRepo) GetForUpdate(ctx context.Context, id string) (*entity.Posting, error) {
	return r.get(ctx, `SELECT id, status, created_at FROM postings WHERE id = $1 FOR UPDATE`, id)
}

func (r *PostingRepo) get(ctx context.Context, query, id string) (*entity.Posting, error) {
	var p entity.Posting
	err := r.q.QueryRow(ctx, query, id).Scan(&p.ID, &p.Status, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get posting: %w", err)
	}
	return &p, nil
}

// UpdateStatus cambia el estado del pedido.
func (r *PostingRepo) UpdateStatus(ctx context.Context, id string, status entity.PostingStatus) error {
	cmd, err := r.q.Exec(ctx, `UPDATE postings SET status = $2 WHERE id = $1`, id, string(status))
	if err != nil {
		return fmt.Errorf("update posting status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("update posting %s: %w", id, domain.ErrNotFound)
	}
	return nil
}
