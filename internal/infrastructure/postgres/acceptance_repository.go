package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Fulfillment-api/internal/domain/entity"
	"github.com/jhoicas/Fulfillment-api/internal/domain/repository"
)

var _ repository.AcceptanceRepository = (*AcceptanceRepo)(nil)

// AcceptanceRepo implementación de AcceptanceRepository sobre PostgreSQL (usable con pool o tx).
type AcceptanceRepo struct {
	q Querier
}

// NewAcceptanceRepository construye el adaptador de recepciones. Pasar pool o tx (Querier).
func NewAcceptanceRepository(q Querier) *AcceptanceRepo {
	return &AcceptanceRepo{q: q}
}

// Create persiste una recepción.
func (r *AcceptanceRepo) Create(ctx context.Context, a *entity.Acceptance) error {
	if _, err := r.q.Exec(ctx, `INSERT INTO acceptances (id, created_at) VALUES ($1, $2)`, a.ID, a.CreatedAt); err != nil {
		return fmt.Errorf("insert acceptance: %w", err)
	}
	return nil
}

// GetByID obtiene una recepción. Retorna (nil, nil) si no existe.
func (r *AcceptanceRepo) GetByID(ctx context.Context, id string) (*entity.Acceptance, error) {
	var a entity.Acceptance
	err := r.q.QueryRow(ctx, `SELECT id, created_at FROM acceptances WHERE id = $1`, id).Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get acceptance: %w", err)
	}
	return &a, nil
}
