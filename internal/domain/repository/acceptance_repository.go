package repository

import (
	"context"

	"github.com/jhoicas/Fulfillment-api/internal/domain/entity"
)

// AcceptanceRepository define el puerto de persistencia para lotes de recepción.
type AcceptanceRepository interface {
	Create(ctx context.Context, acceptance *entity.Acceptance) error
	GetByID(ctx context.Context, id string) (*entity.Acceptance, error)
}
