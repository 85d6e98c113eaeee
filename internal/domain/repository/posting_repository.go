package repository

import (
	"context"

	"github.com/jhoicas/Fulfillment-api/internal/domain/entity"
)

// PostingRepository define el puerto de persistencia para pedidos.
type PostingRepository interface {
	Create(ctx context.Context, posting *entity.Posting) error
	GetByID(ctx context.Context, id string) (*entity.Posting, error)
	GetForUpdate(ctx context.Context, id string) (*entity.Posting, error)
	UpdateStatus(ctx context.Context, id string, status entity.PostingStatus) error
}
