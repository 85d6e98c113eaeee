package ports

import (
	"context"

	"github.com/jhoicas/Fulfillment-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn retorna error se hace Rollback y ninguna fila queda modificada.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos repository.Repositories) error) error
}
