// Package ledger es el dueño de SKU y StockItem: precios, descuentos, rebajas y
// clase de stock. Es el único paquete que escribe actual_price.
package ledger

import (
	"time"

	"github.com/jhoicas/Fulfillment-api/internal/application/ports"
	"github.com/jhoicas/Fulfillment-api/pkg/logger"
)

// UseCase casos de uso del libro de stock.
type UseCase struct {
	tx  ports.TxRunner
	log *logger.Logger
	now func() time.Time
}

// NewUseCase construye el caso de uso del ledger.
func NewUseCase(tx ports.TxRunner, log *logger.Logger) *UseCase {
	return &UseCase{tx: tx, log: log, now: time.Now}
}
