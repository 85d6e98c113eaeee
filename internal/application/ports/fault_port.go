package ports

import (
	"context"

	"github.com/jhoicas/Fulfillment-api/internal/domain/entity"
)

// LossSimulator decide si la unidad de una tarea de picking se da por perdida
// al momento de recogerla (inyección de fallas).
type LossSimulator interface {
	ItemLost(ctx context.Context, task *entity.Task) bool
}
