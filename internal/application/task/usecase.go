// Package task es el motor de flujo de tareas: la única autoridad que completa o
// cancela tareas de placing y picking. Cada transición muta la unidad física a través
// del ledger y dispara el roll-up del pedido.
package task

import (
	"context"
	"time"

	"github.com/jhoicas/Fulfillment-api/internal/application/ports"
	"github.com/jhoicas/Fulfillment-api/internal/domain/entity"
	"github.com/jhoicas/Fulfillment-api/pkg/logger"
)

// DefaultLockTTL duración máxima del lock por tarea si no se configura otra.
const DefaultLockTTL = 10 * time.Second

// UseCase motor de tareas.
type UseCase struct {
	tx      ports.TxRunner
	locker  ports.Locker
	loss    ports.LossSimulator
	events  ports.EventPublisher
	log     *logger.Logger
	lockTTL time.Duration
	now     func() time.Time
}

// NewUseCase construye el motor. events puede ser nil (no se publican eventos).
func NewUseCase(
	tx ports.TxRunner,
	locker ports.Locker,
	loss ports.LossSimulator,
	events ports.EventPublisher,
	log *logger.Logger,
	lockTTL time.Duration,
) *UseCase {
	if events == nil {
		events = ports.NopPublisher{}
	}
	if lockTTL <= 0 {
		lockTTL = DefaultLockTTL
	}
	return &UseCase{
		tx:      tx,
		locker:  locker,
		loss:    loss,
		events:  events,
		log:     log,
		lockTTL: lockTTL,
		now:     time.Now,
	}
}

func (uc *UseCase) publish(ctx context.Context, events []entity.DomainEvent) {
	if len(events) == 0 {
		return
	}
	if err := uc.events.Publish(ctx, events...); err != nil {
		uc.log.Warn().Err(err).Int("events", len(events)).Msg("no se pudieron publicar eventos de tarea")
	}
}
