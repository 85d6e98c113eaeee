// Package posting orquesta el ciclo de vida de los pedidos: creación con reserva de
// unidades, cancelación compensatoria y roll-up del estado a partir de sus tareas.
package posting

import (
	"context"
	"time"

	"github.com/jhoicas/Fulfillment-api/internal/application/ports"
	"github.com/jhoicas/Fulfillment-api/internal/domain/entity"
	"github.com/jhoicas/Fulfillment-api/pkg/logger"
)

// UseCase casos de uso de pedidos.
type UseCase struct {
	tx     ports.TxRunner
	events ports.EventPublisher
	pdf    PickListGenerator
	log    *logger.Logger
	now    func() time.Time
}

// NewUseCase construye el orquestador. pdf puede ser nil si no se sirve la hoja de picking.
func NewUseCase(tx ports.TxRunner, events ports.EventPublisher, pdf PickListGenerator, log *logger.Logger) *UseCase {
	if events == nil {
		events = ports.NopPublisher{}
	}
	return &UseCase{tx: tx, events: events, pdf: pdf, log: log, now: time.Now}
}

func (uc *UseCase) publish(ctx context.Context, events ...entity.DomainEvent) {
	if len(events) == 0 {
		return
	}
	if err := uc.events.Publish(ctx, events...); err != nil {
		uc.log.Warn().Err(err).Int("events", len(events)).Msg("no se pudieron publicar eventos de pedido")
	}
}

// StatusChangedEvent construye el evento de cambio de estado de un pedido.
func StatusChangedEvent(postingID string, from, to entity.PostingStatus, at time.Time) entity.DomainEvent {
	return entity.DomainEvent{
		Type:        entity.EventPostingStatusChanged,
		AggregateID: postingID,
		Attributes:  map[string]string{"from": string(from), "to": string(to)},
		OccurredAt:  at,
	}
}
