package ports

import (
	"context"

	"github.com/jhoicas/Fulfillment-api/internal/domain/entity"
)

// EventPublisher publica eventos de dominio después del commit (best-effort).
type EventPublisher interface {
	Publish(ctx context.Context, events ...entity.DomainEvent) error
}

// NopPublisher descarta los eventos. Se usa cuando Kafka no está configurado.
type NopPublisher struct{}

// Publish no hace nada.
func (NopPublisher) Publish(context.Context, ...entity.DomainEvent) error { return nil }
