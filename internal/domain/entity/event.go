package entity

import "time"

// Tipos de eventos de dominio publicados tras cada commit.
const (
	EventTaskFinished         = "task.finished"
	EventPostingStatusChanged = "posting.status_changed"
)

// DomainEvent notificación hacia otros servicios (ej. Kafka).
type DomainEvent struct {
	Type        string            `json:"type"`
	AggregateID string            `json:"aggregate_id"`
	Attributes  map[string]string `json:"attributes,omitempty"`
	OccurredAt  time.Time         `json:"occurred_at"`
}
