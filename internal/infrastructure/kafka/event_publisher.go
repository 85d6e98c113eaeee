// Package kafka publica los eventos de dominio en un tópico de Kafka.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/jhoicas/Fulfillment-api/internal/application/ports"
	"github.com/jhoicas/Fulfillment-api/internal/domain/entity"
	"github.com/jhoicas/Fulfillment-api/pkg/config"
)

var _ ports.EventPublisher = (*EventPublisher)(nil)

// MessageWriter lo que el publicador necesita de *kafka.Writer.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// EventPublisher serializa eventos de dominio a JSON y los escribe en Kafka.
// La clave del mensaje es el pedido cuando existe, para conservar el orden por pedido.
type EventPublisher struct {
	w MessageWriter
}

// NewWriter construye el writer para los brokers y el tópico configurados.
func NewWriter(cfg config.KafkaConfig) *kafkago.Writer {
	return &kafkago.Writer{
		Addr:                   kafkago.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafkago.Hash{},
		BatchTimeout:           10 * time.Millisecond,
		BatchSize:              100,
		RequiredAcks:           kafkago.RequireOne,
		AllowAutoTopicCreation: true,
	}
}

// NewEventPublisher construye el publicador sobre w.
func NewEventPublisher(w MessageWriter) *EventPublisher {
	return &EventPublisher{w: w}
}

// Publish escribe todos los eventos en un solo lote.
func (p *EventPublisher) Publish(ctx context.Context, events ...entity.DomainEvent) error {
	if len(events) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, 0, len(events))
	for _, e := range events {
		payload, err := json.Marshal(e)
		if err != nil {
			return fmt.Errorf("serializar evento %s: %w", e.Type, err)
		}
		msgs = append(msgs, kafkago.Message{
			Key:     []byte(messageKey(e)),
			Value:   payload,
			Time:    e.OccurredAt,
			Headers: []kafkago.Header{{Key: "event_type", Value: []byte(e.Type)}},
		})
	}
	if err := p.w.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("kafka write: %w", err)
	}
	return nil
}

func messageKey(e entity.DomainEvent) string {
	if e.Type == entity.EventPostingStatusChanged {
		return e.AggregateID
	}
	if id, ok := e.Attributes["posting_id"]; ok && id != "" {
		return id
	}
	return e.AggregateID
}
