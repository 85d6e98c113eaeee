package kafka_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Fulfillment-api/internal/domain/entity"
	"github.com/jhoicas/Fulfillment-api/internal/infrastructure/kafka"
)

type fakeWriter struct {
	msgs []kafkago.Message
	err  error
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafkago.Message) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func TestPublish_ClavePorPedido(t *testing.T) {
	w := &fakeWriter{}
	p := kafka.NewEventPublisher(w)
	at := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	err := p.Publish(context.Background(),
		entity.DomainEvent{Type: entity.EventTaskFinished, AggregateID: "t1", Attributes: map[string]string{"posting_id": "p1", "status": "completed"}, OccurredAt: at},
		entity.DomainEvent{Type: entity.EventTaskFinished, AggregateID: "t2", OccurredAt: at},
		entity.DomainEvent{Type: entity.EventPostingStatusChanged, AggregateID: "p1", Attributes: map[string]string{"to": "sent"}, OccurredAt: at},
	)
	require.NoError(t, err)
	require.Len(t, w.msgs, 3)

	assert.Equal(t, "p1", string(w.msgs[0].Key))
	assert.Equal(t, "t2", string(w.msgs[1].Key))
	assert.Equal(t, "p1", string(w.msgs[2].Key))
	assert.Equal(t, "event_type", w.msgs[2].Headers[0].Key)
	assert.Equal(t, entity.EventPostingStatusChanged, string(w.msgs[2].Headers[0].Value))

	var decoded entity.DomainEvent
	require.NoError(t, json.Unmarshal(w.msgs[0].Value, &decoded))
	assert.Equal(t, "completed", decoded.Attributes["status"])
	assert.True(t, decoded.OccurredAt.Equal(at))
}

func TestPublish_SinEventosNoEscribe(t *testing.T) {
	w := &fakeWriter{err: errors.New("no debería llamarse")}
	assert.NoError(t, kafka.NewEventPublisher(w).Publish(context.Background()))
}

func TestPublish_PropagaError(t *testing.T) {
	w := &fakeWriter{err: errors.New("broker caído")}
	err := kafka.NewEventPublisher(w).Publish(context.Background(), entity.DomainEvent{Type: "x", AggregateID: "a"})
	assert.ErrorContains(t, err, "broker caído")
}
