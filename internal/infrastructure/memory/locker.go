package memory

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/Fulfillment-api/internal/application/ports"
)

var _ ports.Locker = (*Locker)(nil)

// Locker implementa ports.Locker dentro de un solo proceso: un canal de capacidad 1 por clave.
// El ttl se ignora; el lock dura hasta que se llama a Unlock o se cancela el contexto de Obtain.
type Locker struct {
	mu    sync.Mutex
	slots map[string]chan struct{}
}

// NewLocker construye el locker en proceso.
func NewLocker() *Locker {
	return &Locker{slots: make(map[string]chan struct{})}
}

// Obtain espera hasta tomar key o hasta que ctx termine.
func (l *Locker) Obtain(ctx context.Context, key string, _ time.Duration) (ports.Unlock, error) {
	l.mu.Lock()
	slot, ok := l.slots[key]
	if !ok {
		slot = make(chan struct{}, 1)
		l.slots[key] = slot
	}
	l.mu.Unlock()

	select {
	case slot <- struct{}{}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	var once sync.Once
	return func(context.Context) error {
		once.Do(func() { <-slot })
		return nil
	}, nil
}
