package ports

import (
	"context"
	"time"
)

// Unlock libera un lock obtenido con Locker.Obtain.
type Unlock func(ctx context.Context) error

// Locker serializa operaciones sobre un mismo agregado (tarea, pedido) entre procesos.
type Locker interface {
	// Obtain bloquea key durante ttl como máximo. Retorna domain.ErrConflict si el lock
	// sigue tomado por otro proceso después de los reintentos.
	Obtain(ctx context.Context, key string, ttl time.Duration) (Unlock, error)
}
