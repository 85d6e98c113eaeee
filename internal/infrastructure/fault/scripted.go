package fault

import (
	"context"
	"sync"

	"github.com/jhoicas/Fulfillment-api/internal/application/ports"
	"github.com/jhoicas/Fulfillment-api/internal/domain/entity"
)

var (
	_ ports.LossSimulator = Fixed(false)
	_ ports.LossSimulator = (*Scripted)(nil)
)

// Fixed siempre retorna el mismo resultado. Útil para entornos de prueba.
type Fixed bool

// ItemLost retorna el valor fijo.
func (f Fixed) ItemLost(context.Context, *entity.Task) bool { return bool(f) }

// Scripted retorna los resultados en orden y luego false.
// Es seguro para uso concurrente: cada resultado se consume una sola vez.
type Scripted struct {
	mu       sync.Mutex
	outcomes []bool
}

// NewScripted construye un simulador con resultados predefinidos.
func NewScripted(outcomes ...bool) *Scripted {
	return &Scripted{outcomes: outcomes}
}

// ItemLost consume el siguiente resultado.
func (s *Scripted) ItemLost(context.Context, *entity.Task) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.outcomes) == 0 {
		return false
	}
	out := s.outcomes[0]
	s.outcomes = s.outcomes[1:]
	return out
}
