// Package fault simula pérdidas de inventario durante el picking.
package fault

import (
	"context"
	"math/rand/v2"

	"github.com/jhoicas/Fulfillment-api/internal/application/ports"
	"github.com/jhoicas/Fulfillment-api/internal/domain/entity"
)

// DefaultLossProbability probabilidad de pérdida por defecto.
const DefaultLossProbability = 0.10

var _ ports.LossSimulator = (*RandomLoss)(nil)

// RandomLoss da por perdida la unidad con probabilidad fija p.
type RandomLoss struct {
	p    float64
	draw func() float64
}

// NewRandomLoss construye el simulador. p se acota a [0,1].
func NewRandomLoss(p float64) *RandomLoss {
	switch {
	case p < 0:
		p = 0
	case p > 1:
		p = 1
	}
	return &RandomLoss{p: p, draw: rand.Float64}
}

// ItemLost sortea la pérdida.
func (r *RandomLoss) ItemLost(_ context.Context, _ *entity.Task) bool {
	return r.draw() < r.p
}
