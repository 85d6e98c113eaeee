package fault_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Fulfillment-api/internal/infrastructure/fault"
)

func TestRandomLoss_Extremos(t *testing.T) {
	never := fault.NewRandomLoss(0)
	always := fault.NewRandomLoss(1)
	for i := 0; i < 100; i++ {
		assert.False(t, never.ItemLost(context.Background(), nil))
		assert.True(t, always.ItemLost(context.Background(), nil))
	}
}

func TestRandomLoss_AcotaProbabilidad(t *testing.T) {
	assert.False(t, fault.NewRandomLoss(-3).ItemLost(context.Background(), nil))
	assert.True(t, fault.NewRandomLoss(7).ItemLost(context.Background(), nil))
}

func TestScripted_ConsumeEnOrden(t *testing.T) {
	s := fault.NewScripted(true, false, true)
	ctx := context.Background()
	assert.True(t, s.ItemLost(ctx, nil))
	assert.False(t, s.ItemLost(ctx, nil))
	assert.True(t, s.ItemLost(ctx, nil))
	assert.False(t, s.ItemLost(ctx, nil))
}

func TestScripted_ConcurrenteConsumeCadaResultadoUnaVez(t *testing.T) {
	outcomes := make([]bool, 50)
	for i := range outcomes {
		outcomes[i] = i%2 == 0
	}
	s := fault.NewScripted(outcomes...)

	var lost atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if s.ItemLost(context.Background(), nil) {
				lost.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(25), lost.Load())
	assert.False(t, s.ItemLost(context.Background(), nil))
}

func TestFixed(t *testing.T) {
	assert.True(t, fault.Fixed(true).ItemLost(context.Background(), nil))
	assert.False(t, fault.Fixed(false).ItemLost(context.Background(), nil))
}
