package pricing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Fulfillment-api/internal/domain/pricing"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestActualPrice_SinReducciones(t *testing.T) {
	got := pricing.ActualPrice(d("100"), decimal.Zero, decimal.Zero)
	assert.True(t, d("100.00").Equal(got), "sin descuento ni rebaja el precio es el base, got %s", got)
}

// La mayor reducción gana; no se acumulan.
func TestActualPrice_NoAcumula(t *testing.T) {
	got := pricing.ActualPrice(d("100"), d("0.20"), d("0.30"))
	assert.True(t, d("70.00").Equal(got), "debe aplicar solo la rebaja del 30%%, got %s", got)

	got = pricing.ActualPrice(d("100"), d("0.30"), d("0.20"))
	assert.True(t, d("70.00").Equal(got), "debe aplicar solo el descuento del 30%%, got %s", got)

	stacked := d("100").Mul(d("0.8")).Mul(d("0.7"))
	assert.False(t, stacked.Equal(got))
}

func TestActualPrice_Descuento25(t *testing.T) {
	got := pricing.ActualPrice(d("100"), d("0.25"), decimal.Zero)
	assert.Equal(t, "75.00", got.StringFixed(2))
}

func TestActualPrice_RedondeoDosDecimales(t *testing.T) {
	got := pricing.ActualPrice(d("19.99"), d("0.333"), decimal.Zero)
	// 19.99 * 0.667 = 13.33333
	assert.Equal(t, "13.33", got.StringFixed(2))
	assert.Equal(t, int32(-2), got.Exponent())
}

// Idempotencia: recalcular con las mismas entradas produce el mismo valor.
func TestActualPrice_Idempotente(t *testing.T) {
	first := pricing.ActualPrice(d("57.35"), d("0.15"), d("0.05"))
	second := pricing.ActualPrice(d("57.35"), d("0.15"), d("0.05"))
	assert.True(t, first.Equal(second))
	assert.Equal(t, first.String(), second.String())
}

func TestActualPrice_PrecioBaseCero(t *testing.T) {
	got := pricing.ActualPrice(decimal.Zero, d("0.5"), decimal.Zero)
	assert.True(t, got.IsZero())
}

func TestValidFraction(t *testing.T) {
	assert.True(t, pricing.ValidFraction(d("0.10")))
	assert.True(t, pricing.ValidFraction(d("0.99")))
	assert.False(t, pricing.ValidFraction(decimal.Zero))
	assert.False(t, pricing.ValidFraction(d("1")))
	assert.False(t, pricing.ValidFraction(d("-0.1")))
}
