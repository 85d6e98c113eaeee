package pricing

import "github.com/shopspring/decimal"

var one = decimal.NewFromInt(1)

// ActualPrice implementa la regla de precio efectivo (servicio de dominio).
// PrecioEfectivo = PrecioBase * (1 - max(descuento, rebaja)), redondeado a 2 decimales.
// Las reducciones no se acumulan: gana la mayor.
func ActualPrice(basePrice, discount, markdown decimal.Decimal) decimal.Decimal {
	reduction := decimal.Max(discount, markdown)
	if reduction.LessThan(decimal.Zero) {
		reduction = decimal.Zero
	}
	if reduction.GreaterThan(one) {
		reduction = one
	}
	return basePrice.Mul(one.Sub(reduction)).Round(2)
}

// ValidFraction indica si p está en el intervalo abierto (0,1).
func ValidFraction(p decimal.Decimal) bool {
	return p.GreaterThan(decimal.Zero) && p.LessThan(one)
}
