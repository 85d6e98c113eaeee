package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SKU representa una entrada del catálogo. Se crea la primera vez que una unidad
// física de ese SKU completa su colocación (placing) y nunca se elimina.
type SKU struct {
	ID               string
	BasePrice        decimal.Decimal // precio base (>= 0)
	ActiveDiscountID *string         // descuento activo (a lo sumo uno)
	IsHidden         bool            // los SKU ocultos no se pueden pedir
	CreatedAt        time.Time
}

// HasActiveDiscount indica si el SKU referencia un descuento.
func (s *SKU) HasActiveDiscount() bool {
	return s.ActiveDiscountID != nil && *s.ActiveDiscountID != ""
}
