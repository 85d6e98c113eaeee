package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DiscountStatus estado de una campaña de descuento. finished es terminal.
type DiscountStatus string

const (
	DiscountActive   DiscountStatus = "active"
	DiscountFinished DiscountStatus = "finished"
)

// Discount campaña promocional aplicada a uno o más SKU.
type Discount struct {
	ID         string
	Status     DiscountStatus
	Percentage decimal.Decimal // fracción en (0,1)
	CreatedAt  time.Time
}
