package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockClass clasifica la condición física de una unidad. No es un ciclo de vida.
type StockClass string

const (
	StockValid    StockClass = "valid"
	StockDefect   StockClass = "defect"
	StockNotFound StockClass = "NotFound"
)

// Valid indica si el valor pertenece al enum.
func (c StockClass) Valid() bool {
	switch c {
	case StockValid, StockDefect, StockNotFound:
		return true
	}
	return false
}

// Orderable indica si la clase puede pedirse o recibirse (valid o defect).
func (c StockClass) Orderable() bool {
	return c == StockValid || c == StockDefect
}

// StockItem representa una unidad física en bodega.
// Reserved es true si y solo si existe exactamente una tarea de picking in_work que la referencia.
// OnShelf es false mientras la unidad está fuera de su ubicación (ya recogida o a la espera de recolocación).
type StockItem struct {
	ID          string
	SKUID       string
	Stock       StockClass
	Reserved    bool
	OnShelf     bool
	Markdown    decimal.Decimal // fracción de rebaja por unidad (0 si no tiene)
	ActualPrice decimal.Decimal // precio efectivo, solo lo escribe el ledger
	CreatedAt   time.Time
}

// Reservable indica si la unidad puede asignarse a un pedido de la clase indicada.
func (i *StockItem) Reservable(class StockClass) bool {
	return i.OnShelf && !i.Reserved && i.Stock == class
}
