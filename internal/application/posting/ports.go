package posting

import (
	"time"

	"github.com/shopspring/decimal"
)

// PickListLine una unidad a recoger.
type PickListLine struct {
	TaskID      string
	SKUID       string
	ItemID      string
	Stock       string
	Status      string
	ActualPrice decimal.Decimal
}

// PickList datos de la hoja de picking de un pedido.
type PickList struct {
	PostingID string
	Status    string
	CreatedAt time.Time
	Cost      decimal.Decimal
	Lines     []PickListLine
}

// PickListGenerator renderiza la hoja de picking (PDF).
type PickListGenerator interface {
	Generate(list PickList) ([]byte, error)
}
