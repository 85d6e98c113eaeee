package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrConflict     = errors.New("conflicto con el estado actual")
	// ErrUnfulfillable indica que una unidad perdida durante el picking no tiene reemplazo.
	// Es una falla operativa, distinta de ErrNotFound.
	ErrUnfulfillable = errors.New("tarea de picking sin unidad de reemplazo")
)

// UnfulfillableError detalla qué tarea quedó sin reemplazo. La tarea ya fue
// persistida como cancelada cuando se retorna este error.
type UnfulfillableError struct {
	TaskID    string
	ItemID    string
	PostingID string
}

func (e *UnfulfillableError) Error() string {
	return fmt.Sprintf("%s (task=%s, item=%s, posting=%s)", ErrUnfulfillable.Error(), e.TaskID, e.ItemID, e.PostingID)
}

// Unwrap permite errors.Is(err, ErrUnfulfillable).
func (e *UnfulfillableError) Unwrap() error { return ErrUnfulfillable }
