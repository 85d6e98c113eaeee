package entity

import (
	"time"

	"github.com/google/uuid"
)

// TaskStatus estado de una tarea. in_work es el único estado no terminal.
type TaskStatus string

const (
	TaskInWork    TaskStatus = "in_work"
	TaskCompleted TaskStatus = "completed"
	TaskCanceled  TaskStatus = "canceled"
)

// Valid indica si el valor pertenece al enum.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskInWork, TaskCompleted, TaskCanceled:
		return true
	}
	return false
}

// IsTerminal retorna true si no hay más transiciones posibles.
func (s TaskStatus) IsTerminal() bool {
	return s == TaskCompleted || s == TaskCanceled
}

// TaskType tipo de trabajo de la tarea.
type TaskType string

const (
	TaskPlacing TaskType = "placing" // intake: de recepción a stock disponible
	TaskPicking TaskType = "picking" // asignación de una unidad reservada a un pedido
)

// Task unidad de trabajo sobre una unidad física.
// ProcessID (aceptación) solo aplica a placing; PostingID referencia el pedido.
type Task struct {
	ID        string
	Status    TaskStatus
	Type      TaskType
	SKUID     string
	Stock     StockClass // clase solicitada
	ItemID    string     // puede no existir aún para placing
	ProcessID *string
	PostingID *string
	CreatedAt time.Time
}

// NewPlacingTask construye una tarea de colocación in_work.
func NewPlacingTask(skuID string, stock StockClass, itemID string, processID *string, now time.Time) *Task {
	return &Task{
		ID:        uuid.New().String(),
		Status:    TaskInWork,
		Type:      TaskPlacing,
		SKUID:     skuID,
		Stock:     stock,
		ItemID:    itemID,
		ProcessID: processID,
		CreatedAt: now,
	}
}

// NewPickingTask construye una tarea de picking in_work para un pedido.
func NewPickingTask(skuID string, stock StockClass, itemID string, postingID *string, now time.Time) *Task {
	return &Task{
		ID:        uuid.New().String(),
		Status:    TaskInWork,
		Type:      TaskPicking,
		SKUID:     skuID,
		Stock:     stock,
		ItemID:    itemID,
		PostingID: postingID,
		CreatedAt: now,
	}
}
