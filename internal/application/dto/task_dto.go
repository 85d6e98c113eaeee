package dto

import "time"

// FinishTaskRequest body para POST /api/tasks/:id/finish.
type FinishTaskRequest struct {
	Status string `json:"status" validate:"required,oneof=completed canceled"`
}

// FinishTaskResponse estado final persistido (puede diferir del solicitado).
type FinishTaskResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// TaskTargetDTO unidad objetivo de la tarea.
type TaskTargetDTO struct {
	Stock string `json:"stock"`
	ID    string `json:"id"`
}

// TaskResponse detalle de una tarea.
type TaskResponse struct {
	ID        string        `json:"id"`
	Status    string        `json:"status"`
	Type      string        `json:"type"`
	SKUID     string        `json:"sku_id"`
	Target    TaskTargetDTO `json:"task_target"`
	PostingID *string       `json:"posting_id,omitempty"`
	ProcessID *string       `json:"process_id,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
}

// TaskSummaryDTO resumen usado en listados.
type TaskSummaryDTO struct {
	ID     string `json:"id"`
	Type   string `json:"type,omitempty"`
	Status string `json:"status"`
}
