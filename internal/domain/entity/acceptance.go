package entity

import "time"

// Acceptance lote de recepción; agrupa las tareas de placing que genera.
type Acceptance struct {
	ID        string
	CreatedAt time.Time
}
