package entity

import "time"

// PostingStatus estado de un pedido (posting).
type PostingStatus string

const (
	PostingInItemPick PostingStatus = "in_item_pick"
	PostingSent       PostingStatus = "sent"
	PostingCanceled   PostingStatus = "canceled"
)

// IsTerminal retorna true para sent y canceled.
func (s PostingStatus) IsTerminal() bool {
	return s == PostingSent || s == PostingCanceled
}

// Posting pedido de cliente. Su estado es un roll-up de sus tareas.
type Posting struct {
	ID        string
	Status    PostingStatus
	CreatedAt time.Time
}

// RollUpPostingStatus deriva el estado del pedido a partir del conteo de tareas:
// sin tareas in_work y al menos una completada => sent; sin in_work ni completadas => canceled;
// en otro caso el estado no cambia.
func RollUpPostingStatus(current PostingStatus, inWork, completed int) PostingStatus {
	if inWork > 0 {
		return current
	}
	if completed > 0 {
		return PostingSent
	}
	return PostingCanceled
}
