package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Fulfillment-api/internal/domain/entity"
)

// El roll-up es función pura de los conteos de tareas.
func TestRollUpPostingStatus(t *testing.T) {
	cases := []struct {
		name      string
		inWork    int
		completed int
		want      entity.PostingStatus
	}{
		{"todas canceladas", 0, 0, entity.PostingCanceled},
		{"sin pendientes con completadas", 0, 2, entity.PostingSent},
		{"con pendientes", 1, 3, entity.PostingInItemPick},
		{"solo pendientes", 2, 0, entity.PostingInItemPick},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := entity.RollUpPostingStatus(entity.PostingInItemPick, tc.inWork, tc.completed)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestTaskStatus_IsTerminal(t *testing.T) {
	assert.False(t, entity.TaskInWork.IsTerminal())
	assert.True(t, entity.TaskCompleted.IsTerminal())
	assert.True(t, entity.TaskCanceled.IsTerminal())
	assert.False(t, entity.TaskStatus("done").Valid())
}

func TestStockItem_Reservable(t *testing.T) {
	item := &entity.StockItem{Stock: entity.StockValid, OnShelf: true}
	assert.True(t, item.Reservable(entity.StockValid))
	assert.False(t, item.Reservable(entity.StockDefect))

	item.Reserved = true
	assert.False(t, item.Reservable(entity.StockValid))

	item.Reserved = false
	item.OnShelf = false
	assert.False(t, item.Reservable(entity.StockValid))
}
