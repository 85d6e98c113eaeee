package task_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Fulfillment-api/internal/application/acceptance"
	"github.com/jhoicas/Fulfillment-api/internal/application/dto"
	"github.com/jhoicas/Fulfillment-api/internal/application/ledger"
	"github.com/jhoicas/Fulfillment-api/internal/application/ports"
	"github.com/jhoicas/Fulfillment-api/internal/application/posting"
	"github.com/jhoicas/Fulfillment-api/internal/application/task"
	"github.com/jhoicas/Fulfillment-api/internal/domain"
	"github.com/jhoicas/Fulfillment-api/internal/domain/entity"
	"github.com/jhoicas/Fulfillment-api/internal/domain/repository"
	"github.com/jhoicas/Fulfillment-api/internal/infrastructure/fault"
	"github.com/jhoicas/Fulfillment-api/internal/infrastructure/memory"
	"github.com/jhoicas/Fulfillment-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const skuA = "11111111-1111-1111-1111-111111111111"

type env struct {
	store    *memory.Store
	events   *recorder
	ledger   *ledger.UseCase
	tasks    *task.UseCase
	postings *posting.UseCase
	accepts  *acceptance.UseCase
}

// recorder guarda los eventos publicados.
type recorder struct{ events []entity.DomainEvent }

func (r *recorder) Publish(_ context.Context, events ...entity.DomainEvent) error {
	r.events = append(r.events, events...)
	return nil
}

func (r *recorder) count(kind string) int {
	n := 0
	for _, e := range r.events {
		if e.Type == kind {
			n++
		}
	}
	return n
}

func newEnv(t *testing.T, loss ports.LossSimulator) *env {
	t.Helper()
	store := memory.NewStore()
	rec := &recorder{}
	log := logger.Nop()
	return &env{
		store:    store,
		events:   rec,
		ledger:   ledger.NewUseCase(store, log),
		tasks:    task.NewUseCase(store, memory.NewLocker(), loss, rec, log, 0),
		postings: posting.NewUseCase(store, rec, nil, log),
		accepts:  acceptance.NewUseCase(store, log),
	}
}

// place recibe n unidades del SKU, completa sus tareas de placing y fija el precio base.
func (e *env) place(t *testing.T, skuID string, class entity.StockClass, n int, base int64) []string {
	t.Helper()
	ctx := context.Background()
	acc, err := e.accepts.Create(ctx, dto.CreateAcceptanceRequest{
		ItemsToAccept: []dto.ItemToAccept{{SKUID: skuID, Stock: string(class), Count: n}},
	})
	require.NoError(t, err)
	info, err := e.accepts.Get(ctx, acc.ID)
	require.NoError(t, err)
	require.Len(t, info.Tasks, n)

	ids := make([]string, 0, n)
	for _, ts := range info.Tasks {
		res, err := e.tasks.Finish(ctx, ts.ID, entity.TaskCompleted)
		require.NoError(t, err)
		require.Equal(t, string(entity.TaskCompleted), res.Status)
		got, err := e.tasks.Get(ctx, ts.ID)
		require.NoError(t, err)
		ids = append(ids, got.Target.ID)
	}
	require.NoError(t, e.ledger.SetBasePrice(ctx, skuID, decimal.NewFromInt(base)))
	return ids
}

func (e *env) order(t *testing.T, skuID string, validIDs ...string) *dto.PostingResponse {
	t.Helper()
	ctx := context.Background()
	created, err := e.postings.Create(ctx, dto.CreatePostingRequest{
		OrderedGoods: []dto.OrderedGoodsRequest{{SKU: skuID, FromValidIDs: validIDs}},
	})
	require.NoError(t, err)
	info, err := e.postings.GetInfo(ctx, created.ID)
	require.NoError(t, err)
	return info
}

func (e *env) item(t *testing.T, id string) *entity.StockItem {
	t.Helper()
	var out *entity.StockItem
	require.NoError(t, e.store.Run(context.Background(), func(repos repository.Repositories) error {
		var err error
		out, err = repos.Items.GetByID(context.Background(), id)
		return err
	}))
	require.NotNil(t, out)
	return out
}

// assertReservationInvariant verifica reserved ⇔ exactamente una tarea de picking in_work.
func (e *env) assertReservationInvariant(t *testing.T, skuID, postingID string) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, e.store.Run(ctx, func(repos repository.Repositories) error {
		items, err := repos.Items.ListBySKU(ctx, skuID)
		require.NoError(t, err)
		tasks, err := repos.Tasks.ListByPosting(ctx, postingID)
		require.NoError(t, err)
		for _, it := range items {
			n := 0
			for _, tk := range tasks {
				if tk.Type == entity.TaskPicking && tk.Status == entity.TaskInWork && tk.ItemID == it.ID {
					n++
				}
			}
			assert.Equal(t, it.Reserved, n == 1, "item %s reserved=%t picking in_work=%d", it.ID, it.Reserved, n)
			assert.LessOrEqual(t, n, 1)
		}
		return nil
	}))
}

func inWorkPicking(info *dto.PostingResponse) []string {
	var ids []string
	for _, ts := range info.Tasks {
		if ts.Status == string(entity.TaskInWork) {
			ids = append(ids, ts.ID)
		}
	}
	return ids
}

// ──────────────────────────────────────────────────────────────────────────────
// Placing
// ──────────────────────────────────────────────────────────────────────────────

func TestFinish_PlacingCreaSKUYUnidades(t *testing.T) {
	e := newEnv(t, fault.Fixed(false))
	ids := e.place(t, skuA, entity.StockValid, 3, 0)

	sku, err := e.ledger.GetSkuInfo(context.Background(), skuA)
	require.NoError(t, err)
	assert.True(t, sku.BasePrice.IsZero())
	assert.Equal(t, 3, sku.Count)

	for _, id := range ids {
		it := e.item(t, id)
		assert.Equal(t, entity.StockValid, it.Stock)
		assert.False(t, it.Reserved)
		assert.True(t, it.OnShelf)
	}
	assert.Equal(t, 3, e.events.count(entity.EventTaskFinished))
}

func TestFinish_PlacingCanceladoNoCreaUnidad(t *testing.T) {
	e := newEnv(t, fault.Fixed(false))
	ctx := context.Background()
	acc, err := e.accepts.Create(ctx, dto.CreateAcceptanceRequest{
		ItemsToAccept: []dto.ItemToAccept{{SKUID: skuA, Stock: "defect", Count: 1}},
	})
	require.NoError(t, err)
	info, err := e.accepts.Get(ctx, acc.ID)
	require.NoError(t, err)

	res, err := e.tasks.Finish(ctx, info.Tasks[0].ID, entity.TaskCanceled)
	require.NoError(t, err)
	assert.Equal(t, "canceled", res.Status)

	_, err = e.ledger.GetSkuInfo(ctx, skuA)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Picking
// ──────────────────────────────────────────────────────────────────────────────

func TestFinish_PickingCompletoEnviaPedido(t *testing.T) {
	e := newEnv(t, fault.Fixed(false))
	ctx := context.Background()
	ids := e.place(t, skuA, entity.StockValid, 2, 100)

	info := e.order(t, skuA, ids...)
	assert.True(t, e.item(t, ids[0]).Reserved)
	assert.True(t, e.item(t, ids[1]).Reserved)
	assert.Equal(t, "200", info.Cost.String())
	e.assertReservationInvariant(t, skuA, info.ID)

	for _, id := range inWorkPicking(info) {
		res, err := e.tasks.Finish(ctx, id, entity.TaskCompleted)
		require.NoError(t, err)
		assert.Equal(t, "completed", res.Status)
	}

	after, err := e.postings.GetInfo(ctx, info.ID)
	require.NoError(t, err)
	assert.Equal(t, string(entity.PostingSent), after.Status)
	assert.Equal(t, "200", after.Cost.String())
	for _, id := range ids {
		assert.False(t, e.item(t, id).Reserved)
		assert.False(t, e.item(t, id).OnShelf)
	}
	e.assertReservationInvariant(t, skuA, info.ID)
	assert.Equal(t, 1, e.events.count(entity.EventPostingStatusChanged))
}

func TestFinish_PickingCanceladoLiberaUnidad(t *testing.T) {
	e := newEnv(t, fault.Fixed(false))
	ctx := context.Background()
	ids := e.place(t, skuA, entity.StockValid, 1, 10)
	info := e.order(t, skuA, ids[0])

	res, err := e.tasks.Finish(ctx, info.Tasks[0].ID, entity.TaskCanceled)
	require.NoError(t, err)
	assert.Equal(t, "canceled", res.Status)

	it := e.item(t, ids[0])
	assert.False(t, it.Reserved)
	assert.True(t, it.OnShelf)

	after, err := e.postings.GetInfo(ctx, info.ID)
	require.NoError(t, err)
	assert.Equal(t, string(entity.PostingCanceled), after.Status)
	assert.True(t, after.Cost.IsZero())
}

func TestFinish_PerdidaConReemplazo(t *testing.T) {
	e := newEnv(t, fault.NewScripted(true))
	ctx := context.Background()
	ids := e.place(t, skuA, entity.StockValid, 2, 50)
	info := e.order(t, skuA, ids[0])

	res, err := e.tasks.Finish(ctx, info.Tasks[0].ID, entity.TaskCompleted)
	require.NoError(t, err)
	assert.Equal(t, "canceled", res.Status, "la tarea original se fuerza a canceled")

	lost := e.item(t, ids[0])
	assert.Equal(t, entity.StockNotFound, lost.Stock)
	assert.False(t, lost.Reserved)
	assert.True(t, e.item(t, ids[1]).Reserved)

	mid, err := e.postings.GetInfo(ctx, info.ID)
	require.NoError(t, err)
	assert.Equal(t, string(entity.PostingInItemPick), mid.Status)
	assert.Equal(t, []string{ids[0]}, mid.NotFound)
	e.assertReservationInvariant(t, skuA, info.ID)

	pending := inWorkPicking(mid)
	require.Len(t, pending, 1)
	next, err := e.tasks.Get(ctx, pending[0])
	require.NoError(t, err)
	assert.Equal(t, ids[1], next.Target.ID)
	require.NotNil(t, next.PostingID)
	assert.Equal(t, info.ID, *next.PostingID)

	_, err = e.tasks.Finish(ctx, pending[0], entity.TaskCompleted)
	require.NoError(t, err)

	done, err := e.postings.GetInfo(ctx, info.ID)
	require.NoError(t, err)
	assert.Equal(t, string(entity.PostingSent), done.Status)
	assert.Equal(t, "50", done.Cost.String())
	e.assertReservationInvariant(t, skuA, info.ID)
}

func TestFinish_PerdidaSinReemplazoEsUnfulfillable(t *testing.T) {
	e := newEnv(t, fault.Fixed(true))
	ctx := context.Background()
	ids := e.place(t, skuA, entity.StockValid, 1, 50)
	info := e.order(t, skuA, ids[0])

	_, err := e.tasks.Finish(ctx, info.Tasks[0].ID, entity.TaskCompleted)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnfulfillable)
	assert.False(t, errors.Is(err, domain.ErrNotFound))
	var uerr *domain.UnfulfillableError
	require.True(t, errors.As(err, &uerr))
	assert.Equal(t, info.Tasks[0].ID, uerr.TaskID)
	assert.Equal(t, info.ID, uerr.PostingID)

	got, err := e.tasks.Get(ctx, info.Tasks[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "canceled", got.Status)
	assert.False(t, e.item(t, ids[0]).Reserved)

	after, err := e.postings.GetInfo(ctx, info.ID)
	require.NoError(t, err)
	assert.Equal(t, string(entity.PostingCanceled), after.Status)
}

func TestFinish_UnidadYaNotFoundBuscaReemplazoSinSorteo(t *testing.T) {
	e := newEnv(t, fault.Fixed(false))
	ctx := context.Background()
	ids := e.place(t, skuA, entity.StockDefect, 2, 20)
	created, err := e.postings.Create(ctx, dto.CreatePostingRequest{
		OrderedGoods: []dto.OrderedGoodsRequest{{SKU: skuA, FromDefectIDs: []string{ids[0]}}},
	})
	require.NoError(t, err)
	require.NoError(t, e.ledger.MoveToNotFound(ctx, ids[0]))

	info, err := e.postings.GetInfo(ctx, created.ID)
	require.NoError(t, err)
	res, err := e.tasks.Finish(ctx, info.Tasks[0].ID, entity.TaskCompleted)
	require.NoError(t, err)
	assert.Equal(t, "canceled", res.Status)
	assert.True(t, e.item(t, ids[1]).Reserved)
}

// ──────────────────────────────────────────────────────────────────────────────
// Errores
// ──────────────────────────────────────────────────────────────────────────────

func TestFinish_Errores(t *testing.T) {
	e := newEnv(t, fault.Fixed(false))
	ctx := context.Background()

	_, err := e.tasks.Finish(ctx, "no-existe", entity.TaskCompleted)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = e.tasks.Finish(ctx, "no-existe", entity.TaskInWork)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	ids := e.place(t, skuA, entity.StockValid, 1, 1)
	info := e.order(t, skuA, ids[0])
	_, err = e.tasks.Finish(ctx, info.Tasks[0].ID, entity.TaskCompleted)
	require.NoError(t, err)
	_, err = e.tasks.Finish(ctx, info.Tasks[0].ID, entity.TaskCanceled)
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = e.tasks.Get(ctx, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Recolocación tras cancelar el pedido
// ──────────────────────────────────────────────────────────────────────────────

func TestFinish_RecolocacionDevuelveUnidadAlEstante(t *testing.T) {
	e := newEnv(t, fault.Fixed(false))
	ctx := context.Background()
	ids := e.place(t, skuA, entity.StockValid, 1, 10)
	info := e.order(t, skuA, ids[0])

	require.NoError(t, e.postings.Cancel(ctx, info.ID))
	it := e.item(t, ids[0])
	assert.False(t, it.Reserved)
	assert.False(t, it.OnShelf)

	placing := findCompensation(t, e, ids[0])
	assert.Nil(t, placing.PostingID)
	assert.Nil(t, placing.ProcessID)

	res, err := e.tasks.Finish(ctx, placing.ID, entity.TaskCompleted)
	require.NoError(t, err)
	assert.Equal(t, "completed", res.Status)
	it = e.item(t, ids[0])
	assert.True(t, it.OnShelf)
	assert.False(t, it.Reserved)
	assert.Equal(t, entity.StockValid, it.Stock)
}

// ──────────────────────────────────────────────────────────────────────────────
// Cancelación con tareas ya terminadas
// ──────────────────────────────────────────────────────────────────────────────

func TestCancel_TrasPickingParcialCancelaTodoYCompensa(t *testing.T) {
	e := newEnv(t, fault.Fixed(false))
	ctx := context.Background()
	ids := e.place(t, skuA, entity.StockValid, 2, 100)
	info := e.order(t, skuA, ids...)
	require.Len(t, info.Tasks, 2)

	_, err := e.tasks.Finish(ctx, info.Tasks[0].ID, entity.TaskCompleted)
	require.NoError(t, err)
	mid, err := e.postings.GetInfo(ctx, info.ID)
	require.NoError(t, err)
	require.Equal(t, string(entity.PostingInItemPick), mid.Status)

	require.NoError(t, e.postings.Cancel(ctx, info.ID))

	after, err := e.postings.GetInfo(ctx, info.ID)
	require.NoError(t, err)
	assert.Equal(t, string(entity.PostingCanceled), after.Status)
	assert.True(t, after.Cost.IsZero(), after.Cost.String())
	for _, ts := range after.Tasks {
		assert.Equal(t, string(entity.TaskCanceled), ts.Status, ts.ID)
	}
	for _, id := range ids {
		it := e.item(t, id)
		assert.False(t, it.Reserved, id)
		assert.False(t, it.OnShelf, id)
		placing := findCompensation(t, e, id)
		assert.Nil(t, placing.PostingID)
		assert.Equal(t, entity.StockValid, placing.Stock)
	}
	e.assertReservationInvariant(t, skuA, info.ID)
}

func TestCancel_TrasReemplazoCompensaSoloLaUnidadViva(t *testing.T) {
	e := newEnv(t, fault.NewScripted(true))
	ctx := context.Background()
	ids := e.place(t, skuA, entity.StockValid, 2, 100)
	info := e.order(t, skuA, ids[0])

	res, err := e.tasks.Finish(ctx, info.Tasks[0].ID, entity.TaskCompleted)
	require.NoError(t, err)
	require.Equal(t, "canceled", res.Status)
	require.True(t, e.item(t, ids[1]).Reserved)

	require.NoError(t, e.postings.Cancel(ctx, info.ID))

	after, err := e.postings.GetInfo(ctx, info.ID)
	require.NoError(t, err)
	assert.Equal(t, string(entity.PostingCanceled), after.Status)
	require.Len(t, after.Tasks, 2)
	for _, ts := range after.Tasks {
		assert.Equal(t, string(entity.TaskCanceled), ts.Status, ts.ID)
	}

	assert.False(t, e.item(t, ids[0]).Reserved)
	assert.False(t, e.item(t, ids[1]).Reserved)
	assert.Zero(t, countCompensations(t, e, ids[0]), "la unidad perdida ya salió del pedido")
	assert.Equal(t, 1, countCompensations(t, e, ids[1]))
	e.assertReservationInvariant(t, skuA, info.ID)
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de compensación
// ──────────────────────────────────────────────────────────────────────────────

// findCompensation retorna la única tarea de placing in_work de la unidad.
func findCompensation(t *testing.T, e *env, itemID string) *entity.Task {
	t.Helper()
	found := compensations(t, e, itemID)
	require.Len(t, found, 1)
	return found[0]
}

func countCompensations(t *testing.T, e *env, itemID string) int {
	t.Helper()
	return len(compensations(t, e, itemID))
}

// compensations lista las tareas de placing in_work de la unidad.
func compensations(t *testing.T, e *env, itemID string) []*entity.Task {
	t.Helper()
	var found []*entity.Task
	require.NoError(t, e.store.Run(context.Background(), func(repos repository.Repositories) error {
		tasks, err := repos.Tasks.ListByItem(context.Background(), itemID)
		if err != nil {
			return err
		}
		for _, tk := range tasks {
			if tk.Type == entity.TaskPlacing && tk.Status == entity.TaskInWork {
				found = append(found, tk)
			}
		}
		return nil
	}))
	return found
}
