package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Fulfillment-api/internal/application/acceptance"
	"github.com/jhoicas/Fulfillment-api/internal/application/dto"
	"github.com/jhoicas/Fulfillment-api/internal/application/ledger"
	"github.com/jhoicas/Fulfillment-api/internal/application/ports"
	"github.com/jhoicas/Fulfillment-api/internal/application/posting"
	"github.com/jhoicas/Fulfillment-api/internal/application/task"
	"github.com/jhoicas/Fulfillment-api/internal/infrastructure/fault"
	"github.com/jhoicas/Fulfillment-api/internal/infrastructure/memory"
	"github.com/jhoicas/Fulfillment-api/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/Fulfillment-api/internal/interfaces/http"
	"github.com/jhoicas/Fulfillment-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	skuA       = "11111111-1111-1111-1111-111111111111"
	unknownID  = "99999999-9999-9999-9999-999999999999"
	appNameTst = "fulfillment-api-test"
)

type options struct {
	loss ports.LossSimulator
	pdf  posting.PickListGenerator
	ping func(context.Context) error
}

// buildTestApp arma la API completa sobre el almacenamiento en memoria.
func buildTestApp(t *testing.T, opts options) *fiber.App {
	t.Helper()
	if opts.loss == nil {
		opts.loss = fault.Fixed(false)
	}
	store := memory.NewStore()
	log := logger.Nop()
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AppName:     appNameTst,
		Ledger:      ledger.NewUseCase(store, log),
		Tasks:       task.NewUseCase(store, memory.NewLocker(), opts.loss, nil, log, 0),
		Postings:    posting.NewUseCase(store, nil, opts.pdf, log),
		Acceptances: acceptance.NewUseCase(store, log),
		Ping:        opts.ping,
	})
	return app
}

// doJSON lanza la petición y devuelve la respuesta con el cuerpo ya leído.
func doJSON(t *testing.T, app *fiber.App, method, path string, body any) (*http.Response, []byte) {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

func decode[T any](t *testing.T, raw []byte) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	return out
}

// placeUnits recibe n unidades válidas de skuA vía HTTP, completa sus placings y fija el precio base.
func placeUnits(t *testing.T, app *fiber.App, n int, base string) []string {
	t.Helper()
	resp, raw := doJSON(t, app, http.MethodPost, "/api/acceptances", dto.CreateAcceptanceRequest{
		ItemsToAccept: []dto.ItemToAccept{{SKUID: skuA, Stock: "valid", Count: n}},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	created := decode[dto.IDResponse](t, raw)

	resp, raw = doJSON(t, app, http.MethodGet, "/api/acceptances/"+created.ID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	acc := decode[dto.AcceptanceResponse](t, raw)
	require.Len(t, acc.Tasks, n)

	items := make([]string, 0, n)
	for _, ts := range acc.Tasks {
		resp, raw = doJSON(t, app, http.MethodPost, "/api/tasks/"+ts.ID+"/finish", dto.FinishTaskRequest{Status: "completed"})
		require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))

		resp, raw = doJSON(t, app, http.MethodGet, "/api/tasks/"+ts.ID, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
		items = append(items, decode[dto.TaskResponse](t, raw).Target.ID)
	}

	resp, raw = doJSON(t, app, http.MethodPut, "/api/skus/"+skuA+"/price", map[string]string{"base_price": base})
	require.Equal(t, http.StatusNoContent, resp.StatusCode, string(raw))
	return items
}

// orderUnits crea un pedido con las unidades válidas indicadas y devuelve su detalle.
func orderUnits(t *testing.T, app *fiber.App, itemIDs ...string) dto.PostingResponse {
	t.Helper()
	resp, raw := doJSON(t, app, http.MethodPost, "/api/postings", dto.CreatePostingRequest{
		OrderedGoods: []dto.OrderedGoodsRequest{{SKU: skuA, FromValidIDs: itemIDs}},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	created := decode[dto.IDResponse](t, raw)

	resp, raw = doJSON(t, app, http.MethodGet, "/api/postings/"+created.ID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	return decode[dto.PostingResponse](t, raw)
}

// ──────────────────────────────────────────────────────────────────────────────
// Flujo completo
// ──────────────────────────────────────────────────────────────────────────────

func TestRouter_FlujoRecepcionPedidoEnvio(t *testing.T) {
	app := buildTestApp(t, options{})
	items := placeUnits(t, app, 2, "100")

	resp, raw := doJSON(t, app, http.MethodGet, "/api/skus/"+skuA, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	sku := decode[dto.SkuResponse](t, raw)
	assert.Equal(t, 2, sku.Count)
	assert.True(t, sku.ActualPriceTotal.Equal(decimal.NewFromInt(200)), sku.ActualPriceTotal.String())

	post := orderUnits(t, app, items[0])
	assert.Equal(t, "in_item_pick", post.Status)
	require.Len(t, post.Tasks, 1)

	resp, raw = doJSON(t, app, http.MethodGet, "/api/items/"+items[0], nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, decode[dto.ItemResponse](t, raw).Reserved)

	resp, raw = doJSON(t, app, http.MethodPost, "/api/tasks/"+post.Tasks[0].ID+"/finish", dto.FinishTaskRequest{Status: "completed"})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	assert.Equal(t, "completed", decode[dto.FinishTaskResponse](t, raw).Status)

	resp, raw = doJSON(t, app, http.MethodGet, "/api/postings/"+post.ID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	sent := decode[dto.PostingResponse](t, raw)
	assert.Equal(t, "sent", sent.Status)
	assert.True(t, sent.Cost.Equal(decimal.NewFromInt(100)), sent.Cost.String())
}

func TestRouter_DescuentoRecalculaPrecios(t *testing.T) {
	app := buildTestApp(t, options{})
	items := placeUnits(t, app, 1, "100")

	resp, raw := doJSON(t, app, http.MethodPost, "/api/discounts", map[string]any{
		"sku_ids": []string{skuA}, "percentage": "0.25",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	disc := decode[dto.DiscountResponse](t, raw)
	assert.Equal(t, "active", disc.Status)

	resp, raw = doJSON(t, app, http.MethodGet, "/api/items/"+items[0], nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, decode[dto.ItemResponse](t, raw).ActualPrice.Equal(decimal.NewFromInt(75)))

	resp, _ = doJSON(t, app, http.MethodPost, "/api/discounts/"+disc.ID+"/cancel", nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, raw = doJSON(t, app, http.MethodGet, "/api/items/"+items[0], nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, decode[dto.ItemResponse](t, raw).ActualPrice.Equal(decimal.NewFromInt(100)))

	resp, raw = doJSON(t, app, http.MethodPost, "/api/discounts/"+disc.ID+"/cancel", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode, string(raw))
}

func TestRouter_CancelarPedidoDevuelveUnidad(t *testing.T) {
	app := buildTestApp(t, options{})
	items := placeUnits(t, app, 1, "50")
	post := orderUnits(t, app, items[0])

	resp, raw := doJSON(t, app, http.MethodPost, "/api/postings/"+post.ID+"/cancel", nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode, string(raw))

	resp, raw = doJSON(t, app, http.MethodGet, "/api/postings/"+post.ID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "canceled", decode[dto.PostingResponse](t, raw).Status)

	resp, raw = doJSON(t, app, http.MethodGet, "/api/items/"+items[0], nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	item := decode[dto.ItemResponse](t, raw)
	assert.False(t, item.Reserved)
	assert.False(t, item.OnShelf)

	resp, raw = doJSON(t, app, http.MethodPost, "/api/postings/"+post.ID+"/cancel", nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode, string(raw))
}

func TestRouter_PerdidaSinReemplazo_Unfulfillable(t *testing.T) {
	app := buildTestApp(t, options{loss: fault.Fixed(true)})
	items := placeUnits(t, app, 1, "10")
	post := orderUnits(t, app, items[0])

	resp, raw := doJSON(t, app, http.MethodPost, "/api/tasks/"+post.Tasks[0].ID+"/finish", dto.FinishTaskRequest{Status: "completed"})
	require.Equal(t, http.StatusConflict, resp.StatusCode, string(raw))
	assert.Equal(t, "UNFULFILLABLE", decode[dto.ErrorResponse](t, raw).Code)

	resp, raw = doJSON(t, app, http.MethodGet, "/api/tasks/"+post.Tasks[0].ID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "canceled", decode[dto.TaskResponse](t, raw).Status)

	resp, raw = doJSON(t, app, http.MethodGet, "/api/items/"+items[0], nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "NotFound", decode[dto.ItemResponse](t, raw).Stock)
}

// ──────────────────────────────────────────────────────────────────────────────
// Hoja de picking
// ──────────────────────────────────────────────────────────────────────────────

func TestRouter_PickList_PDF(t *testing.T) {
	app := buildTestApp(t, options{pdf: pdf.NewPickListGenerator("test")})
	items := placeUnits(t, app, 1, "100")
	post := orderUnits(t, app, items[0])

	resp, raw := doJSON(t, app, http.MethodGet, "/api/postings/"+post.ID+"/pick-list", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "picking-"+post.ID+".pdf")
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF")))
}

func TestRouter_PickList_SinGenerador(t *testing.T) {
	app := buildTestApp(t, options{})
	items := placeUnits(t, app, 1, "100")
	post := orderUnits(t, app, items[0])

	resp, raw := doJSON(t, app, http.MethodGet, "/api/postings/"+post.ID+"/pick-list", nil)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, "PDF_UNAVAILABLE", decode[dto.ErrorResponse](t, raw).Code)
}

// ──────────────────────────────────────────────────────────────────────────────
// Errores
// ──────────────────────────────────────────────────────────────────────────────

func TestRouter_Errores(t *testing.T) {
	app := buildTestApp(t, options{})

	cases := []struct {
		name   string
		method string
		path   string
		body   any
		status int
		code   string
	}{
		{"id no UUID", http.MethodGet, "/api/tasks/abc", nil, http.StatusBadRequest, "VALIDATION"},
		{"tarea inexistente", http.MethodGet, "/api/tasks/" + unknownID, nil, http.StatusNotFound, "NOT_FOUND"},
		{"estado inválido", http.MethodPost, "/api/tasks/" + unknownID + "/finish", map[string]string{"status": "in_work"}, http.StatusBadRequest, "VALIDATION"},
		{"finalizar tarea inexistente", http.MethodPost, "/api/tasks/" + unknownID + "/finish", map[string]string{"status": "completed"}, http.StatusNotFound, "NOT_FOUND"},
		{"recepción vacía", http.MethodPost, "/api/acceptances", map[string]any{"items_to_accept": []any{}}, http.StatusBadRequest, "VALIDATION"},
		{"recepción clase NotFound", http.MethodPost, "/api/acceptances", map[string]any{"items_to_accept": []any{map[string]any{"sku_id": skuA, "stock": "NotFound", "count": 1}}}, http.StatusBadRequest, "VALIDATION"},
		{"pedido vacío", http.MethodPost, "/api/postings", map[string]any{"ordered_goods": []any{}}, http.StatusBadRequest, "VALIDATION"},
		{"pedido SKU desconocido", http.MethodPost, "/api/postings", map[string]any{"ordered_goods": []any{map[string]any{"sku": unknownID, "from_valid_ids": []string{unknownID}}}}, http.StatusNotFound, "NOT_FOUND"},
		{"descuento fuera de rango", http.MethodPost, "/api/discounts", map[string]any{"sku_ids": []string{skuA}, "percentage": "1.5"}, http.StatusBadRequest, "VALIDATION"},
		{"SKU inexistente", http.MethodGet, "/api/skus/" + unknownID, nil, http.StatusNotFound, "NOT_FOUND"},
		{"precio de SKU inexistente", http.MethodPut, "/api/skus/" + unknownID + "/price", map[string]string{"base_price": "10"}, http.StatusNotFound, "NOT_FOUND"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, raw := doJSON(t, app, tc.method, tc.path, tc.body)
			assert.Equal(t, tc.status, resp.StatusCode, string(raw))
			assert.Equal(t, tc.code, decode[dto.ErrorResponse](t, raw).Code)
		})
	}
}

func TestRouter_FinalizarDosVeces_Conflict(t *testing.T) {
	app := buildTestApp(t, options{})
	items := placeUnits(t, app, 1, "10")
	post := orderUnits(t, app, items[0])

	resp, _ := doJSON(t, app, http.MethodPost, "/api/tasks/"+post.Tasks[0].ID+"/finish", dto.FinishTaskRequest{Status: "canceled"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, raw := doJSON(t, app, http.MethodPost, "/api/tasks/"+post.Tasks[0].ID+"/finish", dto.FinishTaskRequest{Status: "completed"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "CONFLICT", decode[dto.ErrorResponse](t, raw).Code)
}

// ──────────────────────────────────────────────────────────────────────────────
// Health
// ──────────────────────────────────────────────────────────────────────────────

func TestRouter_Health(t *testing.T) {
	app := buildTestApp(t, options{})
	resp, raw := doJSON(t, app, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, appNameTst, decode[map[string]string](t, raw)["service"])
}

func TestRouter_Health_AlmacenamientoCaido(t *testing.T) {
	app := buildTestApp(t, options{ping: func(context.Context) error { return errors.New("sin conexión") }})
	resp, raw := doJSON(t, app, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, "STORAGE_UNAVAILABLE", decode[dto.ErrorResponse](t, raw).Code)
}
