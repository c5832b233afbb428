package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/kardex-api/internal/application/dto"
	"github.com/jhoicas/kardex-api/internal/application/inventory"
	"github.com/jhoicas/kardex-api/internal/application/usecase"
	"github.com/jhoicas/kardex-api/internal/domain/entity"
	"github.com/jhoicas/kardex-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/kardex-api/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/kardex-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/kardex-api/pkg/jwt"
	"github.com/jhoicas/kardex-api/pkg/logger"
	"github.com/jhoicas/kardex-api/pkg/numparse"
)

// apiFixture API completa sobre el almacén en memoria.
type apiFixture struct {
	app   *fiber.App
	store *memory.Store
	token string
}

func newAPI(t *testing.T) *apiFixture {
	t.Helper()
	store := memory.NewStore()
	materials := memory.NewMaterialRepository(store)
	txs := memory.NewTransactionRepository(store)
	format := numparse.NewFormatter("es")
	log := logger.Nop()

	ledger := inventory.NewLedgerUseCase(memory.NewTxRunner(store), materials, txs, format, log)
	app := apphttp.NewApp("kardex-test", apphttp.RouterDeps{
		MaterialUC: usecase.NewMaterialUseCase(materials),
		LedgerUC:   ledger,
		KittingUC:  inventory.NewKittingUseCase(ledger, memory.NewProductRepository(store), materials, memory.NewBOMRepository(store), 4, log),
		KardexUC:   inventory.NewKardexUseCase(materials, txs, infrapdf.NewKardexPDFGenerator(format), log),
		JWTSecret:  testJWTSecret,
	})
	return &apiFixture{app: app, store: store, token: bearer(t, pkgjwt.Actor{UserID: testUserID, Name: testUserName})}
}

func (a *apiFixture) do(t *testing.T, method, path string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Authorization", a.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := a.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func (a *apiFixture) createMaterial(t *testing.T, code string, stock, cost any) dto.MaterialResponse {
	t.Helper()
	resp := a.do(t, http.MethodPost, "/api/materials", dto.CreateMaterialRequest{
		Code: code, Name: "Material " + code, InitialStock: stock, UnitCost: cost,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decodeBody[dto.MaterialResponse](t, resp)
}

func TestAPI_Health(t *testing.T) {
	a := newAPI(t)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	resp, err := a.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAPI_RequiereToken(t *testing.T) {
	a := newAPI(t)
	req := httptest.NewRequest(http.MethodGet, "/api/materials", nil)
	resp, err := a.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAPI_MovimientosYKardex(t *testing.T) {
	a := newAPI(t)
	m := a.createMaterial(t, "AZU", "100", "2,00")

	resp := a.do(t, http.MethodPost, "/api/inventory/transactions", fiber.Map{
		"material_id": m.ID, "type": "IN", "quantity": "50", "purchase_total": "120",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	tx := decodeBody[dto.TransactionResponse](t, resp)
	assert.Equal(t, testUserName, tx.Actor)
	assert.True(t, tx.ResultingStock.Equal(decimal.NewFromInt(150)))

	resp = a.do(t, http.MethodPost, "/api/inventory/transactions", fiber.Map{
		"material_id": m.ID, "type": "OUT", "quantity": 500,
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "INSUFFICIENT_STOCK", decodeBody[dto.ErrorResponse](t, resp).Code)

	resp = a.do(t, http.MethodPost, "/api/inventory/transactions", fiber.Map{
		"material_id": m.ID, "type": "OUT", "quantity": "x",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_QUANTITY", decodeBody[dto.ErrorResponse](t, resp).Code)

	resp = a.do(t, http.MethodPost, "/api/inventory/transactions", fiber.Map{
		"material_id": "nope", "type": "IN", "quantity": 1,
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = a.do(t, http.MethodGet, "/api/materials/"+m.ID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decodeBody[dto.MaterialResponse](t, resp)
	assert.Equal(t, "2.1333", got.UnitCost.StringFixed(4))

	resp = a.do(t, http.MethodGet, "/api/inventory/transactions?material_id="+m.ID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decodeBody[dto.TransactionListResponse](t, resp)
	assert.Len(t, list.Items, 1)

	resp = a.do(t, http.MethodGet, "/api/materials/"+m.ID+"/reconcile", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, decodeBody[dto.ReconcileResponse](t, resp).Consistent)

	resp = a.do(t, http.MethodGet, "/api/materials/"+m.ID+"/kardex.pdf", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))

	resp = a.do(t, http.MethodDelete, "/api/materials/"+m.ID, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode, "tiene movimientos")
}

func TestAPI_Materiales(t *testing.T) {
	a := newAPI(t)
	a.createMaterial(t, "A", 10, 1)

	resp := a.do(t, http.MethodPost, "/api/materials", dto.CreateMaterialRequest{Code: "A", Name: "Repetido"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = a.do(t, http.MethodGet, "/api/materials", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decodeBody[[]dto.MaterialResponse](t, resp), 1)

	resp = a.do(t, http.MethodGet, "/api/materials/summary", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, decodeBody[dto.StockSummaryResponse](t, resp).Materials)

	resp = a.do(t, http.MethodGet, "/api/materials/nope", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAPI_Kitting(t *testing.T) {
	a := newAPI(t)
	ma := a.createMaterial(t, "MAT-A", 10, 1)
	mb := a.createMaterial(t, "MAT-B", 9, 1)
	a.store.AddProduct(&entity.Product{ID: "p", Code: "KIT-P", Name: "Kit P"})
	a.store.AddBOM(&entity.BOMHeader{ID: "h", ProductID: "p", Status: entity.BOMStatusActive, Items: []entity.BOMItem{
		{MaterialID: ma.ID, Quantity: decimal.NewFromInt(2)},
		{MaterialID: mb.ID, Quantity: decimal.NewFromInt(3)},
	}})

	resp := a.do(t, http.MethodGet, "/api/kitting/options", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	opts := decodeBody[[]dto.KittingOptionDTO](t, resp)
	require.Len(t, opts, 1)
	assert.Equal(t, int64(3), opts[0].MaxKits)

	resp = a.do(t, http.MethodPost, "/api/kitting/execute", dto.ExecuteKitRequest{ProductID: "p", Quantity: 3})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decodeBody[dto.KitExecutionResponse](t, resp)
	assert.Equal(t, "consumed_no_receipt", out.Outcome)
	assert.Equal(t, "warning", out.Status)
	assert.NotEmpty(t, out.Warning)
	assert.Empty(t, out.ReceiptTransactionID)

	resp = a.do(t, http.MethodPost, "/api/kitting/execute", dto.ExecuteKitRequest{ProductID: "p", Quantity: 0})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
