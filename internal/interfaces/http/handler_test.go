package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-dashboard/internal/application/analytics"
	"github.com/jhoicas/inventory-dashboard/internal/application/dto"
	"github.com/jhoicas/inventory-dashboard/internal/application/inventory"
	"github.com/jhoicas/inventory-dashboard/internal/application/usecase"
	"github.com/jhoicas/inventory-dashboard/internal/infrastructure/export"
	"github.com/jhoicas/inventory-dashboard/internal/infrastructure/memory"
	"github.com/jhoicas/inventory-dashboard/internal/infrastructure/seed"
	apphttp "github.com/jhoicas/inventory-dashboard/internal/interfaces/http"
	"github.com/jhoicas/inventory-dashboard/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// buildTestApp arma la API completa sobre el almacén en memoria con el catálogo demo.
func buildTestApp(t *testing.T) (*fiber.App, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	_, err := seed.Demo(context.Background(), store.Products(), store.Purchases(), store.Sales())
	require.NoError(t, err)

	log := logger.Nop()
	runner := memory.NewTxRunner(store)
	app := fiber.New()
	app.Use(apphttp.RequestLogger(log))
	apphttp.Router(app, apphttp.RouterDeps{
		ProductUC:  usecase.NewProductUseCase(runner, store.Products(), nil, log),
		PurchaseUC: usecase.NewPurchaseUseCase(runner, store.Products(), store.Purchases(), nil, log),
		SaleUC:     usecase.NewSaleUseCase(runner, store.Products(), store.Sales(), nil, log),
		StockUC:    inventory.NewStockUseCase(store.Products(), store.Purchases(), store.Sales(), log),
		ReportUC:   analytics.NewReportUseCase(store.Products(), store.Purchases(), store.Sales(), nil, 0, log),
		Renderer:   export.NewRenderer("USD"),
	})
	return app, store
}

func do(t *testing.T, app *fiber.App, method, target, body string) *http.Response {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func productID(t *testing.T, store *memory.Store, code string) string {
	t.Helper()
	p, err := store.Products().GetByCode(context.Background(), code)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.ID
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestStock_DevuelveSaldos(t *testing.T) {
	app, _ := buildTestApp(t)

	resp := do(t, app, http.MethodGet, "/api/stock", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var items []dto.StockItemDTO
	decode(t, resp, &items)
	require.Len(t, items, 3)
	for _, it := range items {
		if it.Code == "bk-001" {
			assert.Equal(t, 80.0, it.OnHand)
		}
	}
}

func TestStockMensual_ProductoInexistente(t *testing.T) {
	app, _ := buildTestApp(t)

	resp := do(t, app, http.MethodGet, "/api/stock/monthly?productId=nope", "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestVenta_StockInsuficienteDevuelve409(t *testing.T) {
	app, store := buildTestApp(t)
	id := productID(t, store, "pn-002")

	resp := do(t, app, http.MethodPost, "/api/sales",
		`{"productId":"`+id+`","quantity":1000,"unitPrice":2.5}`)
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)

	var body dto.ErrorResponse
	decode(t, resp, &body)
	assert.Equal(t, "INSUFFICIENT_STOCK", body.Code)
	require.NotNil(t, body.Available)
	assert.Equal(t, 250.0, *body.Available)
}

func TestVenta_Creada(t *testing.T) {
	app, store := buildTestApp(t)
	id := productID(t, store, "pn-002")

	resp := do(t, app, http.MethodPost, "/api/sales",
		`{"productId":"`+id+`","quantity":50,"unitPrice":2.5}`)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var out dto.SaleResponse
	decode(t, resp, &out)
	assert.Equal(t, 50.0, out.Quantity)
	require.NotNil(t, out.Product)
	assert.Equal(t, "pn-002", out.Product.Code)
}

func TestProducto_ValidacionPorCampo(t *testing.T) {
	app, _ := buildTestApp(t)

	resp := do(t, app, http.MethodPost, "/api/products", `{"code":"","name":"","price":1}`)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var body dto.ErrorResponse
	decode(t, resp, &body)
	assert.Equal(t, "VALIDATION", body.Code)
	assert.Contains(t, body.Fields, "code")
	assert.Contains(t, body.Fields, "name")
}

func TestProducto_CuerpoInvalido(t *testing.T) {
	app, _ := buildTestApp(t)

	resp := do(t, app, http.MethodPost, "/api/products", `{"code":`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestProducto_DuplicadoYEnUso(t *testing.T) {
	app, store := buildTestApp(t)

	resp := do(t, app, http.MethodPost, "/api/products", `{"code":"BK-001","name":"Otro","price":1}`)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	resp = do(t, app, http.MethodDelete, "/api/products/"+productID(t, store, "bk-001"), "")
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)
	var body dto.ErrorResponse
	decode(t, resp, &body)
	assert.Equal(t, "PRODUCT_IN_USE", body.Code)
}

func TestProducto_BuscarPorCodigo(t *testing.T) {
	app, _ := buildTestApp(t)

	resp := do(t, app, http.MethodGet, "/api/products?code=ER-003", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var list []dto.ProductResponse
	decode(t, resp, &list)
	require.Len(t, list, 1)
	assert.Equal(t, "er-003", list[0].Code)

	resp = do(t, app, http.MethodGet, "/api/products/no-existe", "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestCompras_FiltroPorFecha(t *testing.T) {
	app, _ := buildTestApp(t)

	resp := do(t, app, http.MethodGet, "/api/purchases?from=2024-02-01&to=2024-02-29", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var list []dto.PurchaseResponse
	decode(t, resp, &list)
	require.Len(t, list, 1)
	assert.Equal(t, 400.0, list[0].Quantity)

	resp = do(t, app, http.MethodGet, "/api/purchases?from=ayer", "")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestReporte_JSON(t *testing.T) {
	app, _ := buildTestApp(t)

	resp := do(t, app, http.MethodGet, "/api/reports", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var report dto.ReportDTO
	decode(t, resp, &report)
	assert.Equal(t, 3, report.Summary.TotalProducts)
	assert.Len(t, report.Rows, 3)
}

func TestReporte_CSVAdjunto(t *testing.T) {
	app, _ := buildTestApp(t)

	resp := do(t, app, http.MethodGet, "/api/reports?format=csv&start=2024-01-01", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/csv")
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "inventory-report.csv")

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(raw), "productId,code,name"))
}

func TestReporte_FormatoDesconocido(t *testing.T) {
	app, _ := buildTestApp(t)

	resp := do(t, app, http.MethodGet, "/api/reports?format=docx", "")
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	var body dto.ErrorResponse
	decode(t, resp, &body)
	assert.Contains(t, body.Fields, "format")
}

func TestRequestID_SeReenviaOSeGenera(t *testing.T) {
	app, _ := buildTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/stock", nil)
	req.Header.Set(apphttp.HeaderRequestID, "abc-123")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, "abc-123", resp.Header.Get(apphttp.HeaderRequestID))

	resp = do(t, app, http.MethodGet, "/api/stock", "")
	assert.Len(t, resp.Header.Get(apphttp.HeaderRequestID), 36)
}
