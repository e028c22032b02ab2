package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/application/inventory"
	"github.com/jhoicas/stock-ledger-api/internal/application/notification"
	"github.com/jhoicas/stock-ledger-api/internal/application/purchasing"
	"github.com/jhoicas/stock-ledger-api/internal/application/usecase"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	invdomain "github.com/jhoicas/stock-ledger-api/internal/domain/inventory"
	"github.com/jhoicas/stock-ledger-api/internal/infrastructure/export"
	"github.com/jhoicas/stock-ledger-api/internal/infrastructure/memory"
	"github.com/jhoicas/stock-ledger-api/internal/infrastructure/metrics"
	"github.com/jhoicas/stock-ledger-api/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/stock-ledger-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/stock-ledger-api/pkg/jwt"
)

// newTestServer arma la API completa sobre el store en memoria con un producto (p1, min 100)
// y una bodega (w1).
func newTestServer(t *testing.T) *fiber.App {
	t.Helper()
	ctx := context.Background()
	db := memory.NewDB()
	products := memory.NewProductRepository(db)
	warehouses := memory.NewWarehouseRepository(db)
	suppliers := memory.NewSupplierRepository(db)
	store := memory.NewQuantityStore(db)
	th := invdomain.DefaultThresholds()

	require.NoError(t, products.Create(ctx, &entity.Product{ID: "p1", SKU: "RICE-1", Name: "Arroz", Unit: "kg", MinStock: 100}))
	require.NoError(t, warehouses.Create(ctx, &entity.Warehouse{ID: "w1", Name: "Central"}))

	reg := prometheus.NewRegistry()
	engine := inventory.NewLedgerEngine(memory.NewTxRunner(db), nil,
		inventory.WithRecorder(metrics.NewLedgerMetrics(reg)))
	notes := notification.NewUseCase(memory.NewNotificationRepository(db))

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		ServiceName:      "stock-ledger-test",
		ProductUC:        usecase.NewProductUseCase(products),
		WarehouseUC:      usecase.NewWarehouseUseCase(warehouses),
		SupplierUC:       usecase.NewSupplierUseCase(suppliers),
		CategoryUC:       usecase.NewCategoryUseCase(memory.NewCategoryRepository(db), products),
		BrandUC:          usecase.NewBrandUseCase(memory.NewBrandRepository(db), products),
		UserUC:           usecase.NewUserUseCase(memory.NewUserRepository(db)),
		RegisterMovement: inventory.NewRegisterMovementUseCase(engine, products, warehouses, notes, th, nil),
		InventoryQuery:   inventory.NewQueryUseCase(store, memory.NewMovementLog(db), products, warehouses, th),
		Alerts:           inventory.NewAlertsUseCase(store, products, warehouses, export.New(), notes, th, nil),
		PurchaseOrders: purchasing.NewUseCase(memory.NewPurchaseOrderRepository(db), suppliers,
			pdf.NewMarotoPDFGenerator("Stock Ledger", "INR"), decimal.RequireFromString("0.18")),
		Notifications: notes,
		JWTSecret:     testJWTSecret,
		Metrics:       reg,
	})
	return app
}

func call(t *testing.T, app *fiber.App, method, path, role string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if role != "" {
		req.Header.Set("Authorization", tokenForRole(t, role))
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func stockIn(qty int64) dto.StockInRequest {
	return dto.StockInRequest{ProductID: "p1", Warehouse: "w1", Quantity: qty, Supplier: "ACME", Invoice: "F-1"}
}

func stockOut(qty int64) dto.StockOutRequest {
	return dto.StockOutRequest{ProductID: "p1", Warehouse: "w1", Quantity: qty, Reason: "Venta", Invoice: "S-1"}
}

func TestAPI_StockInYStockOut(t *testing.T) {
	app := newTestServer(t)

	resp := call(t, app, http.MethodPost, "/api/inventory/stock-in", pkgjwt.RoleStaff, stockIn(100))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	in := decode[dto.MovementResultResponse](t, resp)
	assert.Equal(t, int64(100), in.Record.Quantity)
	assert.Equal(t, testUserID, in.Movement.CreatedBy)

	resp = call(t, app, http.MethodPost, "/api/inventory/stock-out", pkgjwt.RoleStaff, stockOut(60))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	out := decode[dto.MovementResultResponse](t, resp)
	assert.Equal(t, int64(40), out.Record.Quantity)
	assert.Equal(t, string(invdomain.StockWarning), out.Record.Status)

	resp = call(t, app, http.MethodPost, "/api/inventory/stock-out", pkgjwt.RoleStaff, stockOut(60))
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	errBody := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "INSUFFICIENT_STOCK", errBody.Code)

	list := decode[dto.InventoryListResponse](t, call(t, app, http.MethodGet, "/api/inventory?warehouse=w1", pkgjwt.RoleViewer, nil))
	require.Len(t, list.Items, 1)
	assert.Equal(t, int64(40), list.Items[0].Quantity)
	assert.Equal(t, "Central", list.Items[0].WarehouseName)

	movs := decode[dto.MovementListResponse](t, call(t, app, http.MethodGet, "/api/inventory/movements", pkgjwt.RoleViewer, nil))
	require.Len(t, movs.Items, 2)
	assert.Equal(t, string(entity.MovementStockOut), movs.Items[0].Type)

	// la salida que dejó el stock en Warning generó un aviso para el usuario
	notes := decode[dto.NotificationListResponse](t, call(t, app, http.MethodGet, "/api/notifications", pkgjwt.RoleStaff, nil))
	require.Len(t, notes.Items, 1)
	assert.Equal(t, 1, notes.Unread)

	resp = call(t, app, http.MethodPost, "/api/notifications/read-all", pkgjwt.RoleStaff, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestAPI_ErroresDeValidacion(t *testing.T) {
	app := newTestServer(t)

	resp := call(t, app, http.MethodPost, "/api/inventory/stock-in", pkgjwt.RoleStaff, stockIn(0))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", decode[dto.ErrorResponse](t, resp).Code)

	req := stockIn(5)
	req.ProductID = "nope"
	resp = call(t, app, http.MethodPost, "/api/inventory/stock-in", pkgjwt.RoleStaff, req)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = call(t, app, http.MethodGet, "/api/inventory/movements?type=Transfer", pkgjwt.RoleViewer, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	httpReq := httptest.NewRequest(http.MethodPost, "/api/inventory/stock-in", strings.NewReader("{"))
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", tokenForRole(t, pkgjwt.RoleStaff))
	raw, err := app.Test(httpReq, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, raw.StatusCode)
}

func TestAPI_ViewerSoloLee(t *testing.T) {
	app := newTestServer(t)

	resp := call(t, app, http.MethodPost, "/api/inventory/stock-in", pkgjwt.RoleViewer, stockIn(5))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = call(t, app, http.MethodGet, "/api/inventory", pkgjwt.RoleViewer, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = call(t, app, http.MethodGet, "/api/inventory", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAPI_AlertasYExportacion(t *testing.T) {
	app := newTestServer(t)
	require.Equal(t, http.StatusCreated,
		call(t, app, http.MethodPost, "/api/inventory/stock-in", pkgjwt.RoleStaff, stockIn(45)).StatusCode)

	low := decode[dto.LowStockResponse](t, call(t, app, http.MethodGet, "/api/alerts/low-stock", pkgjwt.RoleViewer, nil))
	require.Len(t, low.Items, 1)
	assert.Equal(t, string(invdomain.StockWarning), low.Items[0].Status)

	resp := call(t, app, http.MethodGet, "/api/alerts/low-stock/export?format=csv", pkgjwt.RoleViewer, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "attachment; filename=\"low_stock_")
	body, _ := io.ReadAll(resp.Body)
	lines := strings.Split(strings.TrimSpace(string(body)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, strings.Join(export.LowStockHeader, ","), strings.TrimSpace(lines[0]))
	assert.Contains(t, lines[1], "RICE-1")

	resp = call(t, app, http.MethodGet, "/api/alerts/low-stock/export?format=pdf", pkgjwt.RoleViewer, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAPI_OrdenesDeCompra(t *testing.T) {
	app := newTestServer(t)

	totals := decode[dto.TotalsResponse](t, call(t, app, http.MethodPost, "/api/purchase-orders/calculate", pkgjwt.RoleViewer,
		dto.CalculatePORequest{Items: []dto.LineItemDTO{
			{Name: "Arroz", Quantity: decimal.NewFromInt(10), UnitPrice: decimal.NewFromInt(25)},
			{Name: "vacía", Quantity: decimal.Zero, UnitPrice: decimal.NewFromInt(99)},
		}}))
	assert.True(t, totals.Subtotal.Equal(decimal.NewFromInt(250)))
	assert.True(t, totals.Tax.Equal(decimal.NewFromInt(45)))
	assert.True(t, totals.Total.Equal(decimal.NewFromInt(295)))

	resp := call(t, app, http.MethodPost, "/api/suppliers", pkgjwt.RoleManager, dto.CreateSupplierRequest{Name: "Acme"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	supplier := decode[dto.SupplierResponse](t, resp)

	resp = call(t, app, http.MethodPost, "/api/purchase-orders", pkgjwt.RoleManager, dto.CreatePORequest{
		SupplierID: supplier.ID,
		Items:      []dto.LineItemDTO{{Name: "Arroz", Quantity: decimal.NewFromInt(10), UnitPrice: decimal.NewFromInt(25)}},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	po := decode[dto.PurchaseOrderResponse](t, resp)
	assert.Equal(t, entity.PurchaseOrderSent, po.Status)

	resp = call(t, app, http.MethodGet, "/api/purchase-orders/"+po.ID+"/pdf", pkgjwt.RoleViewer, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get(fiber.HeaderContentType))

	resp = call(t, app, http.MethodPost, "/api/purchase-orders/"+po.ID+"/complete", pkgjwt.RoleManager, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp = call(t, app, http.MethodPost, "/api/purchase-orders/"+po.ID+"/complete", pkgjwt.RoleManager, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = call(t, app, http.MethodGet, "/api/purchase-orders/nope", pkgjwt.RoleViewer, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAPI_Catalogo(t *testing.T) {
	app := newTestServer(t)

	resp := call(t, app, http.MethodPost, "/api/products", pkgjwt.RoleStaff,
		dto.CreateProductRequest{SKU: "RICE-1", Name: "Duplicado", Unit: "kg"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "DUPLICATE", decode[dto.ErrorResponse](t, resp).Code)

	resp = call(t, app, http.MethodPost, "/api/warehouses", pkgjwt.RoleStaff, dto.CreateWarehouseRequest{Name: "Sur"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode, "crear bodegas requiere Admin o Manager")

	resp = call(t, app, http.MethodPost, "/api/warehouses", pkgjwt.RoleAdmin, dto.CreateWarehouseRequest{Name: "central"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = call(t, app, http.MethodDelete, "/api/products/p1", pkgjwt.RoleAdmin, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp = call(t, app, http.MethodGet, "/api/products/p1", pkgjwt.RoleViewer, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAPI_HealthYMetrics(t *testing.T) {
	app := newTestServer(t)
	require.Equal(t, http.StatusCreated,
		call(t, app, http.MethodPost, "/api/inventory/stock-in", pkgjwt.RoleStaff, stockIn(5)).StatusCode)

	resp := call(t, app, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = call(t, app, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), `stock_ledger_movements_applied_total{type="StockIn"} 1`)
}
