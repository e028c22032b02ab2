package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/application/inventory"
	"github.com/jhoicas/stock-ledger-api/internal/application/notification"
	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	invdomain "github.com/jhoicas/stock-ledger-api/internal/domain/inventory"
	"github.com/jhoicas/stock-ledger-api/internal/infrastructure/memory"
)

type appEnv struct {
	db       *memory.DB
	register *inventory.RegisterMovementUseCase
	query    *inventory.QueryUseCase
	alerts   *inventory.AlertsUseCase
	notes    *notification.UseCase
}

func newAppEnv(t *testing.T, exporter inventory.AlertExporter) *appEnv {
	t.Helper()
	db := memory.NewDB()
	ctx := context.Background()
	products := memory.NewProductRepository(db)
	warehouses := memory.NewWarehouseRepository(db)
	store := memory.NewQuantityStore(db)
	notes := notification.NewUseCase(memory.NewNotificationRepository(db))
	th := invdomain.DefaultThresholds()

	require.NoError(t, products.Create(ctx, &entity.Product{ID: "p1", SKU: "RICE-1", Name: "Arroz", Category: "Granos", Unit: "kg", MinStock: 100, Price: decimal.NewFromInt(2)}))
	require.NoError(t, products.Create(ctx, &entity.Product{ID: "p2", SKU: "MILK-1", Name: "Leche", Category: "Lácteos", Unit: "l", MinStock: 10}))
	require.NoError(t, warehouses.Create(ctx, &entity.Warehouse{ID: "w1", Name: "Central"}))
	require.NoError(t, warehouses.Create(ctx, &entity.Warehouse{ID: "w2", Name: "Norte"}))

	engine := inventory.NewLedgerEngine(memory.NewTxRunner(db), nil)
	return &appEnv{
		db:       db,
		register: inventory.NewRegisterMovementUseCase(engine, products, warehouses, notes, th, nil),
		query:    inventory.NewQueryUseCase(store, memory.NewMovementLog(db), products, warehouses, th),
		alerts:   inventory.NewAlertsUseCase(store, products, warehouses, exporter, notes, th, nil),
		notes:    notes,
	}
}

func inReq(product, wh string, qty int64) dto.StockInRequest {
	return dto.StockInRequest{ProductID: product, Warehouse: wh, Quantity: qty, Supplier: "ACME", Invoice: "F-1"}
}

func outReq(product, wh string, qty int64) dto.StockOutRequest {
	return dto.StockOutRequest{ProductID: product, Warehouse: wh, Quantity: qty, Reason: "Venta", Invoice: "S-1"}
}

// ── RegisterMovement ─────────────────────────────────────────────────────────

func TestStockIn_CompletaMetadatosYValoresPorDefecto(t *testing.T) {
	env := newAppEnv(t, nil)

	res, err := env.register.StockIn(context.Background(), "user-1", inReq("p1", "w1", 150))
	require.NoError(t, err)

	assert.Equal(t, "RICE-1", res.Movement.SKU)
	assert.Equal(t, "Arroz", res.Movement.ProductName)
	assert.Equal(t, "kg", res.Movement.Unit)
	assert.Equal(t, "user-1", res.Movement.CreatedBy)
	assert.Regexp(t, `^BATCH-\d{1,6}$`, res.Movement.Batch)
	assert.Equal(t, "Zone - Rack - Bin", res.Movement.Location)
	assert.Equal(t, int64(150), res.Record.Quantity)
	assert.Equal(t, "OK", res.Record.Status)
}

func TestStockIn_VencimientoYUbicacion(t *testing.T) {
	env := newAppEnv(t, nil)
	req := inReq("p2", "w1", 5)
	req.ExpiryDate = "2025-02-01"
	req.Zone, req.Bin = "A", "3"
	req.Batch = "L-77"

	res, err := env.register.StockIn(context.Background(), "u", req)
	require.NoError(t, err)
	require.NotNil(t, res.Record.Expiry)
	assert.Equal(t, time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), *res.Record.Expiry)
	assert.Equal(t, "A - Rack - 3", res.Movement.Location)
	assert.Equal(t, "L-77", res.Movement.Batch)
}

func TestStockIn_FormularioInvalido(t *testing.T) {
	env := newAppEnv(t, nil)
	ctx := context.Background()

	req := inReq("p1", "w1", 5)
	req.Supplier = ""
	_, err := env.register.StockIn(ctx, "u", req)
	assert.ErrorIs(t, err, domain.ErrInvalidMovement)

	_, err = env.register.StockIn(ctx, "u", inReq("p1", "w1", 0))
	assert.ErrorIs(t, err, domain.ErrInvalidMovement)

	req = inReq("p1", "w1", 5)
	req.ExpiryDate = "01/02/2025"
	_, err = env.register.StockIn(ctx, "u", req)
	assert.ErrorIs(t, err, domain.ErrInvalidMovement)
}

func TestStockIn_ProductoOBodegaInexistente(t *testing.T) {
	env := newAppEnv(t, nil)
	ctx := context.Background()

	_, err := env.register.StockIn(ctx, "u", inReq("nope", "w1", 1))
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = env.register.StockIn(ctx, "u", inReq("p1", "nope", 1))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStockOut_NotificaStockBajo(t *testing.T) {
	env := newAppEnv(t, nil)
	ctx := context.Background()

	_, err := env.register.StockIn(ctx, "u1", inReq("p1", "w1", 150))
	require.NoError(t, err)

	res, err := env.register.StockOut(ctx, "u1", outReq("p1", "w1", 40))
	require.NoError(t, err)
	assert.Equal(t, "OK", res.Record.Status)

	res, err = env.register.StockOut(ctx, "u1", outReq("p1", "w1", 95))
	require.NoError(t, err)
	assert.Equal(t, int64(15), res.Record.Quantity)
	assert.Equal(t, "Critical", res.Record.Status)
	assert.Equal(t, "Venta", res.Movement.Reason)

	list, err := env.notes.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list.Items, 1, "solo la salida que deja el registro en alerta notifica")
	assert.Equal(t, entity.NotificationLowStock, list.Items[0].Type)
}

func TestStockOut_Insuficiente(t *testing.T) {
	env := newAppEnv(t, nil)
	_, err := env.register.StockOut(context.Background(), "u1", outReq("p1", "w1", 1))
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

// ── Consultas ────────────────────────────────────────────────────────────────

func TestListInventory_FiltrosYEstado(t *testing.T) {
	env := newAppEnv(t, nil)
	ctx := context.Background()
	_, err := env.register.StockIn(ctx, "u", inReq("p1", "w1", 45))
	require.NoError(t, err)
	_, err = env.register.StockIn(ctx, "u", inReq("p2", "w2", 50))
	require.NoError(t, err)

	all, err := env.query.ListInventory(ctx, dto.InventoryQuery{})
	require.NoError(t, err)
	require.Len(t, all.Items, 2)
	assert.Equal(t, "MILK-1", all.Items[0].SKU)
	assert.Equal(t, "Norte", all.Items[0].WarehouseName)
	assert.Equal(t, "Warning", all.Items[1].Status)

	onlyW1, err := env.query.ListInventory(ctx, dto.InventoryQuery{Warehouse: "w1"})
	require.NoError(t, err)
	require.Len(t, onlyW1.Items, 1)

	search, err := env.query.ListInventory(ctx, dto.InventoryQuery{Search: "lech"})
	require.NoError(t, err)
	require.Len(t, search.Items, 1)
	assert.Equal(t, "p2", search.Items[0].ProductID)
}

func TestListMovements_PorTipoYPaginado(t *testing.T) {
	env := newAppEnv(t, nil)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		_, err := env.register.StockIn(ctx, "u", inReq("p1", "w1", 10))
		require.NoError(t, err)
	}
	_, err := env.register.StockOut(ctx, "u", outReq("p1", "w1", 5))
	require.NoError(t, err)

	recent, err := env.query.ListMovements(ctx, dto.MovementQuery{PageRequest: dto.PageRequest{Limit: 2}})
	require.NoError(t, err)
	require.Len(t, recent.Items, 2)
	assert.Equal(t, "StockOut", recent.Items[0].Type, "más reciente primero")

	ins, err := env.query.ListMovements(ctx, dto.MovementQuery{Type: "StockIn"})
	require.NoError(t, err)
	assert.Len(t, ins.Items, 3)

	_, err = env.query.ListMovements(ctx, dto.MovementQuery{Type: "Transfer"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ── Alertas ──────────────────────────────────────────────────────────────────

func TestLowStock_OrdenYResumen(t *testing.T) {
	env := newAppEnv(t, nil)
	ctx := context.Background()
	_, err := env.register.StockIn(ctx, "u", inReq("p1", "w1", 45)) // 45/100 Warning
	require.NoError(t, err)
	_, err = env.register.StockIn(ctx, "u", inReq("p2", "w1", 1)) // 1/10 Critical
	require.NoError(t, err)
	_, err = env.register.StockIn(ctx, "u", inReq("p2", "w2", 50)) // OK
	require.NoError(t, err)

	view, err := env.alerts.LowStock(ctx, "")
	require.NoError(t, err)
	require.Len(t, view.Items, 2)
	assert.Equal(t, "MILK-1", view.Items[0].SKU)
	assert.Equal(t, "Critical", view.Items[0].Status)
	assert.Equal(t, 1, view.Items[0].Priority)
	assert.Equal(t, int64(14), view.Items[0].SuggestedOrderQty)
	assert.Equal(t, "Central", view.Items[0].WarehouseName)
	assert.Equal(t, dto.LowStockSummary{Critical: 1, Warning: 1}, view.Summary)
}

func TestExpiry_VentanaYEstados(t *testing.T) {
	env := newAppEnv(t, nil)
	ctx := context.Background()
	env.alerts.SetClock(func() time.Time { return time.Date(2025, 1, 1, 15, 30, 0, 0, time.UTC) })

	for wh, date := range map[string]string{"w1": "2024-12-31", "w2": "2025-01-05"} {
		req := inReq("p2", wh, 3)
		req.ExpiryDate = date
		_, err := env.register.StockIn(ctx, "u", req)
		require.NoError(t, err)
	}
	far := inReq("p1", "w1", 3)
	far.ExpiryDate = "2025-03-01" // fuera de la ventana
	_, err := env.register.StockIn(ctx, "u", far)
	require.NoError(t, err)

	view, err := env.alerts.Expiry(ctx, "")
	require.NoError(t, err)
	require.Len(t, view.Items, 2)
	assert.Equal(t, "Expired", view.Items[0].Status)
	assert.Equal(t, -1, view.Items[0].DaysLeft)
	assert.Equal(t, "Critical", view.Items[1].Status)
	assert.Equal(t, 4, view.Items[1].DaysLeft)
	assert.Equal(t, dto.ExpirySummary{Expired: 1, Critical: 1}, view.Summary)

	sent, err := env.alerts.NotifyExpiry(ctx, "u9", "")
	require.NoError(t, err)
	assert.Equal(t, 2, sent.Created)
	list, err := env.notes.List(ctx, "u9")
	require.NoError(t, err)
	assert.Len(t, list.Items, 2)
}

type recordingExporter struct {
	format string
	rows   int
}

func (e *recordingExporter) LowStock(format string, rows []dto.LowStockItem) ([]byte, error) {
	e.format, e.rows = format, len(rows)
	return []byte("ok"), nil
}

func (e *recordingExporter) Expiry(format string, rows []dto.ExpiryItem) ([]byte, error) {
	e.format, e.rows = format, len(rows)
	return []byte("ok"), nil
}

func TestExportLowStock_Formatos(t *testing.T) {
	exp := &recordingExporter{}
	env := newAppEnv(t, exp)
	ctx := context.Background()
	_, err := env.register.StockIn(ctx, "u", inReq("p2", "w1", 1))
	require.NoError(t, err)

	file, err := env.alerts.ExportLowStock(ctx, "", "")
	require.NoError(t, err)
	assert.Equal(t, "csv", exp.format, "csv por defecto")
	assert.Equal(t, 1, exp.rows)
	assert.Contains(t, file.ContentType, "text/csv")
	assert.Contains(t, file.Filename, "low_stock_")

	file, err = env.alerts.ExportExpiry(ctx, "", "xlsx")
	require.NoError(t, err)
	assert.Contains(t, file.Filename, ".xlsx")

	_, err = env.alerts.ExportLowStock(ctx, "", "pdf")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
