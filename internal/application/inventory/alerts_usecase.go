package inventory

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/domain"
	invdomain "github.com/jhoicas/stock-ledger-api/internal/domain/inventory"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
	"github.com/jhoicas/stock-ledger-api/pkg/logger"
)

// Formatos de exportación soportados.
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// AlertExporter serializa las vistas de alertas (CSV / XLSX).
type AlertExporter interface {
	LowStock(format string, rows []dto.LowStockItem) ([]byte, error)
	Expiry(format string, rows []dto.ExpiryItem) ([]byte, error)
}

// Export archivo generado para descarga.
type Export struct {
	Filename    string
	ContentType string
	Content     []byte
}

// notifyDaysLimit solo se notifican vencidos o a 7 días o menos.
const notifyDaysLimit = 7

// AlertsUseCase vistas derivadas de stock bajo y de vencimientos.
// La clasificación se hace al leer; nada de lo que calcula se persiste.
type AlertsUseCase struct {
	store         repository.QuantityStore
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
	exporter      AlertExporter
	notifier      AlertNotifier
	thresholds    invdomain.Thresholds
	log           *logger.Logger
	now           func() time.Time
}

// NewAlertsUseCase construye el caso de uso de alertas. exporter y notifier pueden ser nil.
func NewAlertsUseCase(
	store repository.QuantityStore,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	exporter AlertExporter,
	notifier AlertNotifier,
	thresholds invdomain.Thresholds,
	log *logger.Logger,
) *AlertsUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &AlertsUseCase{
		store:         store,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		exporter:      exporter,
		notifier:      notifier,
		thresholds:    thresholds,
		log:           log.Component("alerts"),
		now:           time.Now,
	}
}

// SetClock reemplaza time.Now (tests).
func (uc *AlertsUseCase) SetClock(now func() time.Time) { uc.now = now }

// LowStock devuelve los registros con cantidad <= mínimo, ordenados por urgencia:
// primero la menor proporción cantidad/mínimo, luego el mayor déficit.
func (uc *AlertsUseCase) LowStock(ctx context.Context, warehouse string) (*dto.LowStockResponse, error) {
	snap, err := loadSnapshot(ctx, uc.store, uc.productRepo, uc.warehouseRepo, repository.QuantityFilter{Warehouse: warehouse})
	if err != nil {
		return nil, err
	}

	resp := &dto.LowStockResponse{Items: []dto.LowStockItem{}}
	for _, rec := range snap.records {
		minStock := snap.minStock(rec)
		status, err := uc.thresholds.ClassifyStock(float64(rec.Quantity), float64(minStock))
		if err != nil || status == invdomain.StockOK {
			continue
		}
		switch status {
		case invdomain.StockCritical:
			resp.Summary.Critical++
		case invdomain.StockWarning:
			resp.Summary.Warning++
		case invdomain.StockLow:
			resp.Summary.Low++
		}
		resp.Items = append(resp.Items, dto.LowStockItem{
			ProductID:         rec.ProductID,
			SKU:               rec.SKU,
			ProductName:       rec.ProductName,
			Warehouse:         rec.Warehouse,
			WarehouseName:     snap.warehouseName(rec.Warehouse),
			Quantity:          rec.Quantity,
			MinStock:          minStock,
			Status:            string(status),
			SuggestedOrderQty: suggestedOrderQty(rec.Quantity, minStock),
		})
	}

	sort.SliceStable(resp.Items, func(i, j int) bool {
		a, b := resp.Items[i], resp.Items[j]
		ra, rb := fillRatio(a.Quantity, a.MinStock), fillRatio(b.Quantity, b.MinStock)
		if ra != rb {
			return ra < rb
		}
		if da, db := a.MinStock-a.Quantity, b.MinStock-b.Quantity; da != db {
			return da > db
		}
		return a.SKU < b.SKU
	})
	for i := range resp.Items {
		resp.Items[i].Priority = i + 1
	}
	return resp, nil
}

// Expiry devuelve los registros con vencimiento dentro de la ventana relevante
// (vencidos hace <= 30 días o por vencer en <= 30), ordenados por días restantes.
func (uc *AlertsUseCase) Expiry(ctx context.Context, warehouse string) (*dto.ExpiryResponse, error) {
	snap, err := loadSnapshot(ctx, uc.store, uc.productRepo, uc.warehouseRepo, repository.QuantityFilter{Warehouse: warehouse})
	if err != nil {
		return nil, err
	}
	today := startOfDay(uc.now())

	resp := &dto.ExpiryResponse{Items: []dto.ExpiryItem{}}
	for _, rec := range snap.records {
		if rec.Expiry == nil {
			continue
		}
		days, err := invdomain.DaysLeft(*rec.Expiry, today)
		if err != nil || !invdomain.IsRelevantExpiry(days) {
			continue
		}
		status, err := uc.thresholds.ClassifyExpiry(*rec.Expiry, today)
		if err != nil {
			continue
		}
		switch status {
		case invdomain.ExpiryExpired:
			resp.Summary.Expired++
		case invdomain.ExpiryCritical:
			resp.Summary.Critical++
		case invdomain.ExpiryWarning:
			resp.Summary.Warning++
		}
		resp.Items = append(resp.Items, dto.ExpiryItem{
			ProductID:     rec.ProductID,
			SKU:           rec.SKU,
			ProductName:   rec.ProductName,
			Warehouse:     rec.Warehouse,
			WarehouseName: snap.warehouseName(rec.Warehouse),
			Quantity:      rec.Quantity,
			Expiry:        *rec.Expiry,
			DaysLeft:      days,
			Status:        string(status),
		})
	}
	sort.SliceStable(resp.Items, func(i, j int) bool {
		if resp.Items[i].DaysLeft != resp.Items[j].DaysLeft {
			return resp.Items[i].DaysLeft < resp.Items[j].DaysLeft
		}
		return resp.Items[i].SKU < resp.Items[j].SKU
	})
	return resp, nil
}

// NotifyExpiry crea una notificación para cada fila vencida o a 7 días o menos de vencer.
func (uc *AlertsUseCase) NotifyExpiry(ctx context.Context, actorID, warehouse string) (*dto.NotifyResponse, error) {
	if uc.notifier == nil {
		return &dto.NotifyResponse{}, nil
	}
	view, err := uc.Expiry(ctx, warehouse)
	if err != nil {
		return nil, err
	}
	created := 0
	for _, it := range view.Items {
		if it.DaysLeft > notifyDaysLimit {
			continue
		}
		if err := uc.notifier.NotifyExpiry(ctx, actorID, it.ProductName, it.DaysLeft); err != nil {
			return nil, domain.StoreError("notify expiry", err)
		}
		created++
	}
	uc.log.Debug().Int("created", created).Str("user", actorID).Msg("notificaciones de vencimiento creadas")
	return &dto.NotifyResponse{Created: created}, nil
}

// ExportLowStock genera el archivo de la vista de stock bajo.
func (uc *AlertsUseCase) ExportLowStock(ctx context.Context, warehouse, format string) (*Export, error) {
	format, err := uc.checkExport(format)
	if err != nil {
		return nil, err
	}
	view, err := uc.LowStock(ctx, warehouse)
	if err != nil {
		return nil, err
	}
	content, err := uc.exporter.LowStock(format, view.Items)
	if err != nil {
		return nil, fmt.Errorf("export low stock: %w", err)
	}
	return newExport("low_stock", format, content, uc.now()), nil
}

// ExportExpiry genera el archivo de la vista de vencimientos.
func (uc *AlertsUseCase) ExportExpiry(ctx context.Context, warehouse, format string) (*Export, error) {
	format, err := uc.checkExport(format)
	if err != nil {
		return nil, err
	}
	view, err := uc.Expiry(ctx, warehouse)
	if err != nil {
		return nil, err
	}
	content, err := uc.exporter.Expiry(format, view.Items)
	if err != nil {
		return nil, fmt.Errorf("export expiry: %w", err)
	}
	return newExport("expiry", format, content, uc.now()), nil
}

func (uc *AlertsUseCase) checkExport(format string) (string, error) {
	if uc.exporter == nil {
		return "", fmt.Errorf("%w: exportación no configurada", domain.ErrInvalidInput)
	}
	if format == "" {
		format = FormatCSV
	}
	if format != FormatCSV && format != FormatXLSX {
		return "", fmt.Errorf("%w: formato %q", domain.ErrInvalidInput, format)
	}
	return format, nil
}

func newExport(name, format string, content []byte, now time.Time) *Export {
	ct := "text/csv; charset=utf-8"
	if format == FormatXLSX {
		ct = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return &Export{
		Filename:    fmt.Sprintf("%s_%s.%s", name, now.Format("20060102"), format),
		ContentType: ct,
		Content:     content,
	}
}

// suggestedOrderQty cantidad para volver a 1.5 × mínimo.
func suggestedOrderQty(qty, minStock int64) int64 {
	ideal := int64(math.Ceil(float64(minStock) * 1.5))
	if ideal <= qty {
		return 0
	}
	return ideal - qty
}

func fillRatio(qty, minStock int64) float64 {
	if minStock <= 0 {
		return float64(qty)
	}
	return float64(qty) / float64(minStock)
}

// startOfDay medianoche UTC; las fechas de vencimiento se guardan como fechas UTC.
func startOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

