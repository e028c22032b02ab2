package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	invdomain "github.com/jhoicas/stock-ledger-api/internal/domain/inventory"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
	"github.com/jhoicas/stock-ledger-api/pkg/logger"
)

// RegisterMovementUseCase traduce los formularios de entrada/salida en movimientos del libro:
// resuelve los metadatos del producto, valida la bodega, completa lote y ubicación por defecto
// y delega la mutación al LedgerEngine.
type RegisterMovementUseCase struct {
	ledger        *LedgerEngine
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
	notifier      AlertNotifier
	thresholds    invdomain.Thresholds
	log           *logger.Logger
	now           func() time.Time
}

// NewRegisterMovementUseCase construye el caso de uso. notifier puede ser nil.
func NewRegisterMovementUseCase(
	ledger *LedgerEngine,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	notifier AlertNotifier,
	thresholds invdomain.Thresholds,
	log *logger.Logger,
) *RegisterMovementUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &RegisterMovementUseCase{
		ledger:        ledger,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		notifier:      notifier,
		thresholds:    thresholds,
		log:           log.Component("register_movement"),
		now:           time.Now,
	}
}

// StockIn registra una entrada de mercancía (proveedor + factura obligatorios).
func (uc *RegisterMovementUseCase) StockIn(ctx context.Context, actorID string, in dto.StockInRequest) (*dto.MovementResultResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidMovement, err)
	}
	var expiry *time.Time
	if in.ExpiryDate != "" {
		t, err := time.Parse(dto.DateLayout, in.ExpiryDate)
		if err != nil {
			return nil, fmt.Errorf("%w: expiry_date inválida", domain.ErrInvalidMovement)
		}
		expiry = &t
	}

	product, err := uc.resolve(ctx, in.ProductID, in.Warehouse)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	ev := newEvent(entity.MovementStockIn, product, in.Warehouse, in.Quantity, actorID, now)
	ev.Supplier = strings.TrimSpace(in.Supplier)
	ev.Invoice = strings.TrimSpace(in.Invoice)
	ev.Batch = batchOrDefault(in.Batch, now)
	ev.Expiry = expiry
	ev.Location = entity.FormatLocation(in.Zone, in.Rack, in.Bin)
	ev.Remarks = in.Remarks

	rec, err := uc.ledger.ApplyMovement(ctx, ev)
	if err != nil {
		return nil, err
	}
	return uc.result(ev, rec, product), nil
}

// StockOut registra una salida (motivo + factura obligatorios). Si el saldo resultante queda
// en un nivel de alerta se notifica al usuario que registró la salida.
func (uc *RegisterMovementUseCase) StockOut(ctx context.Context, actorID string, in dto.StockOutRequest) (*dto.MovementResultResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidMovement, err)
	}
	product, err := uc.resolve(ctx, in.ProductID, in.Warehouse)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	ev := newEvent(entity.MovementStockOut, product, in.Warehouse, in.Quantity, actorID, now)
	ev.Reason = strings.TrimSpace(in.Reason)
	ev.Invoice = strings.TrimSpace(in.Invoice)
	ev.Batch = batchOrDefault(in.Batch, now)
	ev.Location = entity.FormatLocation(in.Zone, in.Rack, in.Bin)
	ev.Remarks = in.Remarks

	rec, err := uc.ledger.ApplyMovement(ctx, ev)
	if err != nil {
		return nil, err
	}
	res := uc.result(ev, rec, product)

	if uc.notifier != nil && res.Record.Status != string(invdomain.StockOK) {
		// El movimiento ya está confirmado; una falla al notificar no lo revierte.
		if err := uc.notifier.NotifyLowStock(ctx, actorID, rec, res.Record.Status); err != nil {
			uc.log.Warn().Err(err).Str("sku", rec.SKU).Msg("no se pudo crear la notificación de stock bajo")
		}
	}
	return res, nil
}

// resolve valida que el producto y la bodega existan.
func (uc *RegisterMovementUseCase) resolve(ctx context.Context, productID, warehouseID string) (*entity.Product, error) {
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, domain.StoreError("get product", err)
	}
	if product == nil {
		return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, productID)
	}
	wh, err := uc.warehouseRepo.GetByID(ctx, warehouseID)
	if err != nil {
		return nil, domain.StoreError("get warehouse", err)
	}
	if wh == nil {
		return nil, fmt.Errorf("%w: bodega %s", domain.ErrNotFound, warehouseID)
	}
	return product, nil
}

func (uc *RegisterMovementUseCase) result(ev *entity.MovementEvent, rec *entity.QuantityRecord, product *entity.Product) *dto.MovementResultResponse {
	return &dto.MovementResultResponse{
		Movement: toMovementResponse(ev),
		Record:   toRecordResponse(rec, product.MinStock, uc.thresholds),
	}
}

func newEvent(t entity.MovementType, p *entity.Product, warehouse string, qty int64, actorID string, now time.Time) *entity.MovementEvent {
	return &entity.MovementEvent{
		Type:        t,
		ProductID:   p.ID,
		ProductName: p.Name,
		SKU:         p.SKU,
		Category:    p.Category,
		Warehouse:   strings.TrimSpace(warehouse),
		Quantity:    qty,
		Unit:        p.Unit,
		CreatedBy:   actorID,
		CreatedAt:   now,
	}
}

func batchOrDefault(batch string, now time.Time) string {
	if b := strings.TrimSpace(batch); b != "" {
		return b
	}
	return entity.DefaultBatch(now)
}
