package inventory

import (
	"context"

	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	invdomain "github.com/jhoicas/stock-ledger-api/internal/domain/inventory"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

// QueryUseCase lecturas del inventario: saldos por (sku, bodega) y el libro de movimientos.
type QueryUseCase struct {
	store         repository.QuantityStore
	movements     repository.MovementLog
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
	thresholds    invdomain.Thresholds
}

// NewQueryUseCase construye el caso de uso de consultas (repos fuera de transacción).
func NewQueryUseCase(
	store repository.QuantityStore,
	movements repository.MovementLog,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	thresholds invdomain.Thresholds,
) *QueryUseCase {
	return &QueryUseCase{
		store:         store,
		movements:     movements,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		thresholds:    thresholds,
	}
}

// ListInventory devuelve los registros filtrados por bodega y búsqueda, con su estado de stock.
func (uc *QueryUseCase) ListInventory(ctx context.Context, q dto.InventoryQuery) (*dto.InventoryListResponse, error) {
	q.DefaultPage()
	if err := dto.Validate(q); err != nil {
		return nil, err
	}
	snap, err := loadSnapshot(ctx, uc.store, uc.productRepo, uc.warehouseRepo, repository.QuantityFilter{
		Warehouse: q.Warehouse,
		Search:    q.Search,
		Limit:     q.Limit,
		Offset:    q.Offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.QuantityRecordResponse, 0, len(snap.records))
	for _, rec := range snap.records {
		r := toRecordResponse(rec, snap.minStock(rec), uc.thresholds)
		r.WarehouseName = snap.warehouseName(rec.Warehouse)
		items = append(items, r)
	}
	return &dto.InventoryListResponse{
		Items: items,
		Page:  q.Response(len(items)),
	}, nil
}

// ListMovements recorre el libro de movimientos, más recientes primero.
func (uc *QueryUseCase) ListMovements(ctx context.Context, q dto.MovementQuery) (*dto.MovementListResponse, error) {
	q.DefaultPage()
	if err := dto.Validate(q); err != nil {
		return nil, err
	}

	var (
		events []*entity.MovementEvent
		err    error
	)
	if q.Type != "" {
		events, err = uc.movements.ListByType(ctx, entity.MovementType(q.Type), q.Limit, q.Offset)
	} else {
		events, err = uc.movements.ListRecent(ctx, q.Limit+q.Offset)
		if err == nil {
			if q.Offset >= len(events) {
				events = nil
			} else {
				events = events[q.Offset:]
			}
		}
	}
	if err != nil {
		return nil, domain.StoreError("list movements", err)
	}

	items := make([]dto.MovementResponse, 0, len(events))
	for _, ev := range events {
		items = append(items, toMovementResponse(ev))
	}
	return &dto.MovementListResponse{
		Items: items,
		Page:  q.Response(len(items)),
	}, nil
}
