package inventory

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

// snapshot vista de lectura: registros de cantidad más el catálogo necesario para clasificarlos.
type snapshot struct {
	records       []*entity.QuantityRecord
	productsByID  map[string]*entity.Product
	productsBySKU map[string]*entity.Product
	warehouses    map[string]*entity.Warehouse
}

// loadSnapshot carga registros, productos y bodegas en paralelo.
func loadSnapshot(
	ctx context.Context,
	store repository.QuantityStore,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	filter repository.QuantityFilter,
) (*snapshot, error) {
	var (
		records    []*entity.QuantityRecord
		products   []*entity.Product
		warehouses []*entity.Warehouse
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		records, err = store.List(gctx, filter)
		if err != nil {
			return fmt.Errorf("list quantity records: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		products, err = productRepo.List(gctx, 0, 0)
		if err != nil {
			return fmt.Errorf("list products: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		warehouses, err = warehouseRepo.List(gctx, 0, 0)
		if err != nil {
			return fmt.Errorf("list warehouses: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, storeErr(err)
	}

	s := &snapshot{
		records:       records,
		productsByID:  make(map[string]*entity.Product, len(products)),
		productsBySKU: make(map[string]*entity.Product, len(products)),
		warehouses:    make(map[string]*entity.Warehouse, len(warehouses)),
	}
	for _, p := range products {
		s.productsByID[p.ID] = p
		s.productsBySKU[p.SKU] = p
	}
	for _, w := range warehouses {
		s.warehouses[w.ID] = w
	}
	return s, nil
}

// minStock mínimo del producto del registro; DefaultMinStock si el producto ya no existe.
func (s *snapshot) minStock(rec *entity.QuantityRecord) int64 {
	if p, ok := s.productsByID[rec.ProductID]; ok {
		return p.MinStock
	}
	if p, ok := s.productsBySKU[rec.SKU]; ok {
		return p.MinStock
	}
	return entity.DefaultMinStock
}

func (s *snapshot) warehouseName(id string) string {
	if w, ok := s.warehouses[id]; ok {
		return w.Name
	}
	return id
}

