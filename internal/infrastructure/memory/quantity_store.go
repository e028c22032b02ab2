package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

var _ repository.QuantityStore = (*QuantityStore)(nil)

// QuantityStore lecturas y escrituras directas (fuera de transacción) sobre los registros de cantidad.
type QuantityStore struct {
	db *DB
}

// NewQuantityStore construye el store sobre db.
func NewQuantityStore(db *DB) *QuantityStore {
	return &QuantityStore{db: db}
}

// Get devuelve una copia del registro o (nil, nil).
func (s *QuantityStore) Get(_ context.Context, sku, warehouse string) (*entity.QuantityRecord, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	return s.db.records[entity.NewRecordKey(sku, warehouse)].Clone(), nil
}

// GetForUpdate en memoria no bloquea: la exclusión por llave la da el KeyLocker del motor.
func (s *QuantityStore) GetForUpdate(ctx context.Context, sku, warehouse string) (*entity.QuantityRecord, error) {
	return s.Get(ctx, sku, warehouse)
}

// Upsert guarda una copia del registro.
func (s *QuantityStore) Upsert(_ context.Context, record *entity.QuantityRecord) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	s.db.records[record.Key()] = record.Clone()
	return nil
}

// List filtra por bodega y búsqueda; orden por SKU y bodega.
func (s *QuantityStore) List(_ context.Context, f repository.QuantityFilter) ([]*entity.QuantityRecord, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	out := make([]*entity.QuantityRecord, 0, len(s.db.records))
	search := strings.TrimSpace(f.Search)
	for _, r := range s.db.records {
		if f.Warehouse != "" && r.Warehouse != f.Warehouse {
			continue
		}
		if search != "" && !containsFold(r.SKU, search) && !containsFold(r.ProductName, search) {
			continue
		}
		out = append(out, r.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SKU != out[j].SKU {
			return out[i].SKU < out[j].SKU
		}
		return out[i].Warehouse < out[j].Warehouse
	})
	from, to := page(len(out), f.Limit, f.Offset)
	return out[from:to], nil
}
