package memory

import (
	"context"
	"strings"

	"github.com/jhoicas/stock-ledger-api/internal/application/inventory"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner transacción en memoria: las escrituras se acumulan en un buffer y se aplican juntas
// al confirmar. Si fn devuelve error el buffer se descarta.
type TxRunner struct {
	db *DB
}

// NewTxRunner construye el runner sobre db.
func NewTxRunner(db *DB) *TxRunner {
	return &TxRunner{db: db}
}

// Run ejecuta fn con un store y un libro atados a la transacción.
func (r *TxRunner) Run(ctx context.Context, fn func(store repository.QuantityStore, log repository.MovementLog) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	tx := &memTx{db: r.db, records: make(map[entity.RecordKey]*entity.QuantityRecord)}
	if err := fn(&txQuantityStore{tx: tx}, &txMovementLog{tx: tx}); err != nil {
		return err
	}
	tx.commit()
	return nil
}

type memTx struct {
	db      *DB
	records map[entity.RecordKey]*entity.QuantityRecord
	events  []*entity.MovementEvent
}

func (t *memTx) commit() {
	t.db.mu.Lock()
	defer t.db.mu.Unlock()
	for k, rec := range t.records {
		t.db.records[k] = rec
	}
	t.db.movements = append(t.db.movements, t.events...)
}

type txQuantityStore struct {
	tx *memTx
}

func (s *txQuantityStore) Get(ctx context.Context, sku, warehouse string) (*entity.QuantityRecord, error) {
	if rec, ok := s.tx.records[entity.NewRecordKey(sku, warehouse)]; ok {
		return rec.Clone(), nil
	}
	return NewQuantityStore(s.tx.db).Get(ctx, sku, warehouse)
}

func (s *txQuantityStore) GetForUpdate(ctx context.Context, sku, warehouse string) (*entity.QuantityRecord, error) {
	return s.Get(ctx, sku, warehouse)
}

func (s *txQuantityStore) Upsert(_ context.Context, record *entity.QuantityRecord) error {
	s.tx.records[record.Key()] = record.Clone()
	return nil
}

func (s *txQuantityStore) List(ctx context.Context, f repository.QuantityFilter) ([]*entity.QuantityRecord, error) {
	committed, err := NewQuantityStore(s.tx.db).List(ctx, repository.QuantityFilter{Warehouse: f.Warehouse, Search: f.Search})
	if err != nil {
		return nil, err
	}
	seen := make(map[entity.RecordKey]bool, len(committed))
	out := make([]*entity.QuantityRecord, 0, len(committed)+len(s.tx.records))
	for _, rec := range committed {
		if pending, ok := s.tx.records[rec.Key()]; ok {
			rec = pending.Clone()
		}
		seen[rec.Key()] = true
		out = append(out, rec)
	}
	search := strings.TrimSpace(f.Search)
	for k, rec := range s.tx.records {
		if seen[k] || (f.Warehouse != "" && rec.Warehouse != f.Warehouse) {
			continue
		}
		if search != "" && !containsFold(rec.SKU, search) && !containsFold(rec.ProductName, search) {
			continue
		}
		out = append(out, rec.Clone())
	}
	from, to := page(len(out), f.Limit, f.Offset)
	return out[from:to], nil
}

type txMovementLog struct {
	tx *memTx
}

func (l *txMovementLog) Append(_ context.Context, ev *entity.MovementEvent) error {
	l.tx.events = append(l.tx.events, cloneEvent(ev))
	return nil
}

func (l *txMovementLog) ListRecent(ctx context.Context, limit int) ([]*entity.MovementEvent, error) {
	return NewMovementLog(l.tx.db).ListRecent(ctx, limit)
}

func (l *txMovementLog) ListByType(ctx context.Context, t entity.MovementType, limit, offset int) ([]*entity.MovementEvent, error) {
	return NewMovementLog(l.tx.db).ListByType(ctx, t, limit, offset)
}
