package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

// PurchaseOrderRepo órdenes de compra en memoria.
type PurchaseOrderRepo struct {
	db *DB
}

// NewPurchaseOrderRepository construye el repositorio sobre db.
func NewPurchaseOrderRepository(db *DB) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{db: db}
}

func (r *PurchaseOrderRepo) Create(_ context.Context, po *entity.PurchaseOrder) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.orders[po.ID]; ok {
		return domain.ErrDuplicate
	}
	r.db.orders[po.ID] = clonePO(po)
	return nil
}

func (r *PurchaseOrderRepo) GetByID(_ context.Context, id string) (*entity.PurchaseOrder, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	po, ok := r.db.orders[id]
	if !ok {
		return nil, nil
	}
	return clonePO(po), nil
}

// List más recientes primero; status vacío = todas.
func (r *PurchaseOrderRepo) List(_ context.Context, status string, limit, offset int) ([]*entity.PurchaseOrder, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	all := make([]*entity.PurchaseOrder, 0, len(r.db.orders))
	for _, po := range r.db.orders {
		if status != "" && po.Status != status {
			continue
		}
		all = append(all, clonePO(po))
	}
	sort.SliceStable(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		return all[i].ID < all[j].ID
	})
	from, to := page(len(all), limit, offset)
	return all[from:to], nil
}

func (r *PurchaseOrderRepo) UpdateStatus(_ context.Context, id, status string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	po, ok := r.db.orders[id]
	if !ok {
		return domain.ErrNotFound
	}
	po.Status = status
	po.UpdatedAt = time.Now()
	return nil
}

func clonePO(po *entity.PurchaseOrder) *entity.PurchaseOrder {
	c := *po
	c.Items = append([]entity.LineItem(nil), po.Items...)
	return &c
}
