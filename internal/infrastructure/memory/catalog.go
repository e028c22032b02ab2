package memory

import (
	"context"
	"strings"

	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

var (
	_ repository.ProductRepository   = (*ProductRepo)(nil)
	_ repository.WarehouseRepository = (*WarehouseRepo)(nil)
	_ repository.SupplierRepository  = (*SupplierRepo)(nil)
)

// ProductRepo catálogo de productos en memoria. El SKU es único.
type ProductRepo struct {
	db *DB
}

// NewProductRepository construye el repositorio sobre db.
func NewProductRepository(db *DB) *ProductRepo {
	return &ProductRepo{db: db}
}

func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.products[p.ID]; ok {
		return domain.ErrDuplicate
	}
	for _, existing := range r.db.products {
		if existing.SKU == p.SKU {
			return domain.ErrDuplicate
		}
	}
	c := *p
	r.db.products[p.ID] = &c
	return nil
}

func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	p, ok := r.db.products[id]
	if !ok {
		return nil, nil
	}
	c := *p
	return &c, nil
}

func (r *ProductRepo) GetBySKU(_ context.Context, sku string) (*entity.Product, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	for _, p := range r.db.products {
		if p.SKU == sku {
			c := *p
			return &c, nil
		}
	}
	return nil, nil
}

func (r *ProductRepo) Update(_ context.Context, p *entity.Product) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.products[p.ID]; !ok {
		return domain.ErrNotFound
	}
	c := *p
	r.db.products[p.ID] = &c
	return nil
}

// List ordena por SKU; limit <= 0 = todos.
func (r *ProductRepo) List(_ context.Context, limit, offset int) ([]*entity.Product, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	all := make([]*entity.Product, 0, len(r.db.products))
	for _, p := range r.db.products {
		c := *p
		all = append(all, &c)
	}
	sortBy(all, func(p *entity.Product) string { return p.SKU })
	from, to := page(len(all), limit, offset)
	return all[from:to], nil
}

func (r *ProductRepo) Delete(_ context.Context, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.products[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.db.products, id)
	return nil
}

func (r *ProductRepo) CountByCategory(_ context.Context) (map[string]int64, error) {
	return r.countBy(func(p *entity.Product) string { return p.Category }), nil
}

func (r *ProductRepo) CountByBrand(_ context.Context) (map[string]int64, error) {
	return r.countBy(func(p *entity.Product) string { return p.Brand }), nil
}

// countBy agrupa sin distinguir mayúsculas; la llave es el nombre en minúsculas.
func (r *ProductRepo) countBy(field func(*entity.Product) string) map[string]int64 {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	out := make(map[string]int64)
	for _, p := range r.db.products {
		name := strings.ToLower(strings.TrimSpace(field(p)))
		if name == "" {
			continue
		}
		out[name]++
	}
	return out
}

// WarehouseRepo bodegas en memoria. El nombre es único sin distinguir mayúsculas.
type WarehouseRepo struct {
	db *DB
}

// NewWarehouseRepository construye el repositorio sobre db.
func NewWarehouseRepository(db *DB) *WarehouseRepo {
	return &WarehouseRepo{db: db}
}

func (r *WarehouseRepo) Create(_ context.Context, w *entity.Warehouse) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, existing := range r.db.warehouses {
		if existing.ID == w.ID || strings.EqualFold(strings.TrimSpace(existing.Name), strings.TrimSpace(w.Name)) {
			return domain.ErrDuplicate
		}
	}
	c := *w
	r.db.warehouses[w.ID] = &c
	return nil
}

func (r *WarehouseRepo) GetByID(_ context.Context, id string) (*entity.Warehouse, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	w, ok := r.db.warehouses[id]
	if !ok {
		return nil, nil
	}
	c := *w
	return &c, nil
}

func (r *WarehouseRepo) GetByName(_ context.Context, name string) (*entity.Warehouse, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	for _, w := range r.db.warehouses {
		if strings.EqualFold(strings.TrimSpace(w.Name), strings.TrimSpace(name)) {
			c := *w
			return &c, nil
		}
	}
	return nil, nil
}

// List ordena por nombre; limit <= 0 = todas.
func (r *WarehouseRepo) List(_ context.Context, limit, offset int) ([]*entity.Warehouse, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	all := make([]*entity.Warehouse, 0, len(r.db.warehouses))
	for _, w := range r.db.warehouses {
		c := *w
		all = append(all, &c)
	}
	sortBy(all, func(w *entity.Warehouse) string { return strings.ToLower(w.Name) })
	from, to := page(len(all), limit, offset)
	return all[from:to], nil
}

// SupplierRepo proveedores en memoria.
type SupplierRepo struct {
	db *DB
}

// NewSupplierRepository construye el repositorio sobre db.
func NewSupplierRepository(db *DB) *SupplierRepo {
	return &SupplierRepo{db: db}
}

func (r *SupplierRepo) Create(_ context.Context, s *entity.Supplier) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.suppliers[s.ID]; ok {
		return domain.ErrDuplicate
	}
	c := *s
	r.db.suppliers[s.ID] = &c
	return nil
}

func (r *SupplierRepo) GetByID(_ context.Context, id string) (*entity.Supplier, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	s, ok := r.db.suppliers[id]
	if !ok {
		return nil, nil
	}
	c := *s
	return &c, nil
}

// List ordena por nombre.
func (r *SupplierRepo) List(_ context.Context, limit, offset int) ([]*entity.Supplier, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	all := make([]*entity.Supplier, 0, len(r.db.suppliers))
	for _, s := range r.db.suppliers {
		c := *s
		all = append(all, &c)
	}
	sortBy(all, func(s *entity.Supplier) string { return strings.ToLower(s.Name) })
	from, to := page(len(all), limit, offset)
	return all[from:to], nil
}
