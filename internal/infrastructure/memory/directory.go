package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

var (
	_ repository.CategoryRepository = (*CategoryRepo)(nil)
	_ repository.BrandRepository    = (*BrandRepo)(nil)
	_ repository.UserRepository     = (*UserRepo)(nil)
)

func sameName(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// CategoryRepo categorías en memoria. El nombre es único sin distinguir mayúsculas.
type CategoryRepo struct {
	db *DB
}

// NewCategoryRepository construye el repositorio sobre db.
func NewCategoryRepository(db *DB) *CategoryRepo {
	return &CategoryRepo{db: db}
}

func (r *CategoryRepo) Create(_ context.Context, cat *entity.Category) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, existing := range r.db.categories {
		if existing.ID == cat.ID || sameName(existing.Name, cat.Name) {
			return domain.ErrDuplicate
		}
	}
	c := *cat
	r.db.categories[cat.ID] = &c
	return nil
}

func (r *CategoryRepo) GetByID(_ context.Context, id string) (*entity.Category, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	cat, ok := r.db.categories[id]
	if !ok {
		return nil, nil
	}
	c := *cat
	return &c, nil
}

func (r *CategoryRepo) GetByName(_ context.Context, name string) (*entity.Category, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	for _, cat := range r.db.categories {
		if sameName(cat.Name, name) {
			c := *cat
			return &c, nil
		}
	}
	return nil, nil
}

func (r *CategoryRepo) Update(_ context.Context, cat *entity.Category) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.categories[cat.ID]; !ok {
		return domain.ErrNotFound
	}
	for _, existing := range r.db.categories {
		if existing.ID != cat.ID && sameName(existing.Name, cat.Name) {
			return domain.ErrDuplicate
		}
	}
	c := *cat
	r.db.categories[cat.ID] = &c
	return nil
}

func (r *CategoryRepo) List(_ context.Context) ([]*entity.Category, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	all := make([]*entity.Category, 0, len(r.db.categories))
	for _, cat := range r.db.categories {
		c := *cat
		all = append(all, &c)
	}
	sortBy(all, func(c *entity.Category) string { return strings.ToLower(c.Name) })
	return all, nil
}

func (r *CategoryRepo) Delete(_ context.Context, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.categories[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.db.categories, id)
	return nil
}

// BrandRepo marcas en memoria.
type BrandRepo struct {
	db *DB
}

// NewBrandRepository construye el repositorio sobre db.
func NewBrandRepository(db *DB) *BrandRepo {
	return &BrandRepo{db: db}
}

func (r *BrandRepo) Create(_ context.Context, b *entity.Brand) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, existing := range r.db.brands {
		if existing.ID == b.ID || sameName(existing.Name, b.Name) {
			return domain.ErrDuplicate
		}
	}
	c := *b
	r.db.brands[b.ID] = &c
	return nil
}

func (r *BrandRepo) GetByName(_ context.Context, name string) (*entity.Brand, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	for _, b := range r.db.brands {
		if sameName(b.Name, name) {
			c := *b
			return &c, nil
		}
	}
	return nil, nil
}

// List ordena por fecha de creación descendente; a igual fecha, por nombre.
func (r *BrandRepo) List(_ context.Context) ([]*entity.Brand, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	all := make([]*entity.Brand, 0, len(r.db.brands))
	for _, b := range r.db.brands {
		c := *b
		all = append(all, &c)
	}
	sort.SliceStable(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		return strings.ToLower(all[i].Name) < strings.ToLower(all[j].Name)
	})
	return all, nil
}

func (r *BrandRepo) Delete(_ context.Context, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.brands[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.db.brands, id)
	return nil
}

// UserRepo directorio de usuarios en memoria. El email es único.
type UserRepo struct {
	db *DB
}

// NewUserRepository construye el repositorio sobre db.
func NewUserRepository(db *DB) *UserRepo {
	return &UserRepo{db: db}
}

func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, existing := range r.db.users {
		if existing.ID == u.ID || sameName(existing.Email, u.Email) {
			return domain.ErrDuplicate
		}
	}
	c := *u
	r.db.users[u.ID] = &c
	return nil
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	u, ok := r.db.users[id]
	if !ok {
		return nil, nil
	}
	c := *u
	return &c, nil
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	for _, u := range r.db.users {
		if sameName(u.Email, email) {
			c := *u
			return &c, nil
		}
	}
	return nil, nil
}

func (r *UserRepo) Update(_ context.Context, u *entity.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.users[u.ID]; !ok {
		return domain.ErrNotFound
	}
	for _, existing := range r.db.users {
		if existing.ID != u.ID && sameName(existing.Email, u.Email) {
			return domain.ErrDuplicate
		}
	}
	c := *u
	r.db.users[u.ID] = &c
	return nil
}

func (r *UserRepo) List(_ context.Context, f repository.UserFilter) ([]*entity.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	out := make([]*entity.User, 0, len(r.db.users))
	for _, u := range r.db.users {
		if f.Role != "" && u.Role != f.Role {
			continue
		}
		if f.Status != "" && u.Status != f.Status {
			continue
		}
		if f.Search != "" && !containsFold(u.FullName, f.Search) &&
			!containsFold(u.Email, f.Search) && !containsFold(u.Role, f.Search) {
			continue
		}
		c := *u
		out = append(out, &c)
	}
	sortBy(out, func(u *entity.User) string { return strings.ToLower(u.FullName) })
	return out, nil
}

func (r *UserRepo) Delete(_ context.Context, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.users[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.db.users, id)
	return nil
}
