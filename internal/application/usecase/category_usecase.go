package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

// CategoryUseCase casos de uso para categorías. El conteo de productos sale del catálogo.
type CategoryUseCase struct {
	repo     repository.CategoryRepository
	products repository.ProductRepository
	now      func() time.Time
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(repo repository.CategoryRepository, products repository.ProductRepository) *CategoryUseCase {
	return &CategoryUseCase{repo: repo, products: products, now: time.Now}
}

// Create crea una categoría. Nombre repetido (sin distinguir mayúsculas) = ErrDuplicate.
func (uc *CategoryUseCase) Create(ctx context.Context, in dto.CategoryRequest) (*dto.CategoryResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	existing, err := uc.repo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	status := in.Status
	if status == "" {
		status = StatusActive
	}
	now := uc.now()
	category := &entity.Category{
		ID:          uuid.New().String(),
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, category); err != nil {
		return nil, err
	}
	return uc.withCount(ctx, category)
}

// Update reemplaza nombre, descripción y estado. Status vacío conserva el actual.
func (uc *CategoryUseCase) Update(ctx context.Context, id string, in dto.CategoryRequest) (*dto.CategoryResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	category, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}
	name := strings.TrimSpace(in.Name)
	other, err := uc.repo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if other != nil && other.ID != category.ID {
		return nil, domain.ErrDuplicate
	}
	category.Name = name
	category.Description = strings.TrimSpace(in.Description)
	if in.Status != "" {
		category.Status = in.Status
	}
	category.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, category); err != nil {
		return nil, err
	}
	return uc.withCount(ctx, category)
}

// List devuelve todas las categorías por nombre con el número de productos de cada una.
func (uc *CategoryUseCase) List(ctx context.Context) (*dto.CategoryListResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	counts, err := uc.products.CountByCategory(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		items = append(items, toCategoryResponse(c, counts))
	}
	return &dto.CategoryListResponse{Items: items}, nil
}

// Delete elimina la categoría. Los productos que la nombran no cambian.
func (uc *CategoryUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

func (uc *CategoryUseCase) withCount(ctx context.Context, c *entity.Category) (*dto.CategoryResponse, error) {
	counts, err := uc.products.CountByCategory(ctx)
	if err != nil {
		return nil, err
	}
	out := toCategoryResponse(c, counts)
	return &out, nil
}

func toCategoryResponse(c *entity.Category, counts map[string]int64) dto.CategoryResponse {
	return dto.CategoryResponse{
		ID:           c.ID,
		Name:         c.Name,
		Description:  c.Description,
		Status:       c.Status,
		ProductCount: counts[countKey(c.Name)],
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

// countKey normaliza un nombre a la llave de CountByCategory / CountByBrand.
func countKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
