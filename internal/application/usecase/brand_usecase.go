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

// BrandUseCase casos de uso para marcas.
type BrandUseCase struct {
	repo     repository.BrandRepository
	products repository.ProductRepository
	now      func() time.Time
}

// NewBrandUseCase construye el caso de uso.
func NewBrandUseCase(repo repository.BrandRepository, products repository.ProductRepository) *BrandUseCase {
	return &BrandUseCase{repo: repo, products: products, now: time.Now}
}

// Create registra una marca. Nombre repetido = ErrDuplicate.
func (uc *BrandUseCase) Create(ctx context.Context, in dto.CreateBrandRequest) (*dto.BrandResponse, error) {
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
	brand := &entity.Brand{ID: uuid.New().String(), Name: name, CreatedAt: uc.now()}
	if err := uc.repo.Create(ctx, brand); err != nil {
		return nil, err
	}
	counts, err := uc.products.CountByBrand(ctx)
	if err != nil {
		return nil, err
	}
	out := toBrandResponse(brand, counts)
	return &out, nil
}

// List devuelve las marcas, las más recientes primero, con su número de productos.
func (uc *BrandUseCase) List(ctx context.Context) (*dto.BrandListResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	counts, err := uc.products.CountByBrand(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.BrandResponse, 0, len(list))
	for _, b := range list {
		items = append(items, toBrandResponse(b, counts))
	}
	return &dto.BrandListResponse{Items: items}, nil
}

func (uc *BrandUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

func toBrandResponse(b *entity.Brand, counts map[string]int64) dto.BrandResponse {
	return dto.BrandResponse{
		ID:           b.ID,
		Name:         b.Name,
		ProductCount: counts[countKey(b.Name)],
		CreatedAt:    b.CreatedAt,
	}
}
