package repository

import (
	"context"

	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
)

// BrandRepository define el puerto de persistencia para Brand.
type BrandRepository interface {
	Create(ctx context.Context, brand *entity.Brand) error
	GetByName(ctx context.Context, name string) (*entity.Brand, error)
	// List devuelve todas las marcas, las más recientes primero.
	List(ctx context.Context) ([]*entity.Brand, error)
	Delete(ctx context.Context, id string) error
}
