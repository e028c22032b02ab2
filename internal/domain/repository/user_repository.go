package repository

import (
	"context"

	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
)

// UserFilter filtros del directorio. Vacío = sin filtro.
type UserFilter struct {
	Search string // nombre, email o rol (contiene, sin distinguir mayúsculas)
	Role   string
	Status string
}

// UserRepository define el puerto de persistencia para el directorio de usuarios (DIP).
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	// List ordena por nombre completo.
	List(ctx context.Context, f UserFilter) ([]*entity.User, error)
	Delete(ctx context.Context, id string) error
}
