package repository

import (
	"context"

	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
)

// MovementLog define el puerto del libro de movimientos (solo inserción).
type MovementLog interface {
	Append(ctx context.Context, event *entity.MovementEvent) error
	// ListRecent devuelve los últimos movimientos ordenados por CreatedAt descendente.
	ListRecent(ctx context.Context, limit int) ([]*entity.MovementEvent, error)
	ListByType(ctx context.Context, movementType entity.MovementType, limit, offset int) ([]*entity.MovementEvent, error)
}
