package repository

import (
	"context"

	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
)

// QuantityFilter filtros para listar registros de cantidad.
type QuantityFilter struct {
	Warehouse string // vacío = todas las bodegas
	Search    string // coincide con SKU o nombre de producto (sin distinguir mayúsculas)
	Limit     int    // 0 = sin límite
	Offset    int
}

// QuantityStore define el puerto para consultar/actualizar la cantidad por (sku, bodega).
// Usado dentro de transacciones para garantizar consistencia.
type QuantityStore interface {
	// Get devuelve (nil, nil) si no existe registro para la llave.
	Get(ctx context.Context, sku, warehouse string) (*entity.QuantityRecord, error)
	// GetForUpdate igual que Get pero bloquea la llave hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, sku, warehouse string) (*entity.QuantityRecord, error)
	Upsert(ctx context.Context, record *entity.QuantityRecord) error
	List(ctx context.Context, filter QuantityFilter) ([]*entity.QuantityRecord, error)
}
