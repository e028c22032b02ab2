package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

var _ repository.QuantityStore = (*QuantityStore)(nil)

const quantityColumns = `sku, warehouse, product_id, product_name, category, quantity, unit, expiry, created_at, updated_at`

// QuantityStore implementación de QuantityStore sobre PostgreSQL (usable con pool o tx).
type QuantityStore struct {
	q Querier
}

// NewQuantityStore construye el adaptador. Pasar pool o tx (Querier).
func NewQuantityStore(q Querier) *QuantityStore {
	return &QuantityStore{q: q}
}

// Get obtiene el registro de (sku, bodega); (nil, nil) si no existe.
func (s *QuantityStore) Get(ctx context.Context, sku, warehouse string) (*entity.QuantityRecord, error) {
	query := `SELECT ` + quantityColumns + ` FROM inventory_records WHERE sku = $1 AND warehouse = $2`
	rec, err := scanQuantity(s.q.QueryRow(ctx, query, sku, warehouse))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storeError("get inventory record", err)
	}
	return rec, nil
}

// GetForUpdate toma un advisory lock de transacción sobre la llave y luego lee la fila con FOR UPDATE.
// El advisory lock cubre también la primera entrada, cuando todavía no hay fila que bloquear.
func (s *QuantityStore) GetForUpdate(ctx context.Context, sku, warehouse string) (*entity.QuantityRecord, error) {
	if _, err := s.q.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`,
		entity.NewRecordKey(sku, warehouse).String()); err != nil {
		return nil, storeError("lock inventory key", err)
	}
	query := `SELECT ` + quantityColumns + ` FROM inventory_records WHERE sku = $1 AND warehouse = $2 FOR UPDATE`
	rec, err := scanQuantity(s.q.QueryRow(ctx, query, sku, warehouse))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storeError("get inventory record for update", err)
	}
	return rec, nil
}

// Upsert inserta o reemplaza el registro de (sku, bodega).
func (s *QuantityStore) Upsert(ctx context.Context, rec *entity.QuantityRecord) error {
	query := `
		INSERT INTO inventory_records (` + quantityColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (sku, warehouse)
		DO UPDATE SET product_id = EXCLUDED.product_id, product_name = EXCLUDED.product_name,
			category = EXCLUDED.category, quantity = EXCLUDED.quantity, unit = EXCLUDED.unit,
			expiry = EXCLUDED.expiry, updated_at = EXCLUDED.updated_at`
	_, err := s.q.Exec(ctx, query,
		rec.SKU, rec.Warehouse, rec.ProductID, rec.ProductName, rec.Category,
		rec.Quantity, rec.Unit, rec.Expiry, rec.CreatedAt, rec.UpdatedAt,
	)
	if err != nil {
		return storeError("upsert inventory record", err)
	}
	return nil
}

// List filtra por bodega y búsqueda (SKU o nombre, sin distinguir mayúsculas); orden por SKU y bodega.
func (s *QuantityStore) List(ctx context.Context, f repository.QuantityFilter) ([]*entity.QuantityRecord, error) {
	query := `SELECT ` + quantityColumns + ` FROM inventory_records
		WHERE ($1 = '' OR warehouse = $1)
		  AND ($2 = '' OR sku ILIKE $3 OR product_name ILIKE $3)
		ORDER BY sku, warehouse
		LIMIT NULLIF($4::bigint, 0) OFFSET $5`
	rows, err := s.q.Query(ctx, query, f.Warehouse, f.Search, likePattern(f.Search), limitArg(f.Limit), offsetArg(f.Offset))
	if err != nil {
		return nil, storeError("list inventory records", err)
	}
	defer rows.Close()
	var list []*entity.QuantityRecord
	for rows.Next() {
		rec, err := scanQuantity(rows)
		if err != nil {
			return nil, storeError("scan inventory record", err)
		}
		list = append(list, rec)
	}
	return list, rows.Err()
}

func scanQuantity(row pgx.Row) (*entity.QuantityRecord, error) {
	var r entity.QuantityRecord
	if err := row.Scan(&r.SKU, &r.Warehouse, &r.ProductID, &r.ProductName, &r.Category,
		&r.Quantity, &r.Unit, &r.Expiry, &r.CreatedAt, &r.UpdatedAt); err != nil {
		return nil, err
	}
	if r.Expiry != nil {
		exp := r.Expiry.UTC()
		r.Expiry = &exp
	}
	return &r, nil
}
