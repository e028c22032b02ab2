package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

var _ repository.MovementLog = (*MovementLog)(nil)

const movementColumns = `id, type, product_id, product_name, sku, category, warehouse, quantity, unit,
	supplier, reason, invoice, batch, expiry, location, remarks, created_by, created_at`

// MovementLog libro de movimientos sobre PostgreSQL (solo INSERT; usable con pool o tx).
type MovementLog struct {
	q Querier
}

// NewMovementLog construye el adaptador. Pasar pool o tx (Querier).
func NewMovementLog(q Querier) *MovementLog {
	return &MovementLog{q: q}
}

// Append persiste el evento.
func (l *MovementLog) Append(ctx context.Context, ev *entity.MovementEvent) error {
	query := `
		INSERT INTO stock_movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`
	_, err := l.q.Exec(ctx, query,
		ev.ID, string(ev.Type), ev.ProductID, ev.ProductName, ev.SKU, ev.Category, ev.Warehouse,
		ev.Quantity, ev.Unit, ev.Supplier, ev.Reason, ev.Invoice, ev.Batch, ev.Expiry,
		ev.Location, ev.Remarks, ev.CreatedBy, ev.CreatedAt,
	)
	if err != nil {
		return storeError("append stock movement", err)
	}
	return nil
}

// ListRecent últimos limit movimientos, más recientes primero.
func (l *MovementLog) ListRecent(ctx context.Context, limit int) ([]*entity.MovementEvent, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements
		ORDER BY created_at DESC, seq DESC LIMIT NULLIF($1::bigint, 0)`
	return l.list(ctx, query, limitArg(limit))
}

// ListByType movimientos de un tipo, más recientes primero.
func (l *MovementLog) ListByType(ctx context.Context, t entity.MovementType, limit, offset int) ([]*entity.MovementEvent, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements WHERE type = $1
		ORDER BY created_at DESC, seq DESC LIMIT NULLIF($2::bigint, 0) OFFSET $3`
	return l.list(ctx, query, string(t), limitArg(limit), offsetArg(offset))
}

func (l *MovementLog) list(ctx context.Context, query string, args ...any) ([]*entity.MovementEvent, error) {
	rows, err := l.q.Query(ctx, query, args...)
	if err != nil {
		return nil, storeError("list stock movements", err)
	}
	defer rows.Close()
	var list []*entity.MovementEvent
	for rows.Next() {
		ev, err := scanMovement(rows)
		if err != nil {
			return nil, storeError("scan stock movement", err)
		}
		list = append(list, ev)
	}
	return list, rows.Err()
}

func scanMovement(row pgx.Row) (*entity.MovementEvent, error) {
	var ev entity.MovementEvent
	var typ string
	if err := row.Scan(&ev.ID, &typ, &ev.ProductID, &ev.ProductName, &ev.SKU, &ev.Category,
		&ev.Warehouse, &ev.Quantity, &ev.Unit, &ev.Supplier, &ev.Reason, &ev.Invoice, &ev.Batch,
		&ev.Expiry, &ev.Location, &ev.Remarks, &ev.CreatedBy, &ev.CreatedAt); err != nil {
		return nil, err
	}
	ev.Type = entity.MovementType(typ)
	if ev.Expiry != nil {
		exp := ev.Expiry.UTC()
		ev.Expiry = &exp
	}
	return &ev, nil
}
