package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

const purchaseOrderColumns = `id, supplier_id, supplier_name, items, subtotal, tax, tax_rate, total, status, created_by, created_at, updated_at`

// PurchaseOrderRepo órdenes de compra sobre PostgreSQL; las líneas se guardan en una columna JSONB.
type PurchaseOrderRepo struct {
	q Querier
}

// NewPurchaseOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

// lineItemRow forma JSON de una línea (decimales como texto para no perder precisión).
type lineItemRow struct {
	Name      string          `json:"name"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

func (r *PurchaseOrderRepo) Create(ctx context.Context, po *entity.PurchaseOrder) error {
	rows := make([]lineItemRow, 0, len(po.Items))
	for _, it := range po.Items {
		rows = append(rows, lineItemRow{Name: it.Name, Quantity: it.Quantity, UnitPrice: it.UnitPrice})
	}
	items, err := json.Marshal(rows)
	if err != nil {
		return fmt.Errorf("marshal purchase order items: %w", err)
	}
	query := `INSERT INTO purchase_orders (` + purchaseOrderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err = r.q.Exec(ctx, query,
		po.ID, po.SupplierID, po.SupplierName, items, po.Subtotal, po.Tax, po.TaxRate, po.Total,
		po.Status, po.CreatedBy, po.CreatedAt, po.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return storeError("insert purchase order", err)
	}
	return nil
}

func (r *PurchaseOrderRepo) GetByID(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	po, err := scanPurchaseOrder(r.q.QueryRow(ctx, `SELECT `+purchaseOrderColumns+` FROM purchase_orders WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storeError("get purchase order", err)
	}
	return po, nil
}

// List más recientes primero; status vacío = todas.
func (r *PurchaseOrderRepo) List(ctx context.Context, status string, limit, offset int) ([]*entity.PurchaseOrder, error) {
	query := `SELECT ` + purchaseOrderColumns + ` FROM purchase_orders
		WHERE ($1 = '' OR status = $1)
		ORDER BY created_at DESC, id LIMIT NULLIF($2::bigint, 0) OFFSET $3`
	rows, err := r.q.Query(ctx, query, status, limitArg(limit), offsetArg(offset))
	if err != nil {
		return nil, storeError("list purchase orders", err)
	}
	defer rows.Close()
	var list []*entity.PurchaseOrder
	for rows.Next() {
		po, err := scanPurchaseOrder(rows)
		if err != nil {
			return nil, storeError("scan purchase order", err)
		}
		list = append(list, po)
	}
	return list, rows.Err()
}

func (r *PurchaseOrderRepo) UpdateStatus(ctx context.Context, id, status string) error {
	cmd, err := r.q.Exec(ctx, `UPDATE purchase_orders SET status = $2, updated_at = now() WHERE id = $1`, id, status)
	if err != nil {
		return storeError("update purchase order status", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanPurchaseOrder(row pgx.Row) (*entity.PurchaseOrder, error) {
	var po entity.PurchaseOrder
	var items []byte
	if err := row.Scan(&po.ID, &po.SupplierID, &po.SupplierName, &items, &po.Subtotal, &po.Tax,
		&po.TaxRate, &po.Total, &po.Status, &po.CreatedBy, &po.CreatedAt, &po.UpdatedAt); err != nil {
		return nil, err
	}
	var lines []lineItemRow
	if len(items) > 0 {
		if err := json.Unmarshal(items, &lines); err != nil {
			return nil, fmt.Errorf("unmarshal items: %w", err)
		}
	}
	po.Items = make([]entity.LineItem, 0, len(lines))
	for _, l := range lines {
		po.Items = append(po.Items, entity.LineItem{Name: l.Name, Quantity: l.Quantity, UnitPrice: l.UnitPrice})
	}
	return &po, nil
}
