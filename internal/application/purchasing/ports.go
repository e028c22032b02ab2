package purchasing

import (
	"context"

	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
)

// PurchaseOrderPDFGenerator genera el documento PDF de una orden de compra.
type PurchaseOrderPDFGenerator interface {
	GeneratePurchaseOrderPDF(ctx context.Context, po *entity.PurchaseOrder, supplier *entity.Supplier) ([]byte, error)
}
