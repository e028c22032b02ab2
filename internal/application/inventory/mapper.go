package inventory

import (
	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	invdomain "github.com/jhoicas/stock-ledger-api/internal/domain/inventory"
)

func toMovementResponse(ev *entity.MovementEvent) dto.MovementResponse {
	return dto.MovementResponse{
		ID:          ev.ID,
		Type:        string(ev.Type),
		ProductID:   ev.ProductID,
		ProductName: ev.ProductName,
		SKU:         ev.SKU,
		Category:    ev.Category,
		Warehouse:   ev.Warehouse,
		Quantity:    ev.Quantity,
		Unit:        ev.Unit,
		Supplier:    ev.Supplier,
		Reason:      ev.Reason,
		Invoice:     ev.Invoice,
		Batch:       ev.Batch,
		Expiry:      ev.Expiry,
		Location:    ev.Location,
		Remarks:     ev.Remarks,
		CreatedBy:   ev.CreatedBy,
		CreatedAt:   ev.CreatedAt,
	}
}

// toRecordResponse incluye el estado de stock calculado con los umbrales configurados.
func toRecordResponse(rec *entity.QuantityRecord, minStock int64, th invdomain.Thresholds) dto.QuantityRecordResponse {
	status, err := th.ClassifyStock(float64(rec.Quantity), float64(minStock))
	if err != nil {
		status = invdomain.StockOK
	}
	return dto.QuantityRecordResponse{
		ProductID:   rec.ProductID,
		ProductName: rec.ProductName,
		SKU:         rec.SKU,
		Category:    rec.Category,
		Warehouse:   rec.Warehouse,
		Quantity:    rec.Quantity,
		MinStock:    minStock,
		Unit:        rec.Unit,
		Expiry:      rec.Expiry,
		Status:      string(status),
		CreatedAt:   rec.CreatedAt,
		UpdatedAt:   rec.UpdatedAt,
	}
}
