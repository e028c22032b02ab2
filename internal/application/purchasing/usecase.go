// Package purchasing casos de uso de órdenes de compra: cálculo del formulario, alta,
// consulta, cierre y documento PDF.
package purchasing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	calc "github.com/jhoicas/stock-ledger-api/internal/domain/purchasing"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

// UseCase órdenes de compra.
type UseCase struct {
	poRepo       repository.PurchaseOrderRepository
	supplierRepo repository.SupplierRepository
	generator    PurchaseOrderPDFGenerator
	taxRate      decimal.Decimal
	now          func() time.Time
}

// NewUseCase construye el caso de uso. generator puede ser nil (sin PDF).
func NewUseCase(
	poRepo repository.PurchaseOrderRepository,
	supplierRepo repository.SupplierRepository,
	generator PurchaseOrderPDFGenerator,
	taxRate decimal.Decimal,
) *UseCase {
	return &UseCase{
		poRepo:       poRepo,
		supplierRepo: supplierRepo,
		generator:    generator,
		taxRate:      taxRate,
		now:          time.Now,
	}
}

// Calculate totales de un formulario sin guardar. Las líneas incompletas suman cero.
func (uc *UseCase) Calculate(_ context.Context, in dto.CalculatePORequest) (*dto.TotalsResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	totals, err := calc.ComputeTotals(toLineItems(in.Items), uc.taxRate)
	if err != nil {
		return nil, err
	}
	return &dto.TotalsResponse{
		Subtotal: totals.Subtotal.Round(2),
		Tax:      totals.Tax.Round(2),
		TaxRate:  uc.taxRate,
		Total:    totals.Total.Round(2),
	}, nil
}

// Create guarda una orden en estado "sent". Solo se guardan las líneas con cantidad y precio
// positivos; los totales se calculan en el servidor.
func (uc *UseCase) Create(ctx context.Context, actorID string, in dto.CreatePORequest) (*dto.PurchaseOrderResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	supplier, err := uc.supplierRepo.GetByID(ctx, in.SupplierID)
	if err != nil {
		return nil, domain.StoreError("get supplier", err)
	}
	if supplier == nil {
		return nil, fmt.Errorf("%w: proveedor %s", domain.ErrNotFound, in.SupplierID)
	}

	items := calc.BillableItems(toLineItems(in.Items))
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: la orden no tiene líneas con cantidad y precio", domain.ErrInvalidInput)
	}
	totals, err := calc.ComputeTotals(items, uc.taxRate)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	po := &entity.PurchaseOrder{
		ID:           uuid.New().String(),
		SupplierID:   supplier.ID,
		SupplierName: supplier.Name,
		Items:        items,
		Subtotal:     totals.Subtotal.Round(2),
		Tax:          totals.Tax.Round(2),
		TaxRate:      uc.taxRate,
		Total:        totals.Total.Round(2),
		Status:       entity.PurchaseOrderSent,
		CreatedBy:    actorID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.poRepo.Create(ctx, po); err != nil {
		return nil, domain.StoreError("create purchase order", err)
	}
	return toPOResponse(po), nil
}

// Get obtiene una orden por ID.
func (uc *UseCase) Get(ctx context.Context, id string) (*dto.PurchaseOrderResponse, error) {
	po, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return toPOResponse(po), nil
}

// List historial de órdenes, más recientes primero.
func (uc *UseCase) List(ctx context.Context, q dto.PurchaseOrderQuery) (*dto.PurchaseOrderListResponse, error) {
	q.DefaultPage()
	if err := dto.Validate(q); err != nil {
		return nil, err
	}
	list, err := uc.poRepo.List(ctx, q.Status, q.Limit, q.Offset)
	if err != nil {
		return nil, domain.StoreError("list purchase orders", err)
	}
	items := make([]dto.PurchaseOrderResponse, 0, len(list))
	for _, po := range list {
		items = append(items, *toPOResponse(po))
	}
	return &dto.PurchaseOrderListResponse{
		Items: items,
		Page:  q.Response(len(items)),
	}, nil
}

// Complete pasa una orden de "sent" a "completed". Una orden ya completada es conflicto.
func (uc *UseCase) Complete(ctx context.Context, id string) (*dto.PurchaseOrderResponse, error) {
	po, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if po.Status != entity.PurchaseOrderSent {
		return nil, fmt.Errorf("%w: la orden está en estado %s", domain.ErrConflict, po.Status)
	}
	if err := uc.poRepo.UpdateStatus(ctx, id, entity.PurchaseOrderCompleted); err != nil {
		return nil, domain.StoreError("update purchase order", err)
	}
	po.Status = entity.PurchaseOrderCompleted
	po.UpdatedAt = uc.now()
	return toPOResponse(po), nil
}

// DownloadPDF genera el PDF de la orden.
func (uc *UseCase) DownloadPDF(ctx context.Context, id string) (pdfBytes []byte, filename string, err error) {
	if uc.generator == nil {
		return nil, "", fmt.Errorf("%w: generador de PDF no configurado", domain.ErrInvalidInput)
	}
	po, err := uc.load(ctx, id)
	if err != nil {
		return nil, "", err
	}
	supplier, err := uc.supplierRepo.GetByID(ctx, po.SupplierID)
	if err != nil {
		return nil, "", domain.StoreError("get supplier", err)
	}
	if supplier == nil {
		supplier = &entity.Supplier{ID: po.SupplierID, Name: po.SupplierName}
	}
	pdfBytes, err = uc.generator.GeneratePurchaseOrderPDF(ctx, po, supplier)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generar orden: %w", err)
	}
	return pdfBytes, fmt.Sprintf("PO-%s.pdf", shortID(po.ID)), nil
}

func (uc *UseCase) load(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	po, err := uc.poRepo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.StoreError("get purchase order", err)
	}
	if po == nil {
		return nil, domain.ErrNotFound
	}
	return po, nil
}

func toLineItems(in []dto.LineItemDTO) []entity.LineItem {
	out := make([]entity.LineItem, 0, len(in))
	for _, it := range in {
		out = append(out, entity.LineItem{
			Name:      strings.TrimSpace(it.Name),
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		})
	}
	return out
}

func toPOResponse(po *entity.PurchaseOrder) *dto.PurchaseOrderResponse {
	items := make([]dto.LineItemResponse, 0, len(po.Items))
	for _, it := range po.Items {
		items = append(items, dto.LineItemResponse{
			Name:      it.Name,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Amount:    calc.LineAmount(it).Round(2),
		})
	}
	return &dto.PurchaseOrderResponse{
		ID:           po.ID,
		SupplierID:   po.SupplierID,
		SupplierName: po.SupplierName,
		Items:        items,
		Subtotal:     po.Subtotal,
		Tax:          po.Tax,
		TaxRate:      po.TaxRate,
		Total:        po.Total,
		Status:       po.Status,
		CreatedBy:    po.CreatedBy,
		CreatedAt:    po.CreatedAt,
		UpdatedAt:    po.UpdatedAt,
	}
}

// shortID primeros 8 caracteres del UUID, usado como número visible de la orden.
func shortID(id string) string {
	if len(id) > 8 {
		return strings.ToUpper(id[:8])
	}
	return strings.ToUpper(id)
}
