package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// LineItemDTO línea de una orden de compra.
type LineItemDTO struct {
	Name      string          `json:"name" validate:"max=200"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// LineItemResponse línea con su importe calculado.
type LineItemResponse struct {
	Name      string          `json:"name"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Amount    decimal.Decimal `json:"amount"`
}

// CalculatePORequest formulario sin guardar; las líneas inválidas suman cero.
type CalculatePORequest struct {
	Items []LineItemDTO `json:"items" validate:"dive"`
}

// TotalsResponse totales redondeados a 2 decimales para presentación.
type TotalsResponse struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"tax"`
	TaxRate  decimal.Decimal `json:"tax_rate"`
	Total    decimal.Decimal `json:"total"`
}

// CreatePORequest body para POST /api/purchase-orders.
type CreatePORequest struct {
	SupplierID string        `json:"supplier_id" validate:"required"`
	Items      []LineItemDTO `json:"items" validate:"required,min=1,dive"`
}

// PurchaseOrderResponse salida de una orden de compra.
type PurchaseOrderResponse struct {
	ID           string             `json:"id"`
	SupplierID   string             `json:"supplier_id"`
	SupplierName string             `json:"supplier_name"`
	Items        []LineItemResponse `json:"items"`
	Subtotal     decimal.Decimal    `json:"subtotal"`
	Tax          decimal.Decimal    `json:"tax"`
	TaxRate      decimal.Decimal    `json:"tax_rate"`
	Total        decimal.Decimal    `json:"total"`
	Status       string             `json:"status"`
	CreatedBy    string             `json:"created_by"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

// PurchaseOrderQuery filtros de GET /api/purchase-orders.
type PurchaseOrderQuery struct {
	Status string `query:"status" validate:"omitempty,oneof=sent completed"`
	PageRequest
}

// PurchaseOrderListResponse lista paginada de órdenes.
type PurchaseOrderListResponse struct {
	Items []PurchaseOrderResponse `json:"items"`
	Page  PageResponse            `json:"page"`
}
