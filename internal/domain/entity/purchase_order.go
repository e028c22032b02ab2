package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden de compra.
const (
	PurchaseOrderSent      = "sent"
	PurchaseOrderCompleted = "completed"
)

// LineItem línea de una orden de compra.
type LineItem struct {
	Name      string
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
}

// Amount devuelve Quantity × UnitPrice.
func (l LineItem) Amount() decimal.Decimal {
	return l.Quantity.Mul(l.UnitPrice)
}

// PurchaseOrder orden de compra enviada a un proveedor.
type PurchaseOrder struct {
	ID           string
	SupplierID   string
	SupplierName string
	Items        []LineItem
	Subtotal     decimal.Decimal
	Tax          decimal.Decimal
	TaxRate      decimal.Decimal
	Total        decimal.Decimal
	Status       string // sent, completed
	CreatedBy    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
