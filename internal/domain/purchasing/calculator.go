// Package purchasing calcula los totales de órdenes de compra.
package purchasing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
)

// DefaultTaxRate impuesto aplicado a las órdenes de compra (18%).
var DefaultTaxRate = decimal.NewFromFloat(0.18)

// Totals resultado del cálculo de una orden.
type Totals struct {
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// LineAmount devuelve Quantity × UnitPrice, o cero si la línea es inválida
// (cantidad <= 0 o precio negativo). El formulario recalcula en cada tecla,
// así que las líneas incompletas no deben interrumpir el cálculo.
func LineAmount(item entity.LineItem) decimal.Decimal {
	if !item.Quantity.IsPositive() || item.UnitPrice.IsNegative() {
		return decimal.Zero
	}
	return item.Amount()
}

// ComputeTotals subtotal = Σ LineAmount; tax = subtotal × taxRate; total = subtotal + tax.
// Un taxRate negativo es entrada malformada.
func ComputeTotals(items []entity.LineItem, taxRate decimal.Decimal) (Totals, error) {
	if taxRate.IsNegative() {
		return Totals{}, fmt.Errorf("%w: tasa de impuesto negativa %s", domain.ErrInvalidInput, taxRate)
	}
	subtotal := decimal.Zero
	for _, it := range items {
		subtotal = subtotal.Add(LineAmount(it))
	}
	tax := subtotal.Mul(taxRate)
	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal.Add(tax),
	}, nil
}

// BillableItems filtra las líneas que se guardan en una orden: cantidad > 0 y precio > 0.
func BillableItems(items []entity.LineItem) []entity.LineItem {
	out := make([]entity.LineItem, 0, len(items))
	for _, it := range items {
		if it.Name == "" || !it.Quantity.IsPositive() || !it.UnitPrice.IsPositive() {
			continue
		}
		out = append(out, it)
	}
	return out
}
