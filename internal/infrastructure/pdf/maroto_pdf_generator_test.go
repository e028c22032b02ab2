package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
)

func TestGeneratePurchaseOrderPDF(t *testing.T) {
	g := NewMarotoPDFGenerator("Bodegas Centrales", "inr")
	po := &entity.PurchaseOrder{
		ID:           "3f2a9c1e-0000-4000-8000-000000000000",
		SupplierName: "ACME",
		Items: []entity.LineItem{
			{Name: "Arroz", Quantity: decimal.NewFromInt(2), UnitPrice: decimal.NewFromInt(100)},
			{Name: "Sal", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(50)},
		},
		Subtotal:  decimal.NewFromInt(250),
		Tax:       decimal.NewFromInt(45),
		TaxRate:   decimal.NewFromFloat(0.18),
		Total:     decimal.NewFromInt(295),
		Status:    entity.PurchaseOrderSent,
		CreatedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	b, err := g.GeneratePurchaseOrderPDF(context.Background(), po, &entity.Supplier{Name: "ACME", GST: "29ABCDE1234F1Z5"})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(b, []byte("%PDF")), "el documento debe ser un PDF")
}

func TestMoney_SeparadorDeMiles(t *testing.T) {
	g := NewMarotoPDFGenerator("", "INR")
	assert.Equal(t, "INR 1,234,567.50", g.money(decimal.RequireFromString("1234567.5")))
	assert.Equal(t, "INR 0.00", g.money(decimal.Zero))

	plain := NewMarotoPDFGenerator("", "")
	assert.Equal(t, "295.00", plain.money(decimal.NewFromInt(295)))
}
