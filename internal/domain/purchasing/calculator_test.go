package purchasing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/purchasing"
)

func item(name string, qty, price float64) entity.LineItem {
	return entity.LineItem{Name: name, Quantity: decimal.NewFromFloat(qty), UnitPrice: decimal.NewFromFloat(price)}
}

func TestComputeTotals_EjemploBasico(t *testing.T) {
	items := []entity.LineItem{item("Arroz", 2, 100), item("Sal", 1, 50)}

	got, err := purchasing.ComputeTotals(items, purchasing.DefaultTaxRate)
	require.NoError(t, err)

	assert.True(t, decimal.NewFromInt(250).Equal(got.Subtotal), "subtotal %s", got.Subtotal)
	assert.True(t, decimal.NewFromInt(45).Equal(got.Tax), "tax %s", got.Tax)
	assert.True(t, decimal.NewFromInt(295).Equal(got.Total), "total %s", got.Total)
}

func TestComputeTotals_LineasInvalidasSumanCero(t *testing.T) {
	items := []entity.LineItem{
		item("Arroz", 2, 100),
		item("Cantidad cero", 0, 80),
		item("Cantidad negativa", -3, 10),
		item("Precio negativo", 4, -1),
	}
	got, err := purchasing.ComputeTotals(items, decimal.Zero)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(200).Equal(got.Subtotal))
	assert.True(t, got.Tax.IsZero())
	assert.True(t, decimal.NewFromInt(200).Equal(got.Total))
}

func TestComputeTotals_SinLineas(t *testing.T) {
	got, err := purchasing.ComputeTotals(nil, purchasing.DefaultTaxRate)
	require.NoError(t, err)
	assert.True(t, got.Total.IsZero())
}

func TestComputeTotals_TasaNegativa(t *testing.T) {
	_, err := purchasing.ComputeTotals([]entity.LineItem{item("x", 1, 1)}, decimal.NewFromFloat(-0.1))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestBillableItems_FiltraComoAlGuardar(t *testing.T) {
	items := []entity.LineItem{
		item("Arroz", 2, 100),
		item("", 1, 10),
		item("Gratis", 1, 0),
		item("Cero", 0, 10),
	}
	got := purchasing.BillableItems(items)
	require.Len(t, got, 1)
	assert.Equal(t, "Arroz", got[0].Name)
}
