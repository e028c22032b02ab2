package purchasing_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/application/purchasing"
	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	calc "github.com/jhoicas/stock-ledger-api/internal/domain/purchasing"
	"github.com/jhoicas/stock-ledger-api/internal/infrastructure/memory"
)

type fakePDF struct {
	called bool
}

func (f *fakePDF) GeneratePurchaseOrderPDF(_ context.Context, po *entity.PurchaseOrder, s *entity.Supplier) ([]byte, error) {
	f.called = true
	return []byte("%PDF-" + s.Name), nil
}

func newUseCase(t *testing.T) (*purchasing.UseCase, *fakePDF) {
	t.Helper()
	db := memory.NewDB()
	suppliers := memory.NewSupplierRepository(db)
	require.NoError(t, suppliers.Create(context.Background(), &entity.Supplier{ID: "s1", Name: "ACME"}))
	gen := &fakePDF{}
	return purchasing.NewUseCase(memory.NewPurchaseOrderRepository(db), suppliers, gen, calc.DefaultTaxRate), gen
}

func line(name string, qty, price int64) dto.LineItemDTO {
	return dto.LineItemDTO{Name: name, Quantity: decimal.NewFromInt(qty), UnitPrice: decimal.NewFromInt(price)}
}

func TestCalculate_EjemploBasico(t *testing.T) {
	uc, _ := newUseCase(t)
	got, err := uc.Calculate(context.Background(), dto.CalculatePORequest{Items: []dto.LineItemDTO{line("A", 2, 100), line("B", 1, 50)}})
	require.NoError(t, err)
	assert.Equal(t, "250", got.Subtotal.String())
	assert.Equal(t, "45", got.Tax.String())
	assert.Equal(t, "295", got.Total.String())
}

func TestCreate_FiltraLineasYCalculaTotales(t *testing.T) {
	uc, _ := newUseCase(t)
	ctx := context.Background()

	po, err := uc.Create(ctx, "u1", dto.CreatePORequest{
		SupplierID: "s1",
		Items:      []dto.LineItemDTO{line("A", 2, 100), line("Gratis", 3, 0), line("B", 1, 50)},
	})
	require.NoError(t, err)
	assert.Len(t, po.Items, 2)
	assert.Equal(t, "ACME", po.SupplierName)
	assert.Equal(t, entity.PurchaseOrderSent, po.Status)
	assert.True(t, decimal.NewFromInt(295).Equal(po.Total))
	assert.Equal(t, "u1", po.CreatedBy)

	got, err := uc.Get(ctx, po.ID)
	require.NoError(t, err)
	assert.Equal(t, po.ID, got.ID)
}

func TestCreate_Errores(t *testing.T) {
	uc, _ := newUseCase(t)
	ctx := context.Background()

	_, err := uc.Create(ctx, "u1", dto.CreatePORequest{SupplierID: "nope", Items: []dto.LineItemDTO{line("A", 1, 1)}})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.Create(ctx, "u1", dto.CreatePORequest{SupplierID: "s1", Items: []dto.LineItemDTO{line("A", 0, 1)}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, "u1", dto.CreatePORequest{SupplierID: "s1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestComplete_SoloDesdeEnviada(t *testing.T) {
	uc, _ := newUseCase(t)
	ctx := context.Background()
	po, err := uc.Create(ctx, "u1", dto.CreatePORequest{SupplierID: "s1", Items: []dto.LineItemDTO{line("A", 1, 10)}})
	require.NoError(t, err)

	done, err := uc.Complete(ctx, po.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PurchaseOrderCompleted, done.Status)

	_, err = uc.Complete(ctx, po.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = uc.Complete(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	sent, err := uc.List(ctx, dto.PurchaseOrderQuery{Status: entity.PurchaseOrderSent})
	require.NoError(t, err)
	assert.Empty(t, sent.Items)
	completed, err := uc.List(ctx, dto.PurchaseOrderQuery{Status: entity.PurchaseOrderCompleted})
	require.NoError(t, err)
	assert.Len(t, completed.Items, 1)
}

func TestDownloadPDF(t *testing.T) {
	uc, gen := newUseCase(t)
	ctx := context.Background()
	po, err := uc.Create(ctx, "u1", dto.CreatePORequest{SupplierID: "s1", Items: []dto.LineItemDTO{line("A", 1, 10)}})
	require.NoError(t, err)

	b, name, err := uc.DownloadPDF(ctx, po.ID)
	require.NoError(t, err)
	assert.True(t, gen.called)
	assert.Equal(t, "%PDF-ACME", string(b))
	assert.Regexp(t, `^PO-[0-9A-F]{8}\.pdf$`, name)
}
