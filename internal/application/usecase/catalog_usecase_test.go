package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/application/usecase"
	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/infrastructure/memory"
)

func TestProductUseCase_Create(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewProductUseCase(memory.NewProductRepository(memory.NewDB()))

	p, err := uc.Create(ctx, dto.CreateProductRequest{SKU: " RICE-1 ", Name: "Rice", Unit: "kg", Price: decimal.NewFromInt(20)})
	require.NoError(t, err)
	assert.Equal(t, "RICE-1", p.SKU)
	assert.Equal(t, int64(entity.DefaultMinStock), p.MinStock)
	assert.Equal(t, usecase.StatusActive, p.Status)

	_, err = uc.Create(ctx, dto.CreateProductRequest{SKU: "RICE-1", Name: "Otro", Unit: "kg"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = uc.Create(ctx, dto.CreateProductRequest{SKU: "X", Name: "X"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "unit obligatorio")

	_, err = uc.Create(ctx, dto.CreateProductRequest{SKU: "Y", Name: "Y", Unit: "u", Price: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	zero := int64(0)
	p2, err := uc.Create(ctx, dto.CreateProductRequest{SKU: "Z", Name: "Z", Unit: "u", MinStock: &zero})
	require.NoError(t, err)
	assert.Equal(t, int64(0), p2.MinStock)
}

func TestProductUseCase_UpdateYDelete(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewProductUseCase(memory.NewProductRepository(memory.NewDB()))
	p, err := uc.Create(ctx, dto.CreateProductRequest{SKU: "MILK-1", Name: "Milk", Unit: "l"})
	require.NoError(t, err)

	minStock := int64(50)
	status := usecase.StatusInactive
	updated, err := uc.Update(ctx, p.ID, dto.UpdateProductRequest{MinStock: &minStock, Status: &status})
	require.NoError(t, err)
	assert.Equal(t, int64(50), updated.MinStock)
	assert.Equal(t, "MILK-1", updated.SKU)
	assert.Equal(t, usecase.StatusInactive, updated.Status)

	bad := "Deleted"
	_, err = uc.Update(ctx, p.ID, dto.UpdateProductRequest{Status: &bad})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Update(ctx, "nope", dto.UpdateProductRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, uc.Delete(ctx, p.ID))
	_, err = uc.GetByID(ctx, p.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, uc.Delete(ctx, p.ID), domain.ErrNotFound)
}

func TestProductUseCase_List(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewProductUseCase(memory.NewProductRepository(memory.NewDB()))
	for _, sku := range []string{"C", "A", "B"} {
		_, err := uc.Create(ctx, dto.CreateProductRequest{SKU: sku, Name: sku, Unit: "u"})
		require.NoError(t, err)
	}
	list, err := uc.List(ctx, dto.PageRequest{Limit: 2})
	require.NoError(t, err)
	require.Len(t, list.Items, 2)
	assert.Equal(t, "A", list.Items[0].SKU)
	assert.Equal(t, "B", list.Items[1].SKU)
	assert.Equal(t, dto.PageResponse{Limit: 2, Count: 2, HasMore: true}, list.Page)

	rest, err := uc.List(ctx, dto.PageRequest{Limit: 2, Offset: 2})
	require.NoError(t, err)
	assert.Equal(t, dto.PageResponse{Limit: 2, Offset: 2, Count: 1}, rest.Page)

	_, err = uc.List(ctx, dto.PageRequest{Limit: 500})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestWarehouseUseCase_NombreUnico(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewWarehouseUseCase(memory.NewWarehouseRepository(memory.NewDB()))

	w, err := uc.Create(ctx, dto.CreateWarehouseRequest{Name: "Central", Location: "Bogotá"})
	require.NoError(t, err)
	assert.Equal(t, usecase.StatusActive, w.Status)

	_, err = uc.Create(ctx, dto.CreateWarehouseRequest{Name: " central "})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	got, err := uc.GetByID(ctx, w.ID)
	require.NoError(t, err)
	assert.Equal(t, "Central", got.Name)

	_, err = uc.GetByID(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	list, err := uc.List(ctx, dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, list.Items, 1)
	assert.Equal(t, 20, list.Page.Limit)
}

func TestSupplierUseCase(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewSupplierUseCase(memory.NewSupplierRepository(memory.NewDB()))

	s, err := uc.Create(ctx, dto.CreateSupplierRequest{Name: "Acme", Email: "ventas@acme.com", GST: "27aapfu0939f1zv"})
	require.NoError(t, err)
	assert.Equal(t, "27AAPFU0939F1ZV", s.GST)

	_, err = uc.Create(ctx, dto.CreateSupplierRequest{Name: "Bad", Email: "no-es-correo"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	got, err := uc.GetByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme", got.Name)

	list, err := uc.List(ctx, dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, list.Items, 1)
}
