package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

func TestQuantityStore_LlaveEsElPar(t *testing.T) {
	ctx := context.Background()
	store := NewQuantityStore(NewDB())

	require.NoError(t, store.Upsert(ctx, &entity.QuantityRecord{SKU: "A_B", Warehouse: "C", Quantity: 100}))

	rec, err := store.Get(ctx, "A", "B_C")
	require.NoError(t, err)
	assert.Nil(t, rec)

	require.NoError(t, store.Upsert(ctx, &entity.QuantityRecord{SKU: "A", Warehouse: "B_C", Quantity: 7}))
	all, err := store.List(ctx, repository.QuantityFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "A", all[0].SKU)
	assert.Equal(t, "A_B", all[1].SKU)

	rec, err = store.Get(ctx, "A_B", "C")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, int64(100), rec.Quantity)
}
