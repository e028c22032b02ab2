package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

func day(d int) time.Time {
	return time.Date(2025, time.January, d, 9, 0, 0, 0, time.UTC)
}

func TestMovementLog_OrdenaPorFechaDescendente(t *testing.T) {
	ctx := context.Background()
	log := NewMovementLog(NewDB())

	require.NoError(t, log.Append(ctx, &entity.MovementEvent{ID: "e2", Type: entity.MovementStockIn, CreatedAt: day(2)}))
	require.NoError(t, log.Append(ctx, &entity.MovementEvent{ID: "e1", Type: entity.MovementStockIn, CreatedAt: day(1)}))
	require.NoError(t, log.Append(ctx, &entity.MovementEvent{ID: "e3", Type: entity.MovementStockOut, CreatedAt: day(3)}))

	got, err := log.ListRecent(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"e3", "e2", "e1"}, ids(got))

	ins, err := log.ListByType(ctx, entity.MovementStockIn, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"e1"}, ids(ins))
}

func TestMovementLog_EmpateGanaElUltimoInsertado(t *testing.T) {
	ctx := context.Background()
	log := NewMovementLog(NewDB())

	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, log.Append(ctx, &entity.MovementEvent{ID: id, Type: entity.MovementStockIn, CreatedAt: day(5)}))
	}

	got, err := log.ListRecent(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "b"}, ids(got))
}

func TestTxRunner_CommitRespetaOrdenPorFecha(t *testing.T) {
	ctx := context.Background()
	db := NewDB()
	runner := NewTxRunner(db)

	for _, ev := range []*entity.MovementEvent{
		{ID: "tarde", Type: entity.MovementStockIn, CreatedAt: day(2)},
		{ID: "temprano", Type: entity.MovementStockIn, CreatedAt: day(1)},
	} {
		err := runner.Run(ctx, func(_ repository.QuantityStore, l repository.MovementLog) error { return l.Append(ctx, ev) })
		require.NoError(t, err)
	}

	got, err := NewMovementLog(db).ListRecent(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"tarde", "temprano"}, ids(got))
}

func ids(evs []*entity.MovementEvent) []string {
	out := make([]string, 0, len(evs))
	for _, ev := range evs {
		out = append(out, ev.ID)
	}
	return out
}
