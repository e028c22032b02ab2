package metrics_test

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/infrastructure/metrics"
)

func TestLedgerMetrics_Contadores(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewLedgerMetrics(reg)

	m.MovementApplied(entity.MovementStockIn, 10*time.Millisecond)
	m.MovementApplied(entity.MovementStockIn, 5*time.Millisecond)
	m.MovementRejected(entity.MovementStockOut, "insufficient_stock")

	assert.Equal(t, 2, testutil.CollectAndCount(reg, "stock_ledger_movements_applied_total")+
		testutil.CollectAndCount(reg, "stock_ledger_movements_rejected_total"))

	families, err := reg.Gather()
	assert.NoError(t, err)
	values := map[string]float64{}
	for _, f := range families {
		for _, metric := range f.GetMetric() {
			if c := metric.GetCounter(); c != nil {
				values[f.GetName()] += c.GetValue()
			}
		}
	}
	assert.Equal(t, 2.0, values["stock_ledger_movements_applied_total"])
	assert.Equal(t, 1.0, values["stock_ledger_movements_rejected_total"])
}

func TestLedgerMetrics_NilEsSeguro(t *testing.T) {
	var m *metrics.LedgerMetrics
	assert.NotPanics(t, func() {
		m.MovementApplied(entity.MovementStockIn, time.Millisecond)
		m.MovementRejected(entity.MovementStockIn, "invalid")
	})
}
