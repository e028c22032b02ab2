// Package metrics expone colectores Prometheus del motor de stock.
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/jhoicas/stock-ledger-api/internal/application/inventory"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
)

var _ inventory.Recorder = (*LedgerMetrics)(nil)

// LedgerMetrics contadores de movimientos aplicados / rechazados y duración de aplicación.
type LedgerMetrics struct {
	applied  *prometheus.CounterVec
	rejected *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

var (
	defaultOnce    sync.Once
	defaultMetrics *LedgerMetrics
)

// NewLedgerMetrics registra los colectores en registerer. Con nil se usa el registro por defecto
// (una sola vez por proceso).
func NewLedgerMetrics(registerer prometheus.Registerer) *LedgerMetrics {
	if registerer == nil {
		defaultOnce.Do(func() {
			defaultMetrics = build(prometheus.DefaultRegisterer)
		})
		return defaultMetrics
	}
	return build(registerer)
}

// MovementApplied cuenta un movimiento confirmado.
func (m *LedgerMetrics) MovementApplied(t entity.MovementType, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.applied.WithLabelValues(string(t)).Inc()
	m.duration.WithLabelValues(string(t)).Observe(elapsed.Seconds())
}

// MovementRejected cuenta un movimiento rechazado por motivo (invalid, insufficient_stock, store).
func (m *LedgerMetrics) MovementRejected(t entity.MovementType, reason string) {
	if m == nil {
		return
	}
	m.rejected.WithLabelValues(string(t), reason).Inc()
}

func build(registerer prometheus.Registerer) *LedgerMetrics {
	applied := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "stock_ledger_movements_applied_total",
		Help: "Movimientos de stock confirmados por tipo.",
	}, []string{"type"})
	rejected := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "stock_ledger_movements_rejected_total",
		Help: "Movimientos de stock rechazados por tipo y motivo.",
	}, []string{"type", "reason"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "stock_ledger_apply_duration_seconds",
		Help:    "Duración de la aplicación de un movimiento (lock + transacción).",
		Buckets: prometheus.DefBuckets,
	}, []string{"type"})
	registerer.MustRegister(applied, rejected, duration)
	return &LedgerMetrics{applied: applied, rejected: rejected, duration: duration}
}
