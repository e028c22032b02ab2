package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción, pasando el store de cantidades y el
// libro de movimientos atados a esa transacción. Ambos se confirman juntos o ninguno.
type TxRunner interface {
	Run(ctx context.Context, fn func(store repository.QuantityStore, log repository.MovementLog) error) error
}

// KeyLocker serializa escritores sobre la misma llave (sku, bodega).
// Lock bloquea hasta obtener la llave o hasta que ctx se cancele; unlock libera.
type KeyLocker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}

// Recorder recibe eventos del motor para métricas. Las implementaciones deben ser seguras
// para uso concurrente.
type Recorder interface {
	MovementApplied(t entity.MovementType, elapsed time.Duration)
	MovementRejected(t entity.MovementType, reason string)
}

type nopRecorder struct{}

func (nopRecorder) MovementApplied(entity.MovementType, time.Duration) {}
func (nopRecorder) MovementRejected(entity.MovementType, string)       {}

// AlertNotifier emite avisos derivados de los movimientos y de los vencimientos.
type AlertNotifier interface {
	NotifyLowStock(ctx context.Context, userID string, rec *entity.QuantityRecord, status string) error
	NotifyExpiry(ctx context.Context, userID, productName string, daysLeft int) error
}
