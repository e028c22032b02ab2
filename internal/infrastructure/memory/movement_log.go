package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

var _ repository.MovementLog = (*MovementLog)(nil)

// MovementLog libro de movimientos en memoria (solo inserción).
type MovementLog struct {
	db *DB
}

// NewMovementLog construye el libro sobre db.
func NewMovementLog(db *DB) *MovementLog {
	return &MovementLog{db: db}
}

// Append agrega una copia del evento.
func (l *MovementLog) Append(_ context.Context, ev *entity.MovementEvent) error {
	l.db.mu.Lock()
	defer l.db.mu.Unlock()
	l.db.movements = append(l.db.movements, cloneEvent(ev))
	return nil
}

// ListRecent últimos limit eventos por CreatedAt descendente.
func (l *MovementLog) ListRecent(_ context.Context, limit int) ([]*entity.MovementEvent, error) {
	return l.scan("", limit, 0), nil
}

// ListByType eventos de un tipo, más recientes primero.
func (l *MovementLog) ListByType(_ context.Context, t entity.MovementType, limit, offset int) ([]*entity.MovementEvent, error) {
	return l.scan(t, limit, offset), nil
}

// Len número de eventos registrados.
func (l *MovementLog) Len() int {
	l.db.mu.RLock()
	defer l.db.mu.RUnlock()
	return len(l.db.movements)
}

func (l *MovementLog) scan(t entity.MovementType, limit, offset int) []*entity.MovementEvent {
	l.db.mu.RLock()
	defer l.db.mu.RUnlock()

	out := make([]*entity.MovementEvent, 0)
	// Recorrido inverso: a igual CreatedAt queda primero el último insertado (como seq DESC).
	for i := len(l.db.movements) - 1; i >= 0; i-- {
		ev := l.db.movements[i]
		if t != "" && ev.Type != t {
			continue
		}
		out = append(out, cloneEvent(ev))
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	from, to := page(len(out), limit, offset)
	return out[from:to]
}

func cloneEvent(ev *entity.MovementEvent) *entity.MovementEvent {
	c := *ev
	if ev.Expiry != nil {
		exp := *ev.Expiry
		c.Expiry = &exp
	}
	return &c
}
