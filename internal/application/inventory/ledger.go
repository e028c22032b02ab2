package inventory

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
	"github.com/jhoicas/stock-ledger-api/pkg/logger"
)

// LedgerEngine aplica movimientos de stock sobre el store de cantidades de forma transaccional:
// valida antes de escribir, serializa por llave (sku, bodega) y confirma la actualización de la
// cantidad junto con el registro del movimiento.
type LedgerEngine struct {
	tx     TxRunner
	locker KeyLocker
	log    *logger.Logger
	rec    Recorder
	now    func() time.Time
}

// LedgerOption configura opciones del motor.
type LedgerOption func(*LedgerEngine)

// WithLogger define el logger del motor.
func WithLogger(l *logger.Logger) LedgerOption {
	return func(e *LedgerEngine) {
		if l != nil {
			e.log = l.Component("ledger")
		}
	}
}

// WithRecorder define el receptor de métricas.
func WithRecorder(r Recorder) LedgerOption {
	return func(e *LedgerEngine) {
		if r != nil {
			e.rec = r
		}
	}
}

// WithClock reemplaza time.Now (tests).
func WithClock(now func() time.Time) LedgerOption {
	return func(e *LedgerEngine) {
		if now != nil {
			e.now = now
		}
	}
}

// NewLedgerEngine construye el motor. Si locker es nil se usa un LocalKeyLocker.
func NewLedgerEngine(tx TxRunner, locker KeyLocker, opts ...LedgerOption) *LedgerEngine {
	if locker == nil {
		locker = NewLocalKeyLocker()
	}
	e := &LedgerEngine{
		tx:     tx,
		locker: locker,
		log:    logger.Nop(),
		rec:    nopRecorder{},
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ApplyMovement aplica un StockIn o StockOut y devuelve el registro resultante.
//
// En éxito se escribe exactamente un registro de cantidad y se agrega exactamente un movimiento,
// ambos en la misma transacción. En cualquier error no queda nada escrito:
//   - domain.ErrInvalidMovement: tipo desconocido, cantidad <= 0 o llave vacía (sin tocar el store).
//   - domain.ErrInsufficientStock: StockOut sobre un registro inexistente o con cantidad menor.
//   - domain.ErrStoreUnavailable: falla de persistencia o del lock (el error original queda envuelto).
func (e *LedgerEngine) ApplyMovement(ctx context.Context, ev *entity.MovementEvent) (*entity.QuantityRecord, error) {
	if err := validateMovement(ev); err != nil {
		e.rejected(ev, "invalid", err)
		return nil, err
	}
	ev.SKU = strings.TrimSpace(ev.SKU)
	ev.Warehouse = strings.TrimSpace(ev.Warehouse)

	now := e.now()
	if ev.ID == "" {
		ev.ID = uuid.New().String()
	}
	if ev.CreatedAt.IsZero() {
		ev.CreatedAt = now
	}
	start := time.Now()

	unlock, err := e.locker.Lock(ctx, ev.Key().String())
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		err = storeErr(fmt.Errorf("lock %s: %w", ev.Key(), err))
		e.log.Error().Err(err).Str("key", ev.Key().String()).Msg("no se pudo bloquear la llave")
		return nil, err
	}
	defer unlock()

	var result *entity.QuantityRecord
	err = e.tx.Run(ctx, func(store repository.QuantityStore, log repository.MovementLog) error {
		rec, err := store.GetForUpdate(ctx, ev.SKU, ev.Warehouse)
		if err != nil {
			return storeErr(fmt.Errorf("get quantity record: %w", err))
		}

		switch ev.Type {
		case entity.MovementStockIn:
			rec, err = applyStockIn(rec, ev, now)
		case entity.MovementStockOut:
			rec, err = applyStockOut(rec, ev, now)
		}
		if err != nil {
			return err
		}

		if err := store.Upsert(ctx, rec); err != nil {
			return storeErr(fmt.Errorf("upsert quantity record: %w", err))
		}
		if err := log.Append(ctx, ev); err != nil {
			return storeErr(fmt.Errorf("append movement: %w", err))
		}
		result = rec.Clone()
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInsufficientStock), errors.Is(err, domain.ErrInvalidMovement):
			e.rejected(ev, reasonOf(err), err)
			return nil, err
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			return nil, err
		default:
			err = storeErr(err)
			e.rec.MovementRejected(ev.Type, "store")
			e.log.Error().Err(err).Str("key", ev.Key().String()).Str("type", string(ev.Type)).Msg("falla del store al aplicar movimiento")
			return nil, err
		}
	}

	e.rec.MovementApplied(ev.Type, time.Since(start))
	e.log.Debug().
		Str("id", ev.ID).
		Str("type", string(ev.Type)).
		Str("key", ev.Key().String()).
		Int64("quantity", ev.Quantity).
		Int64("balance", result.Quantity).
		Msg("movimiento aplicado")
	return result, nil
}

func validateMovement(ev *entity.MovementEvent) error {
	if ev == nil {
		return fmt.Errorf("%w: movimiento vacío", domain.ErrInvalidMovement)
	}
	if !ev.Type.Valid() {
		return fmt.Errorf("%w: tipo %q", domain.ErrInvalidMovement, ev.Type)
	}
	if ev.Quantity <= 0 {
		return fmt.Errorf("%w: la cantidad debe ser positiva (%d)", domain.ErrInvalidMovement, ev.Quantity)
	}
	if strings.TrimSpace(ev.SKU) == "" || strings.TrimSpace(ev.Warehouse) == "" {
		return fmt.Errorf("%w: sku y bodega son obligatorios", domain.ErrInvalidMovement)
	}
	return nil
}

// applyStockIn crea el registro en la primera entrada o suma la cantidad.
func applyStockIn(rec *entity.QuantityRecord, ev *entity.MovementEvent, now time.Time) (*entity.QuantityRecord, error) {
	if rec == nil {
		rec = &entity.QuantityRecord{
			ProductID:   ev.ProductID,
			ProductName: ev.ProductName,
			SKU:         ev.SKU,
			Category:    ev.Category,
			Warehouse:   ev.Warehouse,
			Unit:        ev.Unit,
			Expiry:      ev.Expiry,
			CreatedAt:   now,
		}
	} else {
		if rec.Quantity > math.MaxInt64-ev.Quantity {
			return nil, fmt.Errorf("%w: la cantidad excede el máximo representable", domain.ErrInvalidMovement)
		}
		if rec.Expiry == nil && ev.Expiry != nil {
			rec.Expiry = ev.Expiry
		}
	}
	rec.Quantity += ev.Quantity
	rec.UpdatedAt = now
	return rec, nil
}

// applyStockOut descuenta la cantidad; nunca deja el registro en negativo.
func applyStockOut(rec *entity.QuantityRecord, ev *entity.MovementEvent, now time.Time) (*entity.QuantityRecord, error) {
	if rec == nil {
		return nil, fmt.Errorf("%w: no hay registro para %s", domain.ErrInsufficientStock, ev.Key())
	}
	if rec.Quantity < ev.Quantity {
		return nil, fmt.Errorf("%w: disponible %d, solicitado %d", domain.ErrInsufficientStock, rec.Quantity, ev.Quantity)
	}
	rec.Quantity -= ev.Quantity
	rec.UpdatedAt = now
	return rec, nil
}

// storeErr clasifica err como falla de persistencia sin perder el error original.
func storeErr(err error) error {
	return domain.StoreError("", err)
}

func reasonOf(err error) string {
	if errors.Is(err, domain.ErrInsufficientStock) {
		return "insufficient_stock"
	}
	return "invalid"
}

func (e *LedgerEngine) rejected(ev *entity.MovementEvent, reason string, err error) {
	var t entity.MovementType
	var key string
	if ev != nil {
		t = ev.Type
		key = ev.Key().String()
	}
	e.rec.MovementRejected(t, reason)
	e.log.Info().Err(err).Str("key", key).Str("type", string(t)).Msg("movimiento rechazado")
}
