// Package inventory contiene los servicios de dominio puros del libro de stock:
// clasificación de stock bajo y de vencimientos a partir de umbrales configurables.
package inventory

import (
	"fmt"
	"math"
	"time"

	"github.com/jhoicas/stock-ledger-api/internal/domain"
)

// LowStockStatus nivel de alerta de stock bajo.
type LowStockStatus string

// Niveles de stock bajo (de más a menos urgente).
const (
	StockCritical LowStockStatus = "Critical"
	StockWarning  LowStockStatus = "Warning"
	StockLow      LowStockStatus = "Low"
	StockOK       LowStockStatus = "OK"
)

// ExpiryStatus nivel de alerta de vencimiento.
type ExpiryStatus string

// Niveles de vencimiento.
const (
	ExpiryExpired  ExpiryStatus = "Expired"
	ExpiryCritical ExpiryStatus = "Critical"
	ExpiryWarning  ExpiryStatus = "Warning"
	ExpiryOK       ExpiryStatus = "OK"
)

// Ventana de vencimientos "relevantes" que muestran las vistas (días).
const (
	RelevantExpiryPastDays   = 30
	RelevantExpiryFutureDays = 30
)

const day = 24 * time.Hour

// Thresholds umbrales de clasificación. Los ratios se aplican sobre MinStock;
// los días sobre (vencimiento - hoy).
type Thresholds struct {
	CriticalRatio float64
	WarningRatio  float64
	CriticalDays  int
	WarningDays   int
}

// DefaultThresholds valores observados en las vistas de stock bajo y vencimientos.
func DefaultThresholds() Thresholds {
	return Thresholds{
		CriticalRatio: 0.2,
		WarningRatio:  0.5,
		CriticalDays:  7,
		WarningDays:   30,
	}
}

// Validate verifica 0 < critical <= warning <= 1 y 0 <= criticalDays <= warningDays.
func (t Thresholds) Validate() error {
	if !finite(t.CriticalRatio) || !finite(t.WarningRatio) ||
		t.CriticalRatio <= 0 || t.CriticalRatio > t.WarningRatio || t.WarningRatio > 1 {
		return fmt.Errorf("%w: ratios de stock bajo inconsistentes (%v, %v)",
			domain.ErrInvalidInput, t.CriticalRatio, t.WarningRatio)
	}
	if t.CriticalDays < 0 || t.CriticalDays > t.WarningDays {
		return fmt.Errorf("%w: días de vencimiento inconsistentes (%d, %d)",
			domain.ErrInvalidInput, t.CriticalDays, t.WarningDays)
	}
	return nil
}

// ClassifyStock clasifica una cantidad contra su mínimo:
// q <= min*critical → Critical; q <= min*warning → Warning; q <= min → Low; si no OK.
func (t Thresholds) ClassifyStock(quantity, minStock float64) (LowStockStatus, error) {
	if !finite(quantity) || !finite(minStock) || quantity < 0 || minStock < 0 {
		return "", fmt.Errorf("%w: cantidad=%v mínimo=%v", domain.ErrInvalidInput, quantity, minStock)
	}
	switch {
	case quantity <= minStock*t.CriticalRatio:
		return StockCritical, nil
	case quantity <= minStock*t.WarningRatio:
		return StockWarning, nil
	case quantity <= minStock:
		return StockLow, nil
	default:
		return StockOK, nil
	}
}

// ClassifyExpiry clasifica una fecha de vencimiento respecto a today.
func (t Thresholds) ClassifyExpiry(expiry, today time.Time) (ExpiryStatus, error) {
	days, err := DaysLeft(expiry, today)
	if err != nil {
		return "", err
	}
	switch {
	case days < 0:
		return ExpiryExpired, nil
	case days <= t.CriticalDays:
		return ExpiryCritical, nil
	case days <= t.WarningDays:
		return ExpiryWarning, nil
	default:
		return ExpiryOK, nil
	}
}

// ClassifyStock usa DefaultThresholds.
func ClassifyStock(quantity, minStock float64) (LowStockStatus, error) {
	return DefaultThresholds().ClassifyStock(quantity, minStock)
}

// ClassifyExpiry usa DefaultThresholds.
func ClassifyExpiry(expiry, today time.Time) (ExpiryStatus, error) {
	return DefaultThresholds().ClassifyExpiry(expiry, today)
}

// DaysLeft calcula ceil((expiry - today) / 1 día). Negativo = vencido hace N días.
func DaysLeft(expiry, today time.Time) (int, error) {
	if expiry.IsZero() || today.IsZero() {
		return 0, fmt.Errorf("%w: fecha vacía", domain.ErrInvalidInput)
	}
	diff := expiry.Sub(today)
	return int(math.Ceil(float64(diff) / float64(day))), nil
}

// IsRelevantExpiry filtro de las vistas: vencidos en los últimos 30 días o por vencer en 30.
func IsRelevantExpiry(daysLeft int) bool {
	return daysLeft >= -RelevantExpiryPastDays && daysLeft <= RelevantExpiryFutureDays
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
