package entity

import (
	"fmt"
	"strings"
	"time"
)

// MovementType tipo de movimiento del libro de stock.
type MovementType string

// Tipos de movimiento soportados por el motor.
const (
	MovementStockIn  MovementType = "StockIn"  // entrada (proveedor + factura)
	MovementStockOut MovementType = "StockOut" // salida (motivo + factura)
)

// Valid indica si el tipo es uno de los soportados.
func (t MovementType) Valid() bool {
	return t == MovementStockIn || t == MovementStockOut
}

// MovementEvent es un registro inmutable del libro de movimientos.
type MovementEvent struct {
	ID          string
	Type        MovementType
	ProductID   string
	ProductName string
	SKU         string
	Category    string
	Warehouse   string
	Quantity    int64 // siempre positivo; el signo lo da Type
	Unit        string
	Supplier    string // solo StockIn
	Reason      string // solo StockOut
	Invoice     string
	Batch       string
	Expiry      *time.Time
	Location    string
	Remarks     string
	CreatedBy   string // actorID del usuario que registró el movimiento
	CreatedAt   time.Time
}

// Key devuelve la llave (sku, bodega) afectada por el movimiento.
func (m *MovementEvent) Key() RecordKey {
	return NewRecordKey(m.SKU, m.Warehouse)
}

// DefaultBatch genera el lote por defecto "BATCH-<últimos 6 dígitos de los ms>".
func DefaultBatch(now time.Time) string {
	ms := fmt.Sprintf("%d", now.UnixMilli())
	if len(ms) > 6 {
		ms = ms[len(ms)-6:]
	}
	return "BATCH-" + ms
}

// FormatLocation arma la ubicación "Zona - Rack - Bin" usando los valores por defecto si faltan.
func FormatLocation(zone, rack, bin string) string {
	return fmt.Sprintf("%s - %s - %s",
		nonBlank(zone, "Zone"), nonBlank(rack, "Rack"), nonBlank(bin, "Bin"))
}

func nonBlank(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return strings.TrimSpace(s)
}
