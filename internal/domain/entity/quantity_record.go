package entity

import (
	"strconv"
	"strings"
	"time"
)

// QuantityRecord representa la cantidad disponible de un SKU en una bodega.
// Se crea con la primera entrada y nunca se elimina (puede quedar en 0).
type QuantityRecord struct {
	ProductID   string
	ProductName string
	SKU         string
	Category    string
	Warehouse   string // ID de la bodega
	Quantity    int64  // siempre >= 0
	Unit        string
	Expiry      *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// RecordKey identidad de un registro de inventario: el par (sku, bodega).
type RecordKey struct {
	SKU       string
	Warehouse string
}

// NewRecordKey normaliza espacios en ambos componentes.
func NewRecordKey(sku, warehouse string) RecordKey {
	return RecordKey{SKU: strings.TrimSpace(sku), Warehouse: strings.TrimSpace(warehouse)}
}

// String forma textual para locks y logs: "<len(sku)>:<sku>/<bodega>". El prefijo de longitud
// evita que dos pares distintos produzcan el mismo texto.
func (k RecordKey) String() string {
	return strconv.Itoa(len(k.SKU)) + ":" + k.SKU + "/" + k.Warehouse
}

// Key devuelve la llave (sku, bodega) del registro.
func (r *QuantityRecord) Key() RecordKey {
	return NewRecordKey(r.SKU, r.Warehouse)
}

// Clone devuelve una copia independiente (incluida la fecha de vencimiento).
func (r *QuantityRecord) Clone() *QuantityRecord {
	if r == nil {
		return nil
	}
	c := *r
	if r.Expiry != nil {
		exp := *r.Expiry
		c.Expiry = &exp
	}
	return &c
}
