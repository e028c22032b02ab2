package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultMinStock mínimo usado cuando el producto se crea sin uno explícito.
const DefaultMinStock = 10

// Product representa un producto o SKU del catálogo.
// El stock por bodega vive en QuantityRecord; MinStock alimenta las alertas de stock bajo.
type Product struct {
	ID          string
	SKU         string // código único
	Name        string
	Category    string
	Brand       string
	Unit        string
	MinStock    int64
	Price       decimal.Decimal // precio de referencia para órdenes de compra
	Description string
	Status      string // Active, Inactive
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
