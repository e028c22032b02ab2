package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto del catálogo.
type CreateProductRequest struct {
	SKU         string          `json:"sku" validate:"required,min=1,max=100"`
	Name        string          `json:"name" validate:"required,min=1,max=200"`
	Category    string          `json:"category" validate:"max=100"`
	Brand       string          `json:"brand" validate:"max=100"`
	Unit        string          `json:"unit" validate:"required,max=20"`
	MinStock    *int64          `json:"min_stock" validate:"omitempty,gte=0"` // nil = 10
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description" validate:"max=1000"`
}

// UpdateProductRequest entrada para actualizar un producto (el SKU no cambia: es parte de la llave de inventario).
type UpdateProductRequest struct {
	Name        *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Category    *string          `json:"category" validate:"omitempty,max=100"`
	Brand       *string          `json:"brand" validate:"omitempty,max=100"`
	Unit        *string          `json:"unit" validate:"omitempty,min=1,max=20"`
	MinStock    *int64           `json:"min_stock" validate:"omitempty,gte=0"`
	Price       *decimal.Decimal `json:"price"`
	Description *string          `json:"description" validate:"omitempty,max=1000"`
	Status      *string          `json:"status" validate:"omitempty,oneof=Active Inactive"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID          string          `json:"id"`
	SKU         string          `json:"sku"`
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Brand       string          `json:"brand"`
	Unit        string          `json:"unit"`
	MinStock    int64           `json:"min_stock"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
