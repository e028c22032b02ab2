package dto

import "time"

// DateLayout formato de fechas de vencimiento en requests y exportaciones.
const DateLayout = "2006-01-02"

// StockInRequest body para POST /api/inventory/stock-in.
type StockInRequest struct {
	ProductID  string `json:"product_id" validate:"required"`
	Warehouse  string `json:"warehouse" validate:"required"` // ID de la bodega
	Quantity   int64  `json:"quantity" validate:"gt=0"`
	Supplier   string `json:"supplier" validate:"required,max=200"`
	Invoice    string `json:"invoice" validate:"required,max=100"`
	Batch      string `json:"batch" validate:"max=100"`
	ExpiryDate string `json:"expiry_date" validate:"omitempty,datetime=2006-01-02"`
	Zone       string `json:"zone"`
	Rack       string `json:"rack"`
	Bin        string `json:"bin"`
	Remarks    string `json:"remarks" validate:"max=500"`
}

// StockOutRequest body para POST /api/inventory/stock-out.
type StockOutRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Warehouse string `json:"warehouse" validate:"required"`
	Quantity  int64  `json:"quantity" validate:"gt=0"`
	Reason    string `json:"reason" validate:"required,max=200"`
	Invoice   string `json:"invoice" validate:"required,max=100"`
	Batch     string `json:"batch" validate:"max=100"`
	Zone      string `json:"zone"`
	Rack      string `json:"rack"`
	Bin       string `json:"bin"`
	Remarks   string `json:"remarks" validate:"max=500"`
}

// QuantityRecordResponse cantidad de un SKU en una bodega con su estado de stock.
type QuantityRecordResponse struct {
	ProductID     string     `json:"product_id"`
	ProductName   string     `json:"product_name"`
	SKU           string     `json:"sku"`
	Category      string     `json:"category"`
	Warehouse     string     `json:"warehouse"`
	WarehouseName string     `json:"warehouse_name,omitempty"`
	Quantity      int64      `json:"quantity"`
	MinStock      int64      `json:"min_stock"`
	Unit          string     `json:"unit"`
	Expiry        *time.Time `json:"expiry,omitempty"`
	Status        string     `json:"status"` // Critical | Warning | Low | OK
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// MovementResponse movimiento registrado en el libro.
type MovementResponse struct {
	ID          string     `json:"id"`
	Type        string     `json:"type"`
	ProductID   string     `json:"product_id"`
	ProductName string     `json:"product_name"`
	SKU         string     `json:"sku"`
	Category    string     `json:"category"`
	Warehouse   string     `json:"warehouse"`
	Quantity    int64      `json:"quantity"`
	Unit        string     `json:"unit"`
	Supplier    string     `json:"supplier,omitempty"`
	Reason      string     `json:"reason,omitempty"`
	Invoice     string     `json:"invoice"`
	Batch       string     `json:"batch"`
	Expiry      *time.Time `json:"expiry,omitempty"`
	Location    string     `json:"location"`
	Remarks     string     `json:"remarks,omitempty"`
	CreatedBy   string     `json:"created_by"`
	CreatedAt   time.Time  `json:"created_at"`
}

// MovementResultResponse respuesta de stock-in / stock-out: el movimiento y el saldo resultante.
type MovementResultResponse struct {
	Movement MovementResponse       `json:"movement"`
	Record   QuantityRecordResponse `json:"record"`
}

// InventoryQuery filtros de GET /api/inventory.
type InventoryQuery struct {
	Warehouse string `query:"warehouse"`
	Search    string `query:"search"`
	PageRequest
}

// InventoryListResponse lista de registros de cantidad.
type InventoryListResponse struct {
	Items []QuantityRecordResponse `json:"items"`
	Page  PageResponse             `json:"page"`
}

// MovementQuery filtros de GET /api/inventory/movements.
type MovementQuery struct {
	Type string `query:"type" validate:"omitempty,oneof=StockIn StockOut"`
	PageRequest
}

// MovementListResponse lista de movimientos (CreatedAt descendente).
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
