package dto

import "time"

// LowStockItem fila de la vista de stock bajo.
type LowStockItem struct {
	ProductID         string `json:"product_id"`
	SKU               string `json:"sku"`
	ProductName       string `json:"product_name"`
	Warehouse         string `json:"warehouse"`
	WarehouseName     string `json:"warehouse_name"`
	Quantity          int64  `json:"quantity"`
	MinStock          int64  `json:"min_stock"`
	Status            string `json:"status"`
	SuggestedOrderQty int64  `json:"suggested_order_qty"` // hasta 1.5 × mínimo
	Priority          int    `json:"priority"`            // 1 = más urgente
}

// LowStockSummary conteos por nivel.
type LowStockSummary struct {
	Critical int `json:"critical"`
	Warning  int `json:"warning"`
	Low      int `json:"low"`
}

// LowStockResponse GET /api/alerts/low-stock.
type LowStockResponse struct {
	Items   []LowStockItem  `json:"items"`
	Summary LowStockSummary `json:"summary"`
}

// ExpiryItem fila de la vista de vencimientos.
type ExpiryItem struct {
	ProductID     string    `json:"product_id"`
	SKU           string    `json:"sku"`
	ProductName   string    `json:"product_name"`
	Warehouse     string    `json:"warehouse"`
	WarehouseName string    `json:"warehouse_name"`
	Quantity      int64     `json:"quantity"`
	Expiry        time.Time `json:"expiry"`
	DaysLeft      int       `json:"days_left"` // negativo = vencido hace N días
	Status        string    `json:"status"`    // Expired | Critical | Warning | OK
}

// ExpirySummary conteos por estado.
type ExpirySummary struct {
	Expired  int `json:"expired"`
	Critical int `json:"critical"`
	Warning  int `json:"warning"`
}

// ExpiryResponse GET /api/alerts/expiry.
type ExpiryResponse struct {
	Items   []ExpiryItem  `json:"items"`
	Summary ExpirySummary `json:"summary"`
}

// ExportQuery formato de exportación de las vistas de alertas.
type ExportQuery struct {
	Format string `query:"format" validate:"omitempty,oneof=csv xlsx"`
}

// NotifyResponse resultado de POST /api/alerts/expiry/notify.
type NotifyResponse struct {
	Created int `json:"created"`
}
