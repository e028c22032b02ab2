package entity

import "time"

// Supplier proveedor de mercancía (origen de las entradas y destino de las órdenes de compra).
type Supplier struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	GST       string // número de registro tributario
	CreatedAt time.Time
	UpdatedAt time.Time
}
