package entity

import "time"

// Warehouse representa una bodega donde se almacena inventario.
type Warehouse struct {
	ID          string
	Name        string // único (sin distinguir mayúsculas)
	Location    string
	Status      string // Active, Inactive
	Utilization int    // porcentaje 0-100 informado por el usuario
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
