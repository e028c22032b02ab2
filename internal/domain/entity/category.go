package entity

import "time"

// Category categoría del catálogo. Los productos la referencian por nombre.
type Category struct {
	ID          string
	Name        string // único sin distinguir mayúsculas
	Description string
	Status      string // Active, Inactive
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
