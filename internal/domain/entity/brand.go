package entity

import "time"

// Brand marca del catálogo. Los productos la referencian por nombre.
type Brand struct {
	ID        string
	Name      string // único sin distinguir mayúsculas
	CreatedAt time.Time
}
