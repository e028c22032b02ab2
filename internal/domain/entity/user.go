package entity

import "time"

// Estados del directorio de usuarios.
const (
	UserActive   = "Active"
	UserDisabled = "Disabled"
)

// User entrada del directorio de usuarios. No guarda credenciales: los tokens se emiten fuera
// del servicio y el rol del token es el que autoriza cada petición.
type User struct {
	ID        string
	FullName  string
	Email     string // único, en minúsculas
	Phone     string
	Role      string // Admin, Manager, Staff, Viewer
	Status    string // Active, Disabled
	CreatedAt time.Time
	UpdatedAt time.Time
}
