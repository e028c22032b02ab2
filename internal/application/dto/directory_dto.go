package dto

import "time"

// CategoryRequest entrada para crear o editar una categoría.
type CategoryRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=100"`
	Description string `json:"description" validate:"max=500"`
	Status      string `json:"status" validate:"omitempty,oneof=Active Inactive"` // vacío = Active al crear
}

// CategoryResponse salida de una categoría con su conteo de productos.
type CategoryResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Status       string    `json:"status"`
	ProductCount int64     `json:"product_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CategoryListResponse todas las categorías, por nombre.
type CategoryListResponse struct {
	Items []CategoryResponse `json:"items"`
}

// CreateBrandRequest entrada para registrar una marca.
type CreateBrandRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

// BrandResponse salida de una marca con su conteo de productos.
type BrandResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	ProductCount int64     `json:"product_count"`
	CreatedAt    time.Time `json:"created_at"`
}

// BrandListResponse todas las marcas, las más recientes primero.
type BrandListResponse struct {
	Items []BrandResponse `json:"items"`
}

// UserRequest entrada para crear o editar una entrada del directorio.
type UserRequest struct {
	FullName string `json:"full_name" validate:"required,min=1,max=200"`
	Email    string `json:"email" validate:"required,email,max=254"`
	Phone    string `json:"phone" validate:"max=40"`
	Role     string `json:"role" validate:"omitempty,oneof=Admin Manager Staff Viewer"` // vacío = Staff
}

// UserQuery filtros del directorio.
type UserQuery struct {
	Search string `query:"search" validate:"max=200"`
	Role   string `query:"role" validate:"omitempty,oneof=Admin Manager Staff Viewer"`
	Status string `query:"status" validate:"omitempty,oneof=Active Disabled"`
}

// UserResponse salida de una entrada del directorio.
type UserResponse struct {
	ID        string    `json:"id"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserStats conteos del directorio completo, sin filtros.
type UserStats struct {
	Total    int `json:"total"`
	Active   int `json:"active"`
	Disabled int `json:"disabled"`
	Admins   int `json:"admins"`
}

// UserListResponse usuarios filtrados más estadísticas globales.
type UserListResponse struct {
	Items []UserResponse `json:"items"`
	Stats UserStats      `json:"stats"`
}
