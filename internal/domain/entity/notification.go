package entity

import "time"

// Tipos y prioridades de notificación.
const (
	NotificationLowStock = "low_stock"
	NotificationExpiry   = "expiry"
	NotificationInfo     = "info"

	PriorityHigh   = "high"
	PriorityMedium = "medium"
)

// Notification aviso dirigido a un usuario (campana de notificaciones).
type Notification struct {
	ID        string
	UserID    string
	Title     string
	Message   string
	Type      string
	Priority  string
	Read      bool
	CreatedAt time.Time
}
