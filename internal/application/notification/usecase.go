// Package notification crea y consulta los avisos de la campana de notificaciones.
package notification

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/application/inventory"
	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	invdomain "github.com/jhoicas/stock-ledger-api/internal/domain/inventory"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

var _ inventory.AlertNotifier = (*UseCase)(nil)

// ListLimit cantidad de notificaciones que muestra la campana.
const ListLimit = 30

// highPriorityDays vencimientos a 3 días o menos son prioridad alta.
const highPriorityDays = 3

// UseCase casos de uso de notificaciones.
type UseCase struct {
	repo repository.NotificationRepository
	now  func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.NotificationRepository) *UseCase {
	return &UseCase{repo: repo, now: time.Now}
}

// Notify crea una notificación para userID.
func (uc *UseCase) Notify(ctx context.Context, userID, title, message, typ, priority string) (*entity.Notification, error) {
	if strings.TrimSpace(userID) == "" || strings.TrimSpace(title) == "" {
		return nil, fmt.Errorf("%w: usuario y título son obligatorios", domain.ErrInvalidInput)
	}
	n := &entity.Notification{
		ID:        uuid.New().String(),
		UserID:    userID,
		Title:     title,
		Message:   message,
		Type:      typ,
		Priority:  priority,
		CreatedAt: uc.now(),
	}
	if err := uc.repo.Create(ctx, n); err != nil {
		return nil, domain.StoreError("create notification", err)
	}
	return n, nil
}

// NotifyLowStock aviso tras una salida que deja el registro en nivel de alerta.
func (uc *UseCase) NotifyLowStock(ctx context.Context, userID string, rec *entity.QuantityRecord, status string) error {
	priority := entity.PriorityMedium
	if status == string(invdomain.StockCritical) {
		priority = entity.PriorityHigh
	}
	_, err := uc.Notify(ctx, userID,
		"Alerta de stock bajo",
		fmt.Sprintf("%s está bajo (quedan %d)", displayName(rec), rec.Quantity),
		entity.NotificationLowStock, priority)
	return err
}

// NotifyExpiry aviso de vencimiento; prioridad alta a 3 días o menos (incluye vencidos).
func (uc *UseCase) NotifyExpiry(ctx context.Context, userID, productName string, daysLeft int) error {
	priority := entity.PriorityMedium
	if daysLeft <= highPriorityDays {
		priority = entity.PriorityHigh
	}
	title, msg := "Producto por vencer", fmt.Sprintf("%s vence en %d días", productName, daysLeft)
	if daysLeft < 0 {
		title, msg = "Producto vencido", fmt.Sprintf("%s venció hace %d días", productName, -daysLeft)
	}
	_, err := uc.Notify(ctx, userID, title, msg, entity.NotificationExpiry, priority)
	return err
}

// List últimas notificaciones del usuario y cuántas no ha leído.
func (uc *UseCase) List(ctx context.Context, userID string) (*dto.NotificationListResponse, error) {
	items, err := uc.repo.ListByUser(ctx, userID, ListLimit)
	if err != nil {
		return nil, domain.StoreError("list notifications", err)
	}
	resp := &dto.NotificationListResponse{Items: make([]dto.NotificationResponse, 0, len(items))}
	for _, n := range items {
		if !n.Read {
			resp.Unread++
		}
		resp.Items = append(resp.Items, dto.NotificationResponse{
			ID:        n.ID,
			Title:     n.Title,
			Message:   n.Message,
			Type:      n.Type,
			Priority:  n.Priority,
			Read:      n.Read,
			CreatedAt: n.CreatedAt,
		})
	}
	return resp, nil
}

// MarkRead marca una notificación propia como leída.
func (uc *UseCase) MarkRead(ctx context.Context, userID, id string) error {
	if err := uc.repo.MarkRead(ctx, userID, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return err
		}
		return domain.StoreError("mark read", err)
	}
	return nil
}

// MarkAllRead marca todas las notificaciones del usuario como leídas.
func (uc *UseCase) MarkAllRead(ctx context.Context, userID string) error {
	if err := uc.repo.MarkAllRead(ctx, userID); err != nil {
		return domain.StoreError("mark all read", err)
	}
	return nil
}

func displayName(rec *entity.QuantityRecord) string {
	if rec.ProductName != "" {
		return rec.ProductName
	}
	return rec.SKU
}
