package postgres

import (
	"context"

	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

var _ repository.NotificationRepository = (*NotificationRepo)(nil)

// NotificationRepo notificaciones por usuario sobre PostgreSQL.
type NotificationRepo struct {
	q Querier
}

// NewNotificationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewNotificationRepository(q Querier) *NotificationRepo {
	return &NotificationRepo{q: q}
}

func (r *NotificationRepo) Create(ctx context.Context, n *entity.Notification) error {
	query := `
		INSERT INTO notifications (id, user_id, title, message, type, priority, read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query, n.ID, n.UserID, n.Title, n.Message, n.Type, n.Priority, n.Read, n.CreatedAt)
	if err != nil {
		return storeError("insert notification", err)
	}
	return nil
}

// ListByUser últimas limit notificaciones del usuario.
func (r *NotificationRepo) ListByUser(ctx context.Context, userID string, limit int) ([]*entity.Notification, error) {
	query := `
		SELECT id, user_id, title, message, type, priority, read, created_at
		FROM notifications WHERE user_id = $1
		ORDER BY created_at DESC, id LIMIT NULLIF($2::bigint, 0)`
	rows, err := r.q.Query(ctx, query, userID, limitArg(limit))
	if err != nil {
		return nil, storeError("list notifications", err)
	}
	defer rows.Close()
	var list []*entity.Notification
	for rows.Next() {
		var n entity.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Title, &n.Message, &n.Type, &n.Priority, &n.Read, &n.CreatedAt); err != nil {
			return nil, storeError("scan notification", err)
		}
		list = append(list, &n)
	}
	return list, rows.Err()
}

// MarkRead solo afecta notificaciones del propio usuario.
func (r *NotificationRepo) MarkRead(ctx context.Context, userID, id string) error {
	cmd, err := r.q.Exec(ctx, `UPDATE notifications SET read = TRUE WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return storeError("mark notification read", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *NotificationRepo) MarkAllRead(ctx context.Context, userID string) error {
	_, err := r.q.Exec(ctx, `UPDATE notifications SET read = TRUE WHERE user_id = $1 AND NOT read`, userID)
	if err != nil {
		return storeError("mark all notifications read", err)
	}
	return nil
}
