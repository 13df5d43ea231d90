package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/abhey8/Hospital-OPD/internal/entity"
)

type notificationRepository struct {
	db *sql.DB
}

func NewNotificationRepository(db *sql.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, notification *entity.Notification) error {
	var data []byte
	if notification.Data != nil {
		var err error
		data, err = json.Marshal(notification.Data)
		if err != nil {
			return fmt.Errorf("failed to marshal notification data: %v", err)
		}
	}

	query := `
		INSERT INTO notifications (user_id, type, title, body, data, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5, FALSE, $6)
		RETURNING id
	`

	now := time.Now()
	err := r.db.QueryRowContext(ctx, query,
		notification.UserID,
		notification.Type,
		notification.Title,
		notification.Body,
		data,
		now,
	).Scan(&notification.ID)

	if err != nil {
		return fmt.Errorf("failed to create notification: %v", err)
	}

	notification.IsRead = false
	notification.CreatedAt = now
	return nil
}

func (r *notificationRepository) GetByUser(ctx context.Context, userID int64, limit int) ([]*entity.Notification, error) {
	query := `
		SELECT id, user_id, type, title, body, data, is_read, created_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get notifications: %v", err)
	}
	defer rows.Close()

	var notifications []*entity.Notification
	for rows.Next() {
		var (
			n    entity.Notification
			data []byte
		)
		if err := rows.Scan(&n.ID, &n.UserID, &n.Type, &n.Title, &n.Body, &data, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan notification: %v", err)
		}
		if len(data) > 0 {
			if err := json.Unmarshal(data, &n.Data); err != nil {
				return nil, fmt.Errorf("failed to unmarshal notification data: %v", err)
			}
		}
		notifications = append(notifications, &n)
	}

	return notifications, rows.Err()
}

func (r *notificationRepository) CountUnreadByUser(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND is_read = FALSE`,
		userID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %v", err)
	}
	return count, nil
}

// MarkRead is idempotent: marking an already-read notification again still
// matches the row and succeeds.
func (r *notificationRepository) MarkRead(ctx context.Context, id, userID int64) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE notifications SET is_read = TRUE WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %v", err)
	}
	return checkAffected(result, entity.ErrNotificationNotFound)
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, userID int64) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE notifications SET is_read = TRUE WHERE user_id = $1 AND is_read = FALSE`,
		userID,
	)
	if err != nil {
		return fmt.Errorf("failed to mark notifications read: %v", err)
	}
	return nil
}

func (r *notificationRepository) Delete(ctx context.Context, id, userID int64) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM notifications WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete notification: %v", err)
	}
	return checkAffected(result, entity.ErrNotificationNotFound)
}

func (r *notificationRepository) GetStats(ctx context.Context) (*entity.NotificationStats, error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE is_read = FALSE),
			COUNT(*) FILTER (WHERE type = 'APPOINTMENT_REMINDER')
		FROM notifications
	`

	var stats entity.NotificationStats
	if err := r.db.QueryRowContext(ctx, query).Scan(&stats.Total, &stats.Unread, &stats.Reminders); err != nil {
		return nil, fmt.Errorf("failed to get notification stats: %v", err)
	}
	return &stats, nil
}
