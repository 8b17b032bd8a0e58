package store

import (
	"context"
	"fmt"

	"github.com/Macrojordan/mission-control-kanban/internal/model"
)

// NotifyRandy inserts an agent-directed notification.
func (s *Store) NotifyRandy(ctx context.Context, taskID int64, typ, message string) error {
	_, err := s.exec(ctx, `INSERT INTO randy_notifications (task_id, type, message, read, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		taskID, typ, message, false, nowFunc())
	if err != nil {
		return fmt.Errorf("notify randy: %w", err)
	}
	return nil
}

// ListNotifications returns the agent's notifications, newest first.
func (s *Store) ListNotifications(ctx context.Context, unreadOnly bool) ([]model.Notification, error) {
	query := `SELECT id, task_id, type, message, read, created_at FROM randy_notifications`
	var args []any
	if unreadOnly {
		query += ` WHERE read = ?`
		args = append(args, false)
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := s.query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()

	notifications := []model.Notification{}
	for rows.Next() {
		var n model.Notification
		if err := rows.Scan(&n.ID, &n.TaskID, &n.Type, &n.Message, &n.Read, &n.CreatedAt); err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

// MarkNotificationRead flags one notification as read.
func (s *Store) MarkNotificationRead(ctx context.Context, id int64) error {
	if _, err := s.exec(ctx, `UPDATE randy_notifications SET read = ? WHERE id = ?`, true, id); err != nil {
		return fmt.Errorf("mark notification %d read: %w", id, err)
	}
	return nil
}
