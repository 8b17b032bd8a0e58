package store

import (
	"context"
	"fmt"

	"github.com/Macrojordan/mission-control-kanban/internal/model"
)

// LogActivity appends an entry to the activity log. Logging failures are
// returned but callers treat them as non-fatal: an action that succeeded
// should not fail because its audit entry did.
func (s *Store) LogActivity(ctx context.Context, taskID *int64, action, description, performedBy string) error {
	_, err := s.exec(ctx, `INSERT INTO activity_log (task_id, action, description, performed_by, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		taskID, action, description, model.Actor(performedBy), nowFunc())
	if err != nil {
		return fmt.Errorf("log activity: %w", err)
	}
	return nil
}

// ListActivity returns activity entries enriched with task titles, newest
// first.
func (s *Store) ListActivity(ctx context.Context, limit, offset int) ([]model.Activity, error) {
	rows, err := s.query(ctx, `SELECT a.id, a.task_id, a.action, a.description, a.performed_by, a.created_at, t.title
		FROM activity_log a
		LEFT JOIN tasks t ON a.task_id = t.id
		ORDER BY a.created_at DESC, a.id DESC
		LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list activity: %w", err)
	}
	defer rows.Close()

	activity := []model.Activity{}
	for rows.Next() {
		var a model.Activity
		if err := rows.Scan(&a.ID, &a.TaskID, &a.Action, &a.Description, &a.PerformedBy, &a.CreatedAt, &a.TaskTitle); err != nil {
			return nil, err
		}
		activity = append(activity, a)
	}
	return activity, rows.Err()
}

// taskActivity returns the history of one task, newest first.
func (s *Store) taskActivity(ctx context.Context, taskID int64) ([]model.Activity, error) {
	rows, err := s.query(ctx, `SELECT id, task_id, action, description, performed_by, created_at
		FROM activity_log WHERE task_id = ? ORDER BY created_at DESC, id DESC`, taskID)
	if err != nil {
		return nil, fmt.Errorf("task activity: %w", err)
	}
	defer rows.Close()

	activity := []model.Activity{}
	for rows.Next() {
		var a model.Activity
		if err := rows.Scan(&a.ID, &a.TaskID, &a.Action, &a.Description, &a.PerformedBy, &a.CreatedAt); err != nil {
			return nil, err
		}
		activity = append(activity, a)
	}
	return activity, rows.Err()
}
