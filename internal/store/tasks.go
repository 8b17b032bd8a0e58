package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Macrojordan/mission-control-kanban/internal/model"
)

const taskColumns = `t.id, t.title, t.description, t.status, t.priority, t.project_id,
	t.assigned_to, t.tags, t.due_date, t.notion_link, t.notion_page_id,
	t.estimated_hours, t.actual_hours, t.randy_status, t.created_at, t.updated_at, t.completed_at`

func scanTask(row interface{ Scan(...any) error }, withProject bool) (model.Task, error) {
	var (
		t       model.Task
		tagsRaw string
	)
	dest := []any{
		&t.ID, &t.Title, &t.Description, &t.Status, &t.Priority, &t.ProjectID,
		&t.AssignedTo, &tagsRaw, &t.DueDate, &t.NotionLink, &t.NotionPageID,
		&t.EstimatedHours, &t.ActualHours, &t.RandyStatus, &t.CreatedAt, &t.UpdatedAt, &t.CompletedAt,
	}
	if withProject {
		var name, color sql.NullString
		dest = append(dest, &name, &color)
		if err := row.Scan(dest...); err != nil {
			return t, err
		}
		t.ProjectName = name.String
		t.ProjectColor = color.String
	} else if err := row.Scan(dest...); err != nil {
		return t, err
	}

	t.Tags = model.ParseTags(tagsRaw)
	model.NormalizeTask(&t)
	return t, nil
}

// ListTasks returns tasks matching the filter, newest first, with project
// name and color joined in. The WHERE clause mirrors model.TaskFilter.Matches;
// only the search term is applied in Go.
func (s *Store) ListTasks(ctx context.Context, f model.TaskFilter) ([]model.Task, error) {
	query := `SELECT ` + taskColumns + `, p.name, p.color
		FROM tasks t
		LEFT JOIN projects p ON t.project_id = p.id
		WHERE 1=1`
	var args []any

	if f.Status != "" {
		query += ` AND t.status = ?`
		args = append(args, f.Status)
	}
	if f.ProjectID != 0 {
		query += ` AND t.project_id = ?`
		args = append(args, f.ProjectID)
	}
	if f.Priority != "" {
		query += ` AND t.priority = ?`
		args = append(args, f.Priority)
	}
	if f.AssignedTo != "" {
		query += ` AND t.assigned_to = ?`
		args = append(args, f.AssignedTo)
	}
	if f.Tag != "" {
		// Tags are stored as a JSON array; matching the quoted element gives
		// exact membership, not substring.
		tagJSON, _ := json.Marshal(f.Tag)
		query += ` AND t.tags LIKE ?`
		args = append(args, "%"+string(tagJSON)+"%")
	}
	query += ` ORDER BY t.created_at DESC`

	rows, err := s.query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	tasks := []model.Task{}
	for rows.Next() {
		t, err := scanTask(rows, true)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// SQLite's LOWER() folds ASCII only, so the case-insensitive search runs
	// in Go with the same folding as the in-memory predicate.
	if f.Search != "" {
		search := model.TaskFilter{Search: f.Search}
		filtered := tasks[:0]
		for _, t := range tasks {
			if search.Matches(t) {
				filtered = append(filtered, t)
			}
		}
		tasks = filtered
	}
	return tasks, nil
}

// GetTask returns one task by id.
func (s *Store) GetTask(ctx context.Context, id int64) (*model.Task, error) {
	row := s.queryRow(ctx, `SELECT `+taskColumns+`, p.name, p.color
		FROM tasks t
		LEFT JOIN projects p ON t.project_id = p.id
		WHERE t.id = ?`, id)

	t, err := scanTask(row, true)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get task %d: %w", id, err)
	}
	return &t, nil
}

// GetTaskDetail returns a task with comments (oldest first) and activity
// history (newest first) embedded.
func (s *Store) GetTaskDetail(ctx context.Context, id int64) (*model.TaskDetail, error) {
	task, err := s.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}

	comments, err := s.ListComments(ctx, id)
	if err != nil {
		return nil, err
	}

	history, err := s.taskActivity(ctx, id)
	if err != nil {
		return nil, err
	}

	return &model.TaskDetail{Task: *task, Comments: comments, History: history}, nil
}

// CreateTask inserts a task with the canonical defaults applied and returns
// it with its assigned id.
func (s *Store) CreateTask(ctx context.Context, in model.TaskInput) (*model.Task, error) {
	t := model.NewTask(in, 0, nowFunc())
	tags, _ := json.Marshal(t.Tags)

	var id int64
	err := s.queryRow(ctx, `INSERT INTO tasks
		(title, description, status, priority, project_id, assigned_to, tags, due_date,
		 notion_link, notion_page_id, estimated_hours, actual_hours, randy_status,
		 created_at, updated_at, completed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id`,
		t.Title, t.Description, t.Status, t.Priority, t.ProjectID, t.AssignedTo, string(tags),
		t.DueDate, t.NotionLink, t.NotionPageID, t.EstimatedHours, t.ActualHours, t.RandyStatus,
		t.CreatedAt, t.UpdatedAt, t.CompletedAt).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}

	t.ID = id
	return &t, nil
}

// SaveTask writes every mutable column of t.
func (s *Store) SaveTask(ctx context.Context, t *model.Task) error {
	tags, _ := json.Marshal(t.Tags)
	_, err := s.exec(ctx, `UPDATE tasks SET
		title = ?, description = ?, status = ?, priority = ?, project_id = ?,
		assigned_to = ?, tags = ?, due_date = ?, notion_link = ?, notion_page_id = ?,
		estimated_hours = ?, actual_hours = ?, randy_status = ?, updated_at = ?, completed_at = ?
		WHERE id = ?`,
		t.Title, t.Description, t.Status, t.Priority, t.ProjectID,
		t.AssignedTo, string(tags), t.DueDate, t.NotionLink, t.NotionPageID,
		t.EstimatedHours, t.ActualHours, t.RandyStatus, t.UpdatedAt, t.CompletedAt, t.ID)
	if err != nil {
		return fmt.Errorf("save task %d: %w", t.ID, err)
	}
	return nil
}

// DeleteTask removes a task; comments cascade.
func (s *Store) DeleteTask(ctx context.Context, id int64) error {
	res, err := s.exec(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete task %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// RandyTasks returns the agent queue: priority high→medium→low, then most
// recent first.
func (s *Store) RandyTasks(ctx context.Context, status string) ([]model.Task, error) {
	query := `SELECT ` + taskColumns + `, p.name, p.color
		FROM tasks t
		LEFT JOIN projects p ON t.project_id = p.id
		WHERE t.assigned_to = ?`
	args := []any{model.Randy}

	if status != "" {
		query += ` AND t.status = ?`
		args = append(args, status)
	}

	query += ` ORDER BY
		CASE t.priority WHEN 'high' THEN 1 WHEN 'medium' THEN 2 WHEN 'low' THEN 3 END,
		t.created_at DESC`

	rows, err := s.query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list randy tasks: %w", err)
	}
	defer rows.Close()

	tasks := []model.Task{}
	for rows.Next() {
		t, err := scanTask(rows, true)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}
