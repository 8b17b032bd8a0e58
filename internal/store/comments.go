package store

import (
	"context"
	"fmt"

	"github.com/Macrojordan/mission-control-kanban/internal/model"
)

// ListComments returns a task's comments, oldest first.
func (s *Store) ListComments(ctx context.Context, taskID int64) ([]model.Comment, error) {
	rows, err := s.query(ctx, `SELECT id, task_id, author, content, created_at
		FROM comments WHERE task_id = ? ORDER BY created_at ASC`, taskID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	comments := []model.Comment{}
	for rows.Next() {
		var c model.Comment
		if err := rows.Scan(&c.ID, &c.TaskID, &c.Author, &c.Content, &c.CreatedAt); err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

// CreateComment inserts a comment and returns it with its assigned id.
func (s *Store) CreateComment(ctx context.Context, taskID int64, author, content string) (*model.Comment, error) {
	c := model.Comment{
		TaskID:    taskID,
		Author:    model.Actor(author),
		Content:   content,
		CreatedAt: nowFunc(),
	}

	err := s.queryRow(ctx, `INSERT INTO comments (task_id, author, content, created_at)
		VALUES (?, ?, ?, ?) RETURNING id`,
		c.TaskID, c.Author, c.Content, c.CreatedAt).Scan(&c.ID)
	if err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return &c, nil
}

// DeleteComment removes a comment.
func (s *Store) DeleteComment(ctx context.Context, id int64) error {
	if _, err := s.exec(ctx, `DELETE FROM comments WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete comment %d: %w", id, err)
	}
	return nil
}
