package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Macrojordan/mission-control-kanban/internal/model"
)

// ListTemplates returns all templates, newest first.
func (s *Store) ListTemplates(ctx context.Context) ([]model.Template, error) {
	rows, err := s.query(ctx, `SELECT id, name, data, created_at, updated_at
		FROM templates ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	defer rows.Close()

	templates := []model.Template{}
	for rows.Next() {
		var (
			t   model.Template
			raw string
		)
		if err := rows.Scan(&t.ID, &t.Name, &raw, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		t.Data = json.RawMessage(raw)
		templates = append(templates, t)
	}
	return templates, rows.Err()
}

// GetTemplate returns one template by id.
func (s *Store) GetTemplate(ctx context.Context, id int64) (*model.Template, error) {
	var (
		t   model.Template
		raw string
	)
	err := s.queryRow(ctx, `SELECT id, name, data, created_at, updated_at FROM templates WHERE id = ?`, id).
		Scan(&t.ID, &t.Name, &raw, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get template %d: %w", id, err)
	}
	t.Data = json.RawMessage(raw)
	return &t, nil
}

// CreateTemplate inserts a template. Data is stored as opaque JSON.
func (s *Store) CreateTemplate(ctx context.Context, name string, data json.RawMessage) (*model.Template, error) {
	now := nowFunc()
	t := model.Template{Name: name, Data: data, CreatedAt: now, UpdatedAt: now}

	err := s.queryRow(ctx, `INSERT INTO templates (name, data, created_at, updated_at)
		VALUES (?, ?, ?, ?) RETURNING id`,
		t.Name, string(t.Data), t.CreatedAt, t.UpdatedAt).Scan(&t.ID)
	if err != nil {
		return nil, fmt.Errorf("create template: %w", err)
	}
	return &t, nil
}

// UpdateTemplate updates the provided fields of a template.
func (s *Store) UpdateTemplate(ctx context.Context, id int64, name *string, data json.RawMessage) (*model.Template, error) {
	t, err := s.GetTemplate(ctx, id)
	if err != nil {
		return nil, err
	}

	if name != nil {
		t.Name = *name
	}
	if data != nil {
		t.Data = data
	}
	t.UpdatedAt = nowFunc()

	_, err = s.exec(ctx, `UPDATE templates SET name = ?, data = ?, updated_at = ? WHERE id = ?`,
		t.Name, string(t.Data), t.UpdatedAt, t.ID)
	if err != nil {
		return nil, fmt.Errorf("update template %d: %w", id, err)
	}
	return t, nil
}

// DeleteTemplate removes a template.
func (s *Store) DeleteTemplate(ctx context.Context, id int64) error {
	res, err := s.exec(ctx, `DELETE FROM templates WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete template %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
