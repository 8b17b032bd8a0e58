package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Macrojordan/mission-control-kanban/internal/model"
)

const projectColumns = `p.id, p.name, p.description, p.color, p.is_fridge, p.created_at, p.updated_at`

// ListProjects returns all projects with their task counts, newest first.
func (s *Store) ListProjects(ctx context.Context) ([]model.Project, error) {
	rows, err := s.query(ctx, `SELECT `+projectColumns+`, COUNT(t.id)
		FROM projects p
		LEFT JOIN tasks t ON p.id = t.project_id
		GROUP BY p.id, p.name, p.description, p.color, p.is_fridge, p.created_at, p.updated_at
		ORDER BY p.created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	projects := []model.Project{}
	for rows.Next() {
		var p model.Project
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Color, &p.IsFridge,
			&p.CreatedAt, &p.UpdatedAt, &p.TaskCount); err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// GetProject returns one project by id.
func (s *Store) GetProject(ctx context.Context, id int64) (*model.Project, error) {
	var p model.Project
	err := s.queryRow(ctx, `SELECT `+projectColumns+` FROM projects p WHERE p.id = ?`, id).
		Scan(&p.ID, &p.Name, &p.Description, &p.Color, &p.IsFridge, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get project %d: %w", id, err)
	}
	return &p, nil
}

// CreateProject inserts a project and returns it with its assigned id.
func (s *Store) CreateProject(ctx context.Context, in model.ProjectInput) (*model.Project, error) {
	p := model.NewProject(in, 0, nowFunc())

	var id int64
	err := s.queryRow(ctx, `INSERT INTO projects (name, description, color, is_fridge, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?) RETURNING id`,
		p.Name, p.Description, p.Color, p.IsFridge, p.CreatedAt, p.UpdatedAt).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}

	p.ID = id
	return &p, nil
}

// SaveProject writes every mutable column of p.
func (s *Store) SaveProject(ctx context.Context, p *model.Project) error {
	_, err := s.exec(ctx, `UPDATE projects SET name = ?, description = ?, color = ?, is_fridge = ?, updated_at = ?
		WHERE id = ?`,
		p.Name, p.Description, p.Color, p.IsFridge, p.UpdatedAt, p.ID)
	if err != nil {
		return fmt.Errorf("save project %d: %w", p.ID, err)
	}
	return nil
}

// DeleteProject removes a project. The default project is protected by the
// handler, not here.
func (s *Store) DeleteProject(ctx context.Context, id int64) error {
	res, err := s.exec(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete project %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
