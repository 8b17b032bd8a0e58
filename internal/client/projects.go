package client

import (
	"context"
	"fmt"

	"github.com/Macrojordan/mission-control-kanban/internal/model"
)

// ListProjects fetches all projects, mirroring the result wholesale.
func (e *Engine) ListProjects(ctx context.Context) ([]model.Project, error) {
	return call(e,
		func() ([]model.Project, error) {
			var projects []model.Project
			if err := e.remote.request(ctx, "GET", "/api/projects", requestOptions{}, &projects); err != nil {
				return nil, err
			}
			e.local.SetProjects(projects)
			for _, p := range projects {
				e.local.BumpProjectID(p.ID)
			}
			return projects, nil
		},
		func() ([]model.Project, error) {
			return e.local.Projects(), nil
		},
	)
}

// CreateProject creates a project, assigning the next local ID offline.
func (e *Engine) CreateProject(ctx context.Context, in model.ProjectInput) (*model.Project, error) {
	return call(e,
		func() (*model.Project, error) {
			var project model.Project
			if err := e.remote.request(ctx, "POST", "/api/projects", requestOptions{body: in}, &project); err != nil {
				return nil, err
			}
			e.local.SetProjects(append([]model.Project{project}, e.local.Projects()...))
			e.local.BumpProjectID(project.ID)
			return &project, nil
		},
		func() (*model.Project, error) {
			project := model.NewProject(in, e.local.NextProjectID(), e.now())
			e.local.SetProjects(append([]model.Project{project}, e.local.Projects()...))
			return &project, nil
		},
	)
}

// UpdateProject shallow-merges name/description/color into the project.
func (e *Engine) UpdateProject(ctx context.Context, id int64, in model.ProjectInput) (*model.Project, error) {
	return call(e,
		func() (*model.Project, error) {
			var project model.Project
			if err := e.remote.request(ctx, "PUT", fmt.Sprintf("/api/projects/%d", id), requestOptions{body: in}, &project); err != nil {
				return nil, err
			}
			e.patchProjectMirror(project)
			return &project, nil
		},
		func() (*model.Project, error) {
			projects := e.local.Projects()
			for i := range projects {
				if projects[i].ID != id {
					continue
				}
				projects[i].Name = in.Name
				projects[i].Description = in.Description
				if in.Color != "" {
					projects[i].Color = in.Color
				}
				projects[i].UpdatedAt = e.now()
				e.local.SetProjects(projects)
				return &projects[i], nil
			}
			return nil, ErrNotFound
		},
	)
}

// SetProjectFridge archives or unarchives a project.
func (e *Engine) SetProjectFridge(ctx context.Context, id int64, isFridge bool) (*model.Project, error) {
	body := map[string]bool{"is_fridge": isFridge}
	return call(e,
		func() (*model.Project, error) {
			var project model.Project
			if err := e.remote.request(ctx, "PUT", fmt.Sprintf("/api/projects/%d/fridge", id), requestOptions{body: body}, &project); err != nil {
				return nil, err
			}
			e.patchProjectMirror(project)
			return &project, nil
		},
		func() (*model.Project, error) {
			projects := e.local.Projects()
			for i := range projects {
				if projects[i].ID != id {
					continue
				}
				projects[i].IsFridge = isFridge
				projects[i].UpdatedAt = e.now()
				e.local.SetProjects(projects)
				return &projects[i], nil
			}
			return nil, ErrNotFound
		},
	)
}

// DeleteProject removes a project.
func (e *Engine) DeleteProject(ctx context.Context, id int64) error {
	_, err := call(e,
		func() (struct{}, error) {
			err := e.remote.request(ctx, "DELETE", fmt.Sprintf("/api/projects/%d", id), requestOptions{}, nil)
			if err != nil {
				return struct{}{}, err
			}
			e.removeProjectMirror(id)
			return struct{}{}, nil
		},
		func() (struct{}, error) {
			e.removeProjectMirror(id)
			return struct{}{}, nil
		},
	)
	return err
}

func (e *Engine) patchProjectMirror(project model.Project) {
	projects := e.local.Projects()
	for i := range projects {
		if projects[i].ID == project.ID {
			projects[i] = project
			e.local.SetProjects(projects)
			return
		}
	}
	e.local.SetProjects(append([]model.Project{project}, projects...))
}

func (e *Engine) removeProjectMirror(id int64) {
	projects := e.local.Projects()
	for i := range projects {
		if projects[i].ID == id {
			e.local.SetProjects(append(projects[:i], projects[i+1:]...))
			return
		}
	}
}
