package server

import (
	"context"
	"encoding/json"

	"github.com/Macrojordan/mission-control-kanban/internal/model"
	"github.com/Macrojordan/mission-control-kanban/internal/store"
)

// MockStorage implements Storage for testing
type MockStorage struct {
	ListTasksFunc     func(ctx context.Context, f model.TaskFilter) ([]model.Task, error)
	GetTaskFunc       func(ctx context.Context, id int64) (*model.Task, error)
	GetTaskDetailFunc func(ctx context.Context, id int64) (*model.TaskDetail, error)
	CreateTaskFunc    func(ctx context.Context, in model.TaskInput) (*model.Task, error)
	SaveTaskFunc      func(ctx context.Context, t *model.Task) error
	DeleteTaskFunc    func(ctx context.Context, id int64) error
	RandyTasksFunc    func(ctx context.Context, status string) ([]model.Task, error)
	RandyStatsFunc    func(ctx context.Context) (*model.RandyStats, error)
	DashboardFunc     func(ctx context.Context) (*model.Dashboard, error)

	ListProjectsFunc  func(ctx context.Context) ([]model.Project, error)
	GetProjectFunc    func(ctx context.Context, id int64) (*model.Project, error)
	CreateProjectFunc func(ctx context.Context, in model.ProjectInput) (*model.Project, error)
	SaveProjectFunc   func(ctx context.Context, p *model.Project) error
	DeleteProjectFunc func(ctx context.Context, id int64) error

	ListCommentsFunc  func(ctx context.Context, taskID int64) ([]model.Comment, error)
	CreateCommentFunc func(ctx context.Context, taskID int64, author, content string) (*model.Comment, error)
	DeleteCommentFunc func(ctx context.Context, id int64) error

	LogActivityFunc  func(ctx context.Context, taskID *int64, action, description, performedBy string) error
	ListActivityFunc func(ctx context.Context, limit, offset int) ([]model.Activity, error)

	NotifyRandyFunc          func(ctx context.Context, taskID int64, typ, message string) error
	ListNotificationsFunc    func(ctx context.Context, unreadOnly bool) ([]model.Notification, error)
	MarkNotificationReadFunc func(ctx context.Context, id int64) error

	ListTemplatesFunc  func(ctx context.Context) ([]model.Template, error)
	CreateTemplateFunc func(ctx context.Context, name string, data json.RawMessage) (*model.Template, error)
	UpdateTemplateFunc func(ctx context.Context, id int64, name *string, data json.RawMessage) (*model.Template, error)
	DeleteTemplateFunc func(ctx context.Context, id int64) error
}

func (m *MockStorage) ListTasks(ctx context.Context, f model.TaskFilter) ([]model.Task, error) {
	if m.ListTasksFunc != nil {
		return m.ListTasksFunc(ctx, f)
	}
	return nil, nil
}

func (m *MockStorage) GetTask(ctx context.Context, id int64) (*model.Task, error) {
	if m.GetTaskFunc != nil {
		return m.GetTaskFunc(ctx, id)
	}
	return nil, store.ErrNotFound
}

func (m *MockStorage) GetTaskDetail(ctx context.Context, id int64) (*model.TaskDetail, error) {
	if m.GetTaskDetailFunc != nil {
		return m.GetTaskDetailFunc(ctx, id)
	}
	return nil, store.ErrNotFound
}

func (m *MockStorage) CreateTask(ctx context.Context, in model.TaskInput) (*model.Task, error) {
	if m.CreateTaskFunc != nil {
		return m.CreateTaskFunc(ctx, in)
	}
	return &model.Task{}, nil
}

func (m *MockStorage) SaveTask(ctx context.Context, t *model.Task) error {
	if m.SaveTaskFunc != nil {
		return m.SaveTaskFunc(ctx, t)
	}
	return nil
}

func (m *MockStorage) DeleteTask(ctx context.Context, id int64) error {
	if m.DeleteTaskFunc != nil {
		return m.DeleteTaskFunc(ctx, id)
	}
	return nil
}

func (m *MockStorage) RandyTasks(ctx context.Context, status string) ([]model.Task, error) {
	if m.RandyTasksFunc != nil {
		return m.RandyTasksFunc(ctx, status)
	}
	return nil, nil
}

func (m *MockStorage) RandyStats(ctx context.Context) (*model.RandyStats, error) {
	if m.RandyStatsFunc != nil {
		return m.RandyStatsFunc(ctx)
	}
	return &model.RandyStats{}, nil
}

func (m *MockStorage) Dashboard(ctx context.Context) (*model.Dashboard, error) {
	if m.DashboardFunc != nil {
		return m.DashboardFunc(ctx)
	}
	return &model.Dashboard{}, nil
}

func (m *MockStorage) ListProjects(ctx context.Context) ([]model.Project, error) {
	if m.ListProjectsFunc != nil {
		return m.ListProjectsFunc(ctx)
	}
	return nil, nil
}

func (m *MockStorage) GetProject(ctx context.Context, id int64) (*model.Project, error) {
	if m.GetProjectFunc != nil {
		return m.GetProjectFunc(ctx, id)
	}
	return nil, store.ErrNotFound
}

func (m *MockStorage) CreateProject(ctx context.Context, in model.ProjectInput) (*model.Project, error) {
	if m.CreateProjectFunc != nil {
		return m.CreateProjectFunc(ctx, in)
	}
	return &model.Project{}, nil
}

func (m *MockStorage) SaveProject(ctx context.Context, p *model.Project) error {
	if m.SaveProjectFunc != nil {
		return m.SaveProjectFunc(ctx, p)
	}
	return nil
}

func (m *MockStorage) DeleteProject(ctx context.Context, id int64) error {
	if m.DeleteProjectFunc != nil {
		return m.DeleteProjectFunc(ctx, id)
	}
	return nil
}

func (m *MockStorage) ListComments(ctx context.Context, taskID int64) ([]model.Comment, error) {
	if m.ListCommentsFunc != nil {
		return m.ListCommentsFunc(ctx, taskID)
	}
	return nil, nil
}

func (m *MockStorage) CreateComment(ctx context.Context, taskID int64, author, content string) (*model.Comment, error) {
	if m.CreateCommentFunc != nil {
		return m.CreateCommentFunc(ctx, taskID, author, content)
	}
	return &model.Comment{}, nil
}

func (m *MockStorage) DeleteComment(ctx context.Context, id int64) error {
	if m.DeleteCommentFunc != nil {
		return m.DeleteCommentFunc(ctx, id)
	}
	return nil
}

func (m *MockStorage) LogActivity(ctx context.Context, taskID *int64, action, description, performedBy string) error {
	if m.LogActivityFunc != nil {
		return m.LogActivityFunc(ctx, taskID, action, description, performedBy)
	}
	return nil
}

func (m *MockStorage) ListActivity(ctx context.Context, limit, offset int) ([]model.Activity, error) {
	if m.ListActivityFunc != nil {
		return m.ListActivityFunc(ctx, limit, offset)
	}
	return nil, nil
}

func (m *MockStorage) NotifyRandy(ctx context.Context, taskID int64, typ, message string) error {
	if m.NotifyRandyFunc != nil {
		return m.NotifyRandyFunc(ctx, taskID, typ, message)
	}
	return nil
}

func (m *MockStorage) ListNotifications(ctx context.Context, unreadOnly bool) ([]model.Notification, error) {
	if m.ListNotificationsFunc != nil {
		return m.ListNotificationsFunc(ctx, unreadOnly)
	}
	return nil, nil
}

func (m *MockStorage) MarkNotificationRead(ctx context.Context, id int64) error {
	if m.MarkNotificationReadFunc != nil {
		return m.MarkNotificationReadFunc(ctx, id)
	}
	return nil
}

func (m *MockStorage) ListTemplates(ctx context.Context) ([]model.Template, error) {
	if m.ListTemplatesFunc != nil {
		return m.ListTemplatesFunc(ctx)
	}
	return nil, nil
}

func (m *MockStorage) CreateTemplate(ctx context.Context, name string, data json.RawMessage) (*model.Template, error) {
	if m.CreateTemplateFunc != nil {
		return m.CreateTemplateFunc(ctx, name, data)
	}
	return &model.Template{}, nil
}

func (m *MockStorage) UpdateTemplate(ctx context.Context, id int64, name *string, data json.RawMessage) (*model.Template, error) {
	if m.UpdateTemplateFunc != nil {
		return m.UpdateTemplateFunc(ctx, id, name, data)
	}
	return nil, store.ErrNotFound
}

func (m *MockStorage) DeleteTemplate(ctx context.Context, id int64) error {
	if m.DeleteTemplateFunc != nil {
		return m.DeleteTemplateFunc(ctx, id)
	}
	return nil
}
