package client

import (
	"context"
	"fmt"

	"github.com/Macrojordan/mission-control-kanban/internal/model"
)

// ListTasks fetches tasks matching the filter. A successful unfiltered fetch
// replaces the local mirror wholesale, so entities deleted server-side by
// another client do not linger; filtered fetches leave the mirror alone.
func (e *Engine) ListTasks(ctx context.Context, f model.TaskFilter) ([]model.Task, error) {
	path := "/api/tasks"
	if q := f.Query(); len(q) > 0 {
		path += "?" + q.Encode()
	}

	return call(e,
		func() ([]model.Task, error) {
			var tasks []model.Task
			if err := e.remote.request(ctx, "GET", path, requestOptions{}, &tasks); err != nil {
				return nil, err
			}
			for i := range tasks {
				model.NormalizeTask(&tasks[i])
			}
			if f.IsZero() {
				e.local.SetTasks(tasks)
				for _, t := range tasks {
					e.local.BumpTaskID(t.ID)
				}
			}
			return tasks, nil
		},
		func() ([]model.Task, error) {
			return model.FilterTasks(e.local.Tasks(), f), nil
		},
	)
}

// GetTask fetches one task with its comments and history embedded.
func (e *Engine) GetTask(ctx context.Context, id int64) (*model.TaskDetail, error) {
	return call(e,
		func() (*model.TaskDetail, error) {
			var detail model.TaskDetail
			if err := e.remote.request(ctx, "GET", fmt.Sprintf("/api/tasks/%d", id), requestOptions{}, &detail); err != nil {
				return nil, err
			}
			model.NormalizeTask(&detail.Task)
			return &detail, nil
		},
		func() (*model.TaskDetail, error) {
			for _, t := range e.local.Tasks() {
				if t.ID != id {
					continue
				}
				detail := &model.TaskDetail{Task: t}
				for _, c := range e.local.Comments() {
					if c.TaskID == id {
						detail.Comments = append(detail.Comments, c)
					}
				}
				for _, a := range e.local.Activity() {
					if a.TaskID != nil && *a.TaskID == id {
						detail.History = append(detail.History, a)
					}
				}
				return detail, nil
			}
			return nil, ErrNotFound
		},
	)
}

// CreateTask creates a task. Offline, the mirror assigns the next local ID,
// applies the canonical defaults, and records the created activity entry
// exactly as the server would.
func (e *Engine) CreateTask(ctx context.Context, in model.TaskInput) (*model.Task, error) {
	return call(e,
		func() (*model.Task, error) {
			var task model.Task
			if err := e.remote.request(ctx, "POST", "/api/tasks", requestOptions{body: in}, &task); err != nil {
				return nil, err
			}
			model.NormalizeTask(&task)
			e.local.SetTasks(append([]model.Task{task}, e.local.Tasks()...))
			e.local.BumpTaskID(task.ID)
			return &task, nil
		},
		func() (*model.Task, error) {
			now := e.now()
			task := model.NewTask(in, e.local.NextTaskID(), now)
			e.local.SetTasks(append([]model.Task{task}, e.local.Tasks()...))
			e.local.LogActivity(task.ID, model.ActionCreated, model.CreatedMessage(task.Title), in.AssignedTo, now)
			return &task, nil
		},
	)
}

// UpdateTask shallow-merges the provided fields. Offline, the merge and the
// completed_at derivation run through the same rules as the server handler.
func (e *Engine) UpdateTask(ctx context.Context, id int64, u model.TaskUpdate) (*model.Task, error) {
	return call(e,
		func() (*model.Task, error) {
			var task model.Task
			if err := e.remote.request(ctx, "PUT", fmt.Sprintf("/api/tasks/%d", id), requestOptions{body: u}, &task); err != nil {
				return nil, err
			}
			model.NormalizeTask(&task)
			e.patchMirror(task)
			return &task, nil
		},
		func() (*model.Task, error) {
			tasks := e.local.Tasks()
			for i := range tasks {
				if tasks[i].ID != id {
					continue
				}
				now := e.now()
				model.ApplyUpdate(&tasks[i], u, now)
				e.local.SetTasks(tasks)
				e.local.LogActivity(id, model.ActionUpdated, model.UpdatedMessage(tasks[i].Title), u.UpdatedBy, now)
				return &tasks[i], nil
			}
			return nil, ErrNotFound
		},
	)
}

// MoveTask applies a drag-and-drop status change.
func (e *Engine) MoveTask(ctx context.Context, id int64, status, movedBy string) (*model.Task, error) {
	body := map[string]string{"status": status, "moved_by": model.Actor(movedBy)}
	return call(e,
		func() (*model.Task, error) {
			var task model.Task
			if err := e.remote.request(ctx, "PATCH", fmt.Sprintf("/api/tasks/%d/move", id), requestOptions{body: body}, &task); err != nil {
				return nil, err
			}
			model.NormalizeTask(&task)
			e.patchMirror(task)
			return &task, nil
		},
		func() (*model.Task, error) {
			tasks := e.local.Tasks()
			for i := range tasks {
				if tasks[i].ID != id {
					continue
				}
				now := e.now()
				model.MoveTask(&tasks[i], status, now)
				e.local.SetTasks(tasks)
				e.local.LogActivity(id, model.ActionMoved, model.MovedMessage(status), movedBy, now)
				return &tasks[i], nil
			}
			return nil, ErrNotFound
		},
	)
}

// DeleteTask removes a task, logging its prior title.
func (e *Engine) DeleteTask(ctx context.Context, id int64, deletedBy string) error {
	_, err := call(e,
		func() (struct{}, error) {
			body := map[string]string{"deleted_by": model.Actor(deletedBy)}
			err := e.remote.request(ctx, "DELETE", fmt.Sprintf("/api/tasks/%d", id), requestOptions{body: body}, nil)
			if err != nil {
				return struct{}{}, err
			}
			e.removeMirror(id)
			return struct{}{}, nil
		},
		func() (struct{}, error) {
			tasks := e.local.Tasks()
			for i := range tasks {
				if tasks[i].ID != id {
					continue
				}
				title := tasks[i].Title
				now := e.now()
				e.local.SetTasks(append(tasks[:i], tasks[i+1:]...))
				e.local.LogActivity(id, model.ActionDeleted, model.DeletedMessage(title), deletedBy, now)
				return struct{}{}, nil
			}
			return struct{}{}, ErrNotFound
		},
	)
	return err
}

// patchMirror merges a server-canonical task into the local list.
func (e *Engine) patchMirror(task model.Task) {
	tasks := e.local.Tasks()
	for i := range tasks {
		if tasks[i].ID == task.ID {
			tasks[i] = task
			e.local.SetTasks(tasks)
			return
		}
	}
	e.local.SetTasks(append([]model.Task{task}, tasks...))
}

func (e *Engine) removeMirror(id int64) {
	tasks := e.local.Tasks()
	for i := range tasks {
		if tasks[i].ID == id {
			e.local.SetTasks(append(tasks[:i], tasks[i+1:]...))
			return
		}
	}
}
