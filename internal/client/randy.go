package client

import (
	"context"

	"github.com/Macrojordan/mission-control-kanban/internal/model"
)

// RandyTasks fetches the agent queue, optionally narrowed to one status.
func (e *Engine) RandyTasks(ctx context.Context, status string) (*model.RandyTaskList, error) {
	path := "/api/randy/tasks"
	if status != "" {
		path += "?status=" + status
	}
	return call(e,
		func() (*model.RandyTaskList, error) {
			var list model.RandyTaskList
			if err := e.remote.request(ctx, "GET", path, requestOptions{}, &list); err != nil {
				return nil, err
			}
			for i := range list.Tasks {
				model.NormalizeTask(&list.Tasks[i])
			}
			return &list, nil
		},
		func() (*model.RandyTaskList, error) {
			tasks := model.FilterTasks(e.local.Tasks(), model.TaskFilter{AssignedTo: model.Randy, Status: status})
			model.SortRandyTasks(tasks)
			return &model.RandyTaskList{
				AssignedTo: model.Randy,
				Total:      int64(len(tasks)),
				Tasks:      tasks,
			}, nil
		},
	)
}

// RandyStats fetches the agent's completion statistics.
func (e *Engine) RandyStats(ctx context.Context) (*model.RandyStats, error) {
	return call(e,
		func() (*model.RandyStats, error) {
			var stats model.RandyStats
			if err := e.remote.request(ctx, "GET", "/api/randy/stats", requestOptions{}, &stats); err != nil {
				return nil, err
			}
			return &stats, nil
		},
		func() (*model.RandyStats, error) {
			tasks := model.FilterTasks(e.local.Tasks(), model.TaskFilter{AssignedTo: model.Randy})
			stats := model.ComputeRandyStats(tasks)
			return &stats, nil
		},
	)
}
