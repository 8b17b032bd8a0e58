package client

import (
	"context"

	"github.com/Macrojordan/mission-control-kanban/internal/model"
)

// DashboardMetrics fetches the dashboard aggregates. Offline, the same
// metrics are recomputed from the mirror; for equal data the two paths are
// numerically equivalent.
func (e *Engine) DashboardMetrics(ctx context.Context) (*model.Dashboard, error) {
	return call(e,
		func() (*model.Dashboard, error) {
			var d model.Dashboard
			if err := e.remote.request(ctx, "GET", "/api/dashboard/metrics", requestOptions{}, &d); err != nil {
				return nil, err
			}
			return &d, nil
		},
		func() (*model.Dashboard, error) {
			d := model.ComputeDashboard(e.local.Tasks(), e.local.Projects(), e.local.Activity(), e.now())
			return &d, nil
		},
	)
}
