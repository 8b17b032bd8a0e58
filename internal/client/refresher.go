package client

import (
	"context"
	"time"

	"github.com/Macrojordan/mission-control-kanban/internal/model"
)

// Refresh cadence: a full data refresh keeps the mirror warm, a lightweight
// heartbeat keeps the indicator honest between refreshes.
const (
	DataRefreshInterval = 15 * time.Second
	HealthPingInterval  = 5 * time.Second
)

// Refresher periodically re-runs real operations in the background. Failures
// never surface: they only move the connectivity indicator, which the
// operations already handle.
type Refresher struct {
	engine *Engine
	data   time.Duration
	health time.Duration
}

// NewRefresher builds a refresher with the default cadence.
func NewRefresher(engine *Engine) *Refresher {
	return &Refresher{
		engine: engine,
		data:   DataRefreshInterval,
		health: HealthPingInterval,
	}
}

// Run blocks until ctx is cancelled, refreshing on the configured cadence.
func (r *Refresher) Run(ctx context.Context) {
	dataTicker := time.NewTicker(r.data)
	defer dataTicker.Stop()
	healthTicker := time.NewTicker(r.health)
	defer healthTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-dataTicker.C:
			r.engine.ListTasks(ctx, model.TaskFilter{})
			r.engine.ListProjects(ctx)
		case <-healthTicker.C:
			r.engine.PingHealth(ctx)
		}
	}
}
