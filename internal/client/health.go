package client

import (
	"context"
	"time"

	"github.com/Macrojordan/mission-control-kanban/internal/model"
)

// Health is the /health response shape.
type Health struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// SyncResult is the POST /api/sync response shape.
type SyncResult struct {
	Success  bool       `json:"success"`
	Message  string     `json:"message"`
	LastSync *time.Time `json:"lastSync"`
	SyncID   string     `json:"syncId,omitempty"`
}

// PingHealth probes the server with a short timeout. Offline it reports an
// offline status instead of failing; only the indicator cares.
func (e *Engine) PingHealth(ctx context.Context) (*Health, error) {
	return call(e,
		func() (*Health, error) {
			var h Health
			if err := e.remote.request(ctx, "GET", "/health", requestOptions{timeout: HealthTimeout}, &h); err != nil {
				return nil, err
			}
			return &h, nil
		},
		func() (*Health, error) {
			return &Health{Status: "offline", Timestamp: e.now()}, nil
		},
	)
}

// SyncStatus fetches the server's sync metadata; offline it reports an idle
// state.
func (e *Engine) SyncStatus(ctx context.Context) (*model.SyncState, error) {
	return call(e,
		func() (*model.SyncState, error) {
			var s model.SyncState
			if err := e.remote.request(ctx, "GET", "/api/sync/status", requestOptions{}, &s); err != nil {
				return nil, err
			}
			return &s, nil
		},
		func() (*model.SyncState, error) {
			return &model.SyncState{}, nil
		},
	)
}

// TriggerSync asks the server to wake the agent gateway. The trigger is an
// opaque remote operation: offline it degrades to an unavailable result
// rather than an error.
func (e *Engine) TriggerSync(ctx context.Context) (*SyncResult, error) {
	return call(e,
		func() (*SyncResult, error) {
			var r SyncResult
			if err := e.remote.request(ctx, "POST", "/api/sync", requestOptions{}, &r); err != nil {
				return nil, err
			}
			return &r, nil
		},
		func() (*SyncResult, error) {
			return &SyncResult{
				Success: false,
				Message: "sync unavailable offline",
			}, nil
		},
	)
}
