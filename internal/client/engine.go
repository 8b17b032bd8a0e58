package client

import (
	"time"

	"github.com/Macrojordan/mission-control-kanban/internal/localstore"
)

// Engine wraps every domain operation in a try/fallback pair: the remote API
// first, then an equivalent computation against the local mirror when the
// server cannot be reached. Results are shape-compatible regardless of which
// path answered.
type Engine struct {
	remote *Client
	local  *localstore.Store
	status *Status
	now    func() time.Time
}

// NewEngine builds a fallback engine. The status cell is shared with whoever
// renders the connectivity indicator.
func NewEngine(remote *Client, local *localstore.Store, status *Status) *Engine {
	return &Engine{
		remote: remote,
		local:  local,
		status: status,
		now:    time.Now,
	}
}

// Status exposes the connectivity cell.
func (e *Engine) Status() *Status { return e.status }

// Local exposes the mirror, mainly for tests and the hook binary.
func (e *Engine) Local() *localstore.Store { return e.local }

// call runs the remote operation and, on transport failure only, the local
// equivalent. A reachable server that rejects the request is an application
// error and surfaces as-is.
func call[T any](e *Engine, remote func() (T, error), local func() (T, error)) (T, error) {
	v, err := remote()
	if err == nil {
		e.status.set(false)
		return v, nil
	}
	if !IsTransport(err) {
		// Server responded, so we are online.
		e.status.set(false)
		var zero T
		return zero, err
	}
	e.status.set(true)
	return local()
}
