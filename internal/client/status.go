package client

import "sync"

// Status is the process-wide connectivity indicator. It starts optimistic
// (online) and flips only as a side effect of fallback-engine calls
// completing. The handler fires on every set, not only on change, so it must
// tolerate repeated invocations with the same value.
type Status struct {
	mu      sync.Mutex
	offline bool
	handler func(offline bool)
}

// NewStatus returns a status cell in the online state.
func NewStatus() *Status {
	return &Status{}
}

// SetHandler registers the transition handler. Pass nil to unregister.
func (s *Status) SetHandler(fn func(offline bool)) {
	s.mu.Lock()
	s.handler = fn
	s.mu.Unlock()
}

// Offline reports the current connectivity state.
func (s *Status) Offline() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.offline
}

func (s *Status) set(offline bool) {
	s.mu.Lock()
	s.offline = offline
	handler := s.handler
	s.mu.Unlock()

	if handler != nil {
		handler(offline)
	}
}
