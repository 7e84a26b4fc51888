package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"kingrun/internal/adapters/auth"
	"kingrun/internal/adapters/storage/kv"
)

// Registry holds one Manager per device scope.
type Registry struct {
	store   kv.Store
	backend auth.Backend

	mu       sync.Mutex
	managers map[string]*Manager
}

// NewRegistry creates an empty registry.
// PRE: store and backend are non-nil
func NewRegistry(store kv.Store, backend auth.Backend) *Registry {
	return &Registry{
		store:    store,
		backend:  backend,
		managers: make(map[string]*Manager),
	}
}

// Acquire returns the manager for scope, creating and starting it on first use.
// PRE: scope is non-empty
// POST: Returned manager has been started
func (r *Registry) Acquire(ctx context.Context, scope string) *Manager {
	r.mu.Lock()
	m, ok := r.managers[scope]
	if !ok {
		m = NewManager(scope, r.store, r.backend)
		m.Subscribe(logAuthEvent)
		r.managers[scope] = m
	}
	r.mu.Unlock()

	m.Touch()
	m.Start(ctx)
	return m
}

// Len returns the number of live managers.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.managers)
}

// Sweep drops managers unused for longer than idle. Managers with an attempt in
// flight are kept. The persisted record survives eviction.
// PRE: idle > 0
// POST: Returns the number of evicted managers
func (r *Registry) Sweep(idle time.Duration) int {
	cutoff := time.Now().Add(-idle)
	r.mu.Lock()
	defer r.mu.Unlock()

	evicted := 0
	for scope, m := range r.managers {
		if m.LastUsed().Before(cutoff) && !m.Pending() && !m.Restoring() {
			delete(r.managers, scope)
			evicted++
		}
	}
	return evicted
}

func logAuthEvent(s Snapshot) {
	if s.Event == "restored" {
		slog.Debug("auth_event", "event", "session_restored", "scope", s.Scope, "state", s.State.String())
		return
	}
	slog.Info("auth_event", "event", s.Event, "scope", s.Scope, "user_id", s.User.ID, "state", s.State.String())
}
