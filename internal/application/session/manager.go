package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"kingrun/internal/adapters/auth"
	"kingrun/internal/adapters/storage/kv"
	"kingrun/internal/domain/user"
)

// StorageKey is the fixed key holding the serialized session user.
const StorageKey = "kingrun_user"

// ErrPersist wraps failures writing the session record.
var ErrPersist = errors.New("session: failed to persist user")

// ErrPending is returned when a login or register call is already in flight.
var ErrPending = errors.New("session: authentication already in progress")

// State is the authentication state of a device.
type State int

const (
	Uninitialized State = iota
	Restoring
	Authenticated
	Anonymous
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Restoring:
		return "restoring"
	case Authenticated:
		return "authenticated"
	case Anonymous:
		return "anonymous"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Snapshot is the state observed by subscribers after a transition.
type Snapshot struct {
	Scope string
	State State
	User  user.User
	Event string // "restored", "login", "register", "logout"
}

// Manager owns the authenticated user of one device scope.
// It is the only writer of the persisted session record for that scope.
type Manager struct {
	scope   string
	store   kv.Store
	backend auth.Backend

	// writeMu is held from a store write through the matching state change.
	writeMu sync.Mutex

	mu          sync.Mutex
	state       State
	user        user.User
	pending     int
	ready       chan struct{}
	startOnce   sync.Once
	subscribers map[int]func(Snapshot)
	nextSubID   int

	lastUsed atomic.Int64
}

// NewManager creates a manager in the Uninitialized state.
// PRE: store and backend are non-nil
// POST: Call Start before reading the state
func NewManager(scope string, store kv.Store, backend auth.Backend) *Manager {
	m := &Manager{
		scope:       scope,
		store:       store,
		backend:     backend,
		ready:       make(chan struct{}),
		subscribers: make(map[int]func(Snapshot)),
	}
	m.Touch()
	return m
}

// Scope returns the device scope this manager serves.
func (m *Manager) Scope() string {
	return m.scope
}

// Start enters Restoring and loads the persisted record in the background.
// Calling Start more than once has no effect.
// PRE: none
// POST: State is Restoring until Ready is closed
func (m *Manager) Start(ctx context.Context) {
	m.startOnce.Do(func() {
		m.mu.Lock()
		m.state = Restoring
		m.mu.Unlock()
		go m.restore(context.WithoutCancel(ctx))
	})
}

// Ready is closed once restoration has resolved.
func (m *Manager) Ready() <-chan struct{} {
	return m.ready
}

// Restoring reports whether the outcome of restoration is still unknown.
// Callers must not make navigation decisions while it is true.
func (m *Manager) Restoring() bool {
	s := m.State()
	return s == Uninitialized || s == Restoring
}

func (m *Manager) restore(ctx context.Context) {
	u, ok := m.load(ctx)

	m.mu.Lock()
	if m.state == Restoring {
		if ok {
			m.state = Authenticated
			m.user = u
		} else {
			m.state = Anonymous
		}
	}
	snap := m.snapshotLocked("restored")
	m.mu.Unlock()

	close(m.ready)
	m.notify(snap)
}

// load reads the persisted record. Every failure degrades to "no user".
func (m *Manager) load(ctx context.Context) (user.User, bool) {
	raw, err := m.store.Get(ctx, m.scope, StorageKey)
	if errors.Is(err, kv.ErrNotFound) {
		return user.User{}, false
	}
	if err != nil {
		slog.Warn("session_restore_failed", "scope", m.scope, "error", err)
		return user.User{}, false
	}
	var u user.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		slog.Warn("session_record_corrupt", "scope", m.scope, "error", err)
		return user.User{}, false
	}
	if err := u.Validate(); err != nil {
		slog.Warn("session_record_corrupt", "scope", m.scope, "error", err)
		return user.User{}, false
	}
	return u, true
}

// State returns the current state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// User returns the authenticated user, if any.
func (m *Manager) User() (user.User, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != Authenticated {
		return user.User{}, false
	}
	return m.user, true
}

// Pending reports whether a login or register call is in flight.
func (m *Manager) Pending() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pending > 0
}

// Login authenticates through the backend and persists the resulting user.
// The attempt runs to completion even if ctx is cancelled.
// PRE: none
// POST: On success the record is persisted, state is Authenticated, then subscribers are notified
// POST: On failure state is unchanged and user.ErrInvalidCredentials, ErrPersist or ErrPending is returned
func (m *Manager) Login(ctx context.Context, email, password string) error {
	return m.authenticate(ctx, "login", func(ctx context.Context) (user.User, error) {
		return m.backend.Login(ctx, auth.Credentials{Email: email, Password: password})
	})
}

// Register creates a new runner through the backend and persists it.
// PRE: none
// POST: Same ordering as Login; failures return user.ErrInvalidRegistration or ErrPersist
func (m *Manager) Register(ctx context.Context, name, email, password string) error {
	return m.authenticate(ctx, "register", func(ctx context.Context) (user.User, error) {
		return m.backend.Register(ctx, auth.Registration{Name: name, Email: email, Password: password})
	})
}

func (m *Manager) authenticate(ctx context.Context, event string, call func(context.Context) (user.User, error)) error {
	ctx = context.WithoutCancel(ctx)
	m.Touch()

	m.mu.Lock()
	if m.pending > 0 {
		m.mu.Unlock()
		return ErrPending
	}
	m.pending++
	m.mu.Unlock()
	defer func() {
		m.mu.Lock()
		m.pending--
		m.mu.Unlock()
	}()

	u, err := call(ctx)
	if err != nil {
		return err
	}

	data, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersist, err)
	}

	m.writeMu.Lock()
	if err := m.store.Set(ctx, m.scope, StorageKey, string(data)); err != nil {
		m.writeMu.Unlock()
		return fmt.Errorf("%w: %v", ErrPersist, err)
	}

	m.mu.Lock()
	m.state = Authenticated
	m.user = u
	snap := m.snapshotLocked(event)
	m.mu.Unlock()
	m.writeMu.Unlock()

	m.notify(snap)
	return nil
}

// Logout clears the persisted record and the in-memory user.
// A failed delete is logged; the device is signed out regardless.
// PRE: none
// POST: State is Anonymous
func (m *Manager) Logout(ctx context.Context) {
	m.Touch()
	m.writeMu.Lock()
	if err := m.store.Delete(context.WithoutCancel(ctx), m.scope, StorageKey); err != nil {
		slog.Warn("session_delete_failed", "scope", m.scope, "error", err)
	}

	m.mu.Lock()
	m.state = Anonymous
	m.user = user.User{}
	snap := m.snapshotLocked("logout")
	m.mu.Unlock()
	m.writeMu.Unlock()

	m.notify(snap)
}

// Subscribe registers fn for every state transition. The returned function
// removes the subscription.
func (m *Manager) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	m.mu.Lock()
	id := m.nextSubID
	m.nextSubID++
	m.subscribers[id] = fn
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		delete(m.subscribers, id)
		m.mu.Unlock()
	}
}

// Touch marks the manager as recently used.
func (m *Manager) Touch() {
	m.lastUsed.Store(time.Now().UnixNano())
}

// LastUsed returns when the manager last served a request.
func (m *Manager) LastUsed() time.Time {
	return time.Unix(0, m.lastUsed.Load())
}

// snapshotLocked captures state for subscribers.
// PRE: m.mu is held
func (m *Manager) snapshotLocked(event string) Snapshot {
	return Snapshot{Scope: m.scope, State: m.state, User: m.user, Event: event}
}

func (m *Manager) notify(snap Snapshot) {
	m.mu.Lock()
	subs := make([]func(Snapshot), 0, len(m.subscribers))
	for _, fn := range m.subscribers {
		subs = append(subs, fn)
	}
	m.mu.Unlock()

	for _, fn := range subs {
		fn(snap)
	}
}
