package kv

import (
	"context"
	"sync"
)

// MemoryStore is a process-local Store. Contents are lost on restart.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]map[string]string
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]map[string]string)}
}

// Get returns the value stored under (scope, key).
// PRE: none
// POST: Returns the value or ErrNotFound
func (m *MemoryStore) Get(ctx context.Context, scope, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.entries[scope][key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

// Set stores value under (scope, key), replacing any previous value.
// PRE: none
// POST: Get(scope, key) returns value
func (m *MemoryStore) Set(ctx context.Context, scope, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.entries[scope] == nil {
		m.entries[scope] = make(map[string]string)
	}
	m.entries[scope][key] = value
	return nil
}

// Delete removes (scope, key). Deleting a missing key is not an error.
// PRE: none
// POST: Get(scope, key) returns ErrNotFound
func (m *MemoryStore) Delete(ctx context.Context, scope, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries[scope], key)
	if len(m.entries[scope]) == 0 {
		delete(m.entries, scope)
	}
	return nil
}

// Close is a no-op.
func (m *MemoryStore) Close() error {
	return nil
}
