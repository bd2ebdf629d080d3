package store

import (
	"context"
	"sync"
)

// Memory is an in-process store. State is lost on exit.
type Memory struct {
	mu     sync.RWMutex
	values map[string][]byte
}

var _ KeyValueStore = (*Memory)(nil)

// NewMemoryStore constructs an empty Memory store.
func NewMemoryStore() *Memory {
	return &Memory{values: make(map[string][]byte)}
}

// Get implements KeyValueStore.
func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, true, nil
}

// Set implements KeyValueStore.
func (m *Memory) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	v := make([]byte, len(value))
	copy(v, value)
	m.values[key] = v
	return nil
}
