package store

import (
	"encoding/json"
	"fmt"
	"sync"
)

// Memory is an in-process Store used by tests and by callers that have no
// writable filesystem. Values round-trip through JSON so it behaves
// exactly like the SQLite store, including seeding.
type Memory struct {
	mu     sync.Mutex
	values map[string]string
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

// Get returns the value stored under key, seeding it first when absent.
func (m *Memory) Get(key string, seed, out any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	raw, ok := m.values[key]
	if !ok {
		encoded, err := json.Marshal(seed)
		if err != nil {
			return fmt.Errorf("failed to encode seed for %q: %w", key, err)
		}
		m.values[key] = string(encoded)
		raw = string(encoded)
	}

	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return fmt.Errorf("failed to decode %q: %w", key, err)
	}
	return nil
}

// Set persists value under key.
func (m *Memory) Set(key string, value any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	encoded, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode value for %q: %w", key, err)
	}
	m.values[key] = string(encoded)
	return nil
}
