package localstore

import (
	"context"
	"sync"
)

// MemoryStore keeps everything in process memory.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]map[string]string)}
}

func (m *MemoryStore) Get(_ context.Context, visitorID, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.data[visitorID][key]
	return value, ok, nil
}

func (m *MemoryStore) Set(_ context.Context, visitorID, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	entries, ok := m.data[visitorID]
	if !ok {
		entries = make(map[string]string)
		m.data[visitorID] = entries
	}
	entries[key] = value
	return nil
}

func (m *MemoryStore) Remove(_ context.Context, visitorID string, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	entries, ok := m.data[visitorID]
	if !ok {
		return nil
	}
	for _, key := range keys {
		delete(entries, key)
	}
	if len(entries) == 0 {
		delete(m.data, visitorID)
	}
	return nil
}
