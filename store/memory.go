package store

import (
	"fmt"
	"sort"
	"sync"
)

// MemoryStore keeps everything in memory. Data is lost on restart.
// Safe for concurrent use.
//
// A positive quota caps the total size of keys and values in bytes,
// mirroring the capacity ceiling of browser storage.
type MemoryStore struct {
	mu    sync.RWMutex
	data  map[string]string
	quota int
	used  int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]string)}
}

// NewMemoryStoreWithQuota creates a MemoryStore refusing writes beyond quota bytes.
func NewMemoryStoreWithQuota(quota int) *MemoryStore {
	m := NewMemoryStore()
	m.quota = quota
	return m
}

func (m *MemoryStore) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *MemoryStore) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delta := len(key) + len(value)
	if old, ok := m.data[key]; ok {
		delta -= len(key) + len(old)
	}
	if m.quota > 0 && m.used+delta > m.quota {
		return fmt.Errorf("set %q (%d bytes used of %d): %w", key, m.used, m.quota, ErrQuotaExceeded)
	}
	m.data[key] = value
	m.used += delta
	return nil
}

func (m *MemoryStore) Delete(key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	old, ok := m.data[key]
	if !ok {
		return false, nil
	}
	delete(m.data, key)
	m.used -= len(key) + len(old)
	return true, nil
}

func (m *MemoryStore) Keys() ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.data))
	for k := range m.data {
		names = append(names, k)
	}
	sort.Strings(names)
	return names, nil
}

// Used reports the bytes currently held.
func (m *MemoryStore) Used() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.used
}
