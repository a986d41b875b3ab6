package property

import "sync"

// MemStore is an in-memory Store. Used by host-side tooling and tests;
// Commit is a no-op since there is no backing medium.
type MemStore struct {
	mu      sync.Mutex
	values  map[string]uint32
	strings map[string]string
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{
		values:  make(map[string]uint32),
		strings: make(map[string]string),
	}
}

func (m *MemStore) GetU32(key string) (uint32, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok
}

func (m *MemStore) SetU32(key string, value uint32) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *MemStore) GetString(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.strings[key]
	return v, ok
}

func (m *MemStore) SetString(key string, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.strings[key] = value
	return nil
}

func (m *MemStore) Commit() error {
	return nil
}
