package storage

import (
	"context"
	"sync"
)

// MemoryDriver keeps everything in a map. Default for tests and for
// running the storefront without any persistence configured.
type MemoryDriver struct {
	mu   sync.RWMutex
	data map[string]map[string]string
}

func NewMemoryDriver() *MemoryDriver {
	return &MemoryDriver{data: make(map[string]map[string]string)}
}

func (m *MemoryDriver) Get(_ context.Context, device, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[device][key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (m *MemoryDriver) Set(_ context.Context, device, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data[device] == nil {
		m.data[device] = make(map[string]string)
	}
	m.data[device][key] = value
	return nil
}

func (m *MemoryDriver) Delete(_ context.Context, device, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data[device], key)
	return nil
}
