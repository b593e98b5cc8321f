package storage

import (
	"sync"

	"github.com/jhoicas/inventario-console/internal/domain/repository"
)

var _ repository.SessionStorage = (*MemorySession)(nil)

// MemorySession almacenamiento volátil; lo usa el escáner y los tests.
type MemorySession struct {
	mu sync.RWMutex
	kv map[string]string
}

func NewMemorySession() *MemorySession {
	return &MemorySession{kv: make(map[string]string)}
}

func (m *MemorySession) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.kv[key]
	return v, ok, nil
}

func (m *MemorySession) Set(key, value string) error {
	m.mu.Lock()
	m.kv[key] = value
	m.mu.Unlock()
	return nil
}

func (m *MemorySession) Remove(keys ...string) error {
	m.mu.Lock()
	for _, k := range keys {
		delete(m.kv, k)
	}
	m.mu.Unlock()
	return nil
}
