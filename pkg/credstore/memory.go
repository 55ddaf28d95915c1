package credstore

import (
	"context"
	"sync"
)

// MemoryBackend keeps credentials for the life of the process only.
type MemoryBackend struct {
	mu    sync.Mutex
	creds Credentials
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{}
}

func (m *MemoryBackend) Load(context.Context) (Credentials, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.creds.clone(), nil
}

func (m *MemoryBackend) Save(_ context.Context, c Credentials) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.creds = c.clone()
	return nil
}

func (m *MemoryBackend) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.creds = Credentials{}
	return nil
}
