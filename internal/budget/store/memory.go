package store

import (
	"context"
	"sync"

	"github.com/MrJamesThe3rd/pocketplan/internal/budget"
)

// Memory keeps snapshots in process memory. Snapshots are stored encoded so callers
// never share slices with the store.
type Memory struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

func (m *Memory) Read(_ context.Context, userID string) (*budget.Snapshot, error) {
	m.mu.RLock()
	data, ok := m.data[userID]
	m.mu.RUnlock()

	if !ok {
		return nil, nil
	}

	return decode(data)
}

func (m *Memory) Write(_ context.Context, userID string, s *budget.Snapshot) error {
	data, err := encode(s)
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.data[userID] = data
	m.mu.Unlock()

	return nil
}
