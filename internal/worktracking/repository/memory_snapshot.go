package repository

import (
	"context"
	"sync"

	"github.com/constructtrack/constructtrack-backend/internal/worktracking/domain"
)

// MemorySnapshotStore keeps encoded snapshots in process memory. It is the
// development default and the store used by tests.
type MemorySnapshotStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemorySnapshotStore() *MemorySnapshotStore {
	return &MemorySnapshotStore{data: make(map[string][]byte)}
}

func (m *MemorySnapshotStore) Name() string { return "memory" }

func (m *MemorySnapshotStore) Save(_ context.Context, ownerID string, projects []domain.Project) (*Snapshot, error) {
	if err := requireOwner(ownerID); err != nil {
		return nil, err
	}
	s := newSnapshot(ownerID, projects)
	b, err := encodeSnapshot(s)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.data[ownerID] = b
	m.mu.Unlock()
	return s, nil
}

func (m *MemorySnapshotStore) Load(_ context.Context, ownerID string) (*Snapshot, error) {
	m.mu.RLock()
	b, ok := m.data[ownerID]
	m.mu.RUnlock()
	if !ok {
		return nil, domain.ErrSnapshotNotFound
	}
	return decodeSnapshot(b)
}
