package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/constructtrack/constructtrack-backend/internal/worktracking/domain"
)

// SnapshotVersion is the envelope version written by every backend.
const SnapshotVersion = 1

// Snapshot is the persisted form of an owner's whole project collection.
type Snapshot struct {
	Version  int              `json:"version"`
	OwnerID  string           `json:"ownerId"`
	SavedAt  time.Time        `json:"savedAt"`
	Projects []domain.Project `json:"projects"`
}

// SnapshotStore saves and loads whole collections keyed by owner.
// Load returns domain.ErrSnapshotNotFound when nothing was saved yet.
type SnapshotStore interface {
	Save(ctx context.Context, ownerID string, projects []domain.Project) (*Snapshot, error)
	Load(ctx context.Context, ownerID string) (*Snapshot, error)
	Name() string
}

// SaveWatcher is implemented by stores that broadcast saves.
type SaveWatcher interface {
	WatchSaves(ctx context.Context, ownerID string) (<-chan time.Time, error)
}

func newSnapshot(ownerID string, projects []domain.Project) *Snapshot {
	if projects == nil {
		projects = []domain.Project{}
	}
	return &Snapshot{
		Version:  SnapshotVersion,
		OwnerID:  ownerID,
		SavedAt:  time.Now().UTC(),
		Projects: projects,
	}
}

func encodeSnapshot(s *Snapshot) ([]byte, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	return b, nil
}

func decodeSnapshot(b []byte) (*Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}
	if s.Version > SnapshotVersion {
		return nil, fmt.Errorf("unsupported snapshot version %d", s.Version)
	}
	if s.Projects == nil {
		s.Projects = []domain.Project{}
	}
	return &s, nil
}

func requireOwner(ownerID string) error {
	if ownerID == "" {
		return fmt.Errorf("owner id required")
	}
	return nil
}
