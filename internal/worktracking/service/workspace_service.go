package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/constructtrack/constructtrack-backend/internal/worktracking/domain"
	"github.com/constructtrack/constructtrack-backend/internal/worktracking/repository"
	"github.com/constructtrack/constructtrack-backend/internal/worktracking/store"
)

// WorkspaceService holds the current project collection of each owner and
// applies store operations to it one at a time.
type WorkspaceService struct {
	mu         sync.Mutex
	snapshots  repository.SnapshotStore
	workspaces map[string][]domain.Project
	dirty      map[string]bool
	seed       func() []domain.Project
}

type Option func(*WorkspaceService)

// WithSeed sets the collection given to owners that have no snapshot yet.
func WithSeed(seed func() []domain.Project) Option {
	return func(s *WorkspaceService) { s.seed = seed }
}

// NewWorkspaceService creates a service persisting through snapshots.
func NewWorkspaceService(snapshots repository.SnapshotStore, opts ...Option) *WorkspaceService {
	s := &WorkspaceService{
		snapshots:  snapshots,
		workspaces: make(map[string][]domain.Project),
		dirty:      make(map[string]bool),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Backend names the snapshot store in use.
func (s *WorkspaceService) Backend() string {
	return s.snapshots.Name()
}

// State returns the owner's current collection, loading the last snapshot
// on first access.
func (s *WorkspaceService) State(ctx context.Context, ownerID string) ([]domain.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current(ctx, ownerID)
}

// Replace swaps the owner's collection for projects after normalising it
// and reconciling stored quantities. It returns how many quantities were
// corrected.
func (s *WorkspaceService) Replace(ctx context.Context, ownerID string, projects []domain.Project) ([]domain.Project, int) {
	next, fixed := s.prepare(ctx, projects)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.workspaces[ownerID] = next
	s.dirty[ownerID] = true
	return next, fixed
}

// Save writes the owner's collection to the snapshot store.
func (s *WorkspaceService) Save(ctx context.Context, ownerID string) (*repository.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, err := s.current(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	snap, err := s.snapshots.Save(ctx, ownerID, cur)
	if err != nil {
		return nil, fmt.Errorf("save workspace %s: %w", ownerID, err)
	}
	delete(s.dirty, ownerID)
	NewLogger(ctx).LogInfof("save", "owner=%s backend=%s projects=%d", ownerID, s.snapshots.Name(), len(cur))
	return snap, nil
}

// Reload discards the in-memory collection and reads the last snapshot.
func (s *WorkspaceService) Reload(ctx context.Context, ownerID string) ([]domain.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.workspaces, ownerID)
	delete(s.dirty, ownerID)
	return s.current(ctx, ownerID)
}

// SaveDirty persists every collection changed since its last save and
// returns how many were written. Failures are logged and retried on the
// next call.
func (s *WorkspaceService) SaveDirty(ctx context.Context) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	saved := 0
	for ownerID := range s.dirty {
		if _, err := s.snapshots.Save(ctx, ownerID, s.workspaces[ownerID]); err != nil {
			NewLogger(ctx).LogErrorf("autosave", "owner=%s error=%v", ownerID, err)
			continue
		}
		delete(s.dirty, ownerID)
		saved++
	}
	return saved
}

// ErrWatchUnsupported is returned by WatchSaves when the snapshot store does
// not broadcast saves.
var ErrWatchUnsupported = errors.New("state backend does not broadcast saves")

// WatchSaves streams save times of the owner's snapshot, including saves
// made by other processes sharing the store.
func (s *WorkspaceService) WatchSaves(ctx context.Context, ownerID string) (<-chan time.Time, error) {
	w, ok := s.snapshots.(repository.SaveWatcher)
	if !ok {
		return nil, ErrWatchUnsupported
	}
	return w.WatchSaves(ctx, ownerID)
}

// IsDirty reports whether the owner has unsaved changes.
func (s *WorkspaceService) IsDirty(ownerID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty[ownerID]
}

// current must be called with s.mu held.
func (s *WorkspaceService) current(ctx context.Context, ownerID string) ([]domain.Project, error) {
	if ps, ok := s.workspaces[ownerID]; ok {
		return ps, nil
	}

	snap, err := s.snapshots.Load(ctx, ownerID)
	switch {
	case errors.Is(err, domain.ErrSnapshotNotFound):
		ps := []domain.Project{}
		if s.seed != nil {
			ps, _ = s.prepare(ctx, s.seed())
		}
		s.workspaces[ownerID] = ps
		return ps, nil
	case err != nil:
		return nil, fmt.Errorf("load workspace %s: %w", ownerID, err)
	}

	NewLogger(ctx).LogDebugf("load", "owner=%s backend=%s saved_at=%s", ownerID, s.snapshots.Name(), snap.SavedAt)
	ps, fixed := s.prepare(ctx, snap.Projects)
	s.workspaces[ownerID] = ps
	if fixed > 0 {
		s.dirty[ownerID] = true
	}
	return ps, nil
}

func (s *WorkspaceService) prepare(ctx context.Context, projects []domain.Project) ([]domain.Project, int) {
	projects = store.Normalize(projects)
	for _, m := range store.CheckQuantities(projects) {
		NewLogger(ctx).LogWarnf("reconcile", "project=%s area=%s item=%s stored=%g expected=%g",
			m.ProjectID, m.AreaID, m.ItemID, m.Stored, m.Expected)
	}
	return store.ReconcileQuantities(projects)
}

// mutate applies fn to the owner's collection and stores the result.
func (s *WorkspaceService) mutate(ctx context.Context, ownerID string, fn func([]domain.Project) ([]domain.Project, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, err := s.current(ctx, ownerID)
	if err != nil {
		return err
	}
	next, err := fn(cur)
	if err != nil {
		return err
	}
	s.workspaces[ownerID] = next
	s.dirty[ownerID] = true
	return nil
}
