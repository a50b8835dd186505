package service

import (
	"context"

	"github.com/constructtrack/constructtrack-backend/internal/worktracking/domain"
	"github.com/constructtrack/constructtrack-backend/internal/worktracking/store"
)

// The methods below wrap the store operations. Where the store would
// silently no-op on a missing id they report the matching ErrXNotFound so
// the HTTP layer can answer 404; the collection is left untouched.

func (s *WorkspaceService) AddProject(ctx context.Context, ownerID, name string) (domain.Project, error) {
	var created domain.Project
	err := s.mutate(ctx, ownerID, func(ps []domain.Project) ([]domain.Project, error) {
		next, p := store.AddProject(ps, name)
		created = p
		return next, nil
	})
	return created, err
}

func (s *WorkspaceService) RenameProject(ctx context.Context, ownerID, projectID, name string) (domain.Project, error) {
	var renamed domain.Project
	err := s.mutate(ctx, ownerID, func(ps []domain.Project) ([]domain.Project, error) {
		if err := store.Lookup(ps, projectID, "", ""); err != nil {
			return nil, err
		}
		next := store.RenameProject(ps, projectID, name)
		renamed, _ = store.FindProject(next, projectID)
		return next, nil
	})
	return renamed, err
}

func (s *WorkspaceService) RemoveProject(ctx context.Context, ownerID, projectID string) error {
	return s.mutate(ctx, ownerID, func(ps []domain.Project) ([]domain.Project, error) {
		if err := store.Lookup(ps, projectID, "", ""); err != nil {
			return nil, err
		}
		return store.RemoveProject(ps, projectID), nil
	})
}

func (s *WorkspaceService) ProjectSummary(ctx context.Context, ownerID, projectID string) (store.ProgressSummary, error) {
	ps, err := s.State(ctx, ownerID)
	if err != nil {
		return store.ProgressSummary{}, err
	}
	p, ok := store.FindProject(ps, projectID)
	if !ok {
		return store.ProgressSummary{}, domain.ErrProjectNotFound
	}
	return store.SummarizeProject(p), nil
}

func (s *WorkspaceService) AddArea(ctx context.Context, ownerID, projectID, name string) (domain.Area, error) {
	var created domain.Area
	err := s.mutate(ctx, ownerID, func(ps []domain.Project) ([]domain.Project, error) {
		next, a, ok := store.AddArea(ps, projectID, name)
		if !ok {
			return nil, domain.ErrProjectNotFound
		}
		created = a
		return next, nil
	})
	return created, err
}

func (s *WorkspaceService) UpdateArea(ctx context.Context, ownerID, projectID, areaID string, patch domain.AreaPatch) (domain.Area, error) {
	var updated domain.Area
	err := s.mutate(ctx, ownerID, func(ps []domain.Project) ([]domain.Project, error) {
		if err := store.Lookup(ps, projectID, areaID, ""); err != nil {
			return nil, err
		}
		next := store.UpdateArea(ps, projectID, areaID, patch)
		updated, _ = store.FindArea(next, projectID, areaID)
		return next, nil
	})
	return updated, err
}

func (s *WorkspaceService) AddWorkItem(ctx context.Context, ownerID, projectID, areaID string, item domain.WorkItem) (domain.WorkItem, error) {
	var created domain.WorkItem
	err := s.mutate(ctx, ownerID, func(ps []domain.Project) ([]domain.Project, error) {
		if err := store.Lookup(ps, projectID, areaID, ""); err != nil {
			return nil, err
		}
		next, w, _ := store.AddWorkItem(ps, projectID, areaID, item)
		created = w
		return next, nil
	})
	return created, err
}

func (s *WorkspaceService) AddWorkItems(ctx context.Context, ownerID, projectID, areaID string, proposals []domain.ItemProposal) ([]domain.WorkItem, error) {
	var created []domain.WorkItem
	err := s.mutate(ctx, ownerID, func(ps []domain.Project) ([]domain.Project, error) {
		if err := store.Lookup(ps, projectID, areaID, ""); err != nil {
			return nil, err
		}
		next, items, _ := store.AddWorkItems(ps, projectID, areaID, proposals)
		created = items
		return next, nil
	})
	return created, err
}

func (s *WorkspaceService) UpdateWorkItem(ctx context.Context, ownerID, projectID, areaID string, item domain.WorkItem) (domain.WorkItem, error) {
	var updated domain.WorkItem
	err := s.mutate(ctx, ownerID, func(ps []domain.Project) ([]domain.Project, error) {
		if err := store.Lookup(ps, projectID, areaID, item.ID); err != nil {
			return nil, err
		}
		next := store.UpdateWorkItem(ps, projectID, areaID, item)
		updated, _ = store.FindWorkItem(next, projectID, areaID, item.ID)
		return next, nil
	})
	return updated, err
}

func (s *WorkspaceService) RemoveWorkItem(ctx context.Context, ownerID, projectID, areaID, itemID string) error {
	return s.mutate(ctx, ownerID, func(ps []domain.Project) ([]domain.Project, error) {
		if err := store.Lookup(ps, projectID, areaID, itemID); err != nil {
			return nil, err
		}
		return store.RemoveWorkItem(ps, projectID, areaID, itemID), nil
	})
}

func (s *WorkspaceService) SetWorkItemColorImage(ctx context.Context, ownerID, projectID, areaID, itemID, ref, fileName string) (domain.WorkItem, error) {
	var updated domain.WorkItem
	err := s.mutate(ctx, ownerID, func(ps []domain.Project) ([]domain.Project, error) {
		if err := store.Lookup(ps, projectID, areaID, itemID); err != nil {
			return nil, err
		}
		next := store.SetWorkItemColorImage(ps, projectID, areaID, itemID, ref, fileName)
		updated, _ = store.FindWorkItem(next, projectID, areaID, itemID)
		return next, nil
	})
	return updated, err
}

func (s *WorkspaceService) AddSubWorks(ctx context.Context, ownerID, projectID, areaID, itemID string, names []string) ([]domain.SubWork, error) {
	var created []domain.SubWork
	err := s.mutate(ctx, ownerID, func(ps []domain.Project) ([]domain.Project, error) {
		if err := store.Lookup(ps, projectID, areaID, itemID); err != nil {
			return nil, err
		}
		next, subs, _ := store.AddSubWorks(ps, projectID, areaID, itemID, names)
		created = subs
		return next, nil
	})
	return created, err
}

func (s *WorkspaceService) ToggleSubWork(ctx context.Context, ownerID, projectID, areaID, itemID, subWorkID string) (domain.WorkItem, error) {
	var updated domain.WorkItem
	err := s.mutate(ctx, ownerID, func(ps []domain.Project) ([]domain.Project, error) {
		if err := subWorkLookup(ps, projectID, areaID, itemID, subWorkID); err != nil {
			return nil, err
		}
		next := store.ToggleSubWork(ps, projectID, areaID, itemID, subWorkID)
		updated, _ = store.FindWorkItem(next, projectID, areaID, itemID)
		return next, nil
	})
	return updated, err
}

func (s *WorkspaceService) RemoveSubWork(ctx context.Context, ownerID, projectID, areaID, itemID, subWorkID string) error {
	return s.mutate(ctx, ownerID, func(ps []domain.Project) ([]domain.Project, error) {
		if err := subWorkLookup(ps, projectID, areaID, itemID, subWorkID); err != nil {
			return nil, err
		}
		return store.RemoveSubWork(ps, projectID, areaID, itemID, subWorkID), nil
	})
}

// WorkItem returns a single work item.
func (s *WorkspaceService) WorkItem(ctx context.Context, ownerID, projectID, areaID, itemID string) (domain.WorkItem, error) {
	ps, err := s.State(ctx, ownerID)
	if err != nil {
		return domain.WorkItem{}, err
	}
	if err := store.Lookup(ps, projectID, areaID, itemID); err != nil {
		return domain.WorkItem{}, err
	}
	w, _ := store.FindWorkItem(ps, projectID, areaID, itemID)
	return w, nil
}

// Area returns a single area.
func (s *WorkspaceService) Area(ctx context.Context, ownerID, projectID, areaID string) (domain.Area, error) {
	ps, err := s.State(ctx, ownerID)
	if err != nil {
		return domain.Area{}, err
	}
	if err := store.Lookup(ps, projectID, areaID, ""); err != nil {
		return domain.Area{}, err
	}
	a, _ := store.FindArea(ps, projectID, areaID)
	return a, nil
}

func subWorkLookup(ps []domain.Project, projectID, areaID, itemID, subWorkID string) error {
	if err := store.Lookup(ps, projectID, areaID, itemID); err != nil {
		return err
	}
	if !store.HasSubWork(ps, projectID, areaID, itemID, subWorkID) {
		return domain.ErrSubWorkNotFound
	}
	return nil
}
