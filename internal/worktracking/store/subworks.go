package store

import (
	"slices"
	"strings"

	"github.com/samber/lo"

	"github.com/constructtrack/constructtrack-backend/internal/worktracking/domain"
)

// AddSubWorks appends one open sub-work per non-blank name to the matching
// work item. Names are trimmed.
func AddSubWorks(projects []domain.Project, projectID, areaID, itemID string, names []string) ([]domain.Project, []domain.SubWork, bool) {
	if _, ok := FindWorkItem(projects, projectID, areaID, itemID); !ok {
		return projects, nil, false
	}
	subs := lo.FilterMap(names, func(name string, _ int) (domain.SubWork, bool) {
		name = strings.TrimSpace(name)
		if name == "" {
			return domain.SubWork{}, false
		}
		return domain.SubWork{
			ID:   domain.NewID(domain.SubWorkIDPrefix),
			Name: name,
		}, true
	})
	if len(subs) == 0 {
		return projects, subs, true
	}

	out := updateItem(projects, projectID, areaID, itemID, func(w domain.WorkItem) domain.WorkItem {
		w.SubWorks = append(slices.Clip(w.SubWorks), subs...)
		return w
	})
	return out, subs, true
}

// ToggleSubWork flips the completion flag of the matching sub-work.
func ToggleSubWork(projects []domain.Project, projectID, areaID, itemID, subWorkID string) []domain.Project {
	w, ok := FindWorkItem(projects, projectID, areaID, itemID)
	if !ok || subWorkIndex(w.SubWorks, subWorkID) < 0 {
		return projects
	}
	return updateItem(projects, projectID, areaID, itemID, func(w domain.WorkItem) domain.WorkItem {
		i := subWorkIndex(w.SubWorks, subWorkID)
		subs := slices.Clone(w.SubWorks)
		subs[i].IsCompleted = !subs[i].IsCompleted
		w.SubWorks = subs
		return w
	})
}

// RemoveSubWork drops the matching sub-work.
func RemoveSubWork(projects []domain.Project, projectID, areaID, itemID, subWorkID string) []domain.Project {
	w, ok := FindWorkItem(projects, projectID, areaID, itemID)
	if !ok || subWorkIndex(w.SubWorks, subWorkID) < 0 {
		return projects
	}
	return updateItem(projects, projectID, areaID, itemID, func(w domain.WorkItem) domain.WorkItem {
		w.SubWorks = lo.Filter(w.SubWorks, func(s domain.SubWork, _ int) bool {
			return s.ID != subWorkID
		})
		return w
	})
}

// HasSubWork reports whether the sub-work exists under the given work item.
func HasSubWork(projects []domain.Project, projectID, areaID, itemID, subWorkID string) bool {
	w, ok := FindWorkItem(projects, projectID, areaID, itemID)
	return ok && subWorkIndex(w.SubWorks, subWorkID) >= 0
}
