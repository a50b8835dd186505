package store

import (
	"slices"

	"github.com/constructtrack/constructtrack-backend/internal/worktracking/domain"
)

// FindProject returns the project with projectID.
func FindProject(projects []domain.Project, projectID string) (domain.Project, bool) {
	i := projectIndex(projects, projectID)
	if i < 0 {
		return domain.Project{}, false
	}
	return projects[i], true
}

// FindArea returns the area areaID of project projectID.
func FindArea(projects []domain.Project, projectID, areaID string) (domain.Area, bool) {
	p, ok := FindProject(projects, projectID)
	if !ok {
		return domain.Area{}, false
	}
	i := areaIndex(p.Areas, areaID)
	if i < 0 {
		return domain.Area{}, false
	}
	return p.Areas[i], true
}

// FindWorkItem returns the work item itemID under the given project and area.
func FindWorkItem(projects []domain.Project, projectID, areaID, itemID string) (domain.WorkItem, bool) {
	a, ok := FindArea(projects, projectID, areaID)
	if !ok {
		return domain.WorkItem{}, false
	}
	i := itemIndex(a.WorkItems, itemID)
	if i < 0 {
		return domain.WorkItem{}, false
	}
	return a.WorkItems[i], true
}

// Lookup reports which level of the path projectID/areaID/itemID is missing.
// Empty trailing ids are not checked. It returns nil when the path exists.
func Lookup(projects []domain.Project, projectID, areaID, itemID string) error {
	p, ok := FindProject(projects, projectID)
	if !ok {
		return domain.ErrProjectNotFound
	}
	if areaID == "" {
		return nil
	}
	i := areaIndex(p.Areas, areaID)
	if i < 0 {
		return domain.ErrAreaNotFound
	}
	if itemID == "" {
		return nil
	}
	if itemIndex(p.Areas[i].WorkItems, itemID) < 0 {
		return domain.ErrWorkItemNotFound
	}
	return nil
}

func projectIndex(projects []domain.Project, id string) int {
	return slices.IndexFunc(projects, func(p domain.Project) bool { return p.ID == id })
}

func areaIndex(areas []domain.Area, id string) int {
	return slices.IndexFunc(areas, func(a domain.Area) bool { return a.ID == id })
}

func itemIndex(items []domain.WorkItem, id string) int {
	return slices.IndexFunc(items, func(w domain.WorkItem) bool { return w.ID == id })
}

func subWorkIndex(subs []domain.SubWork, id string) int {
	return slices.IndexFunc(subs, func(s domain.SubWork) bool { return s.ID == id })
}
