// Package store implements the project tree operations.
//
// Every operation takes the current collection and returns a new one; the
// input is never mutated. Only the path from the root to the touched node is
// reallocated, untouched Projects, Areas and WorkItems keep their backing
// arrays. An operation that names an id absent from the collection returns
// the input slice unchanged.
package store

import (
	"slices"

	"github.com/samber/lo"

	"github.com/constructtrack/constructtrack-backend/internal/worktracking/domain"
	"github.com/constructtrack/constructtrack-backend/internal/worktracking/quantity"
)

// AddProject appends a new empty project named name.
func AddProject(projects []domain.Project, name string) ([]domain.Project, domain.Project) {
	p := domain.Project{
		ID:    domain.NewID(domain.ProjectIDPrefix),
		Name:  name,
		Areas: []domain.Area{},
	}
	return append(slices.Clip(projects), p), p
}

// RenameProject replaces the name of the matching project.
func RenameProject(projects []domain.Project, projectID, name string) []domain.Project {
	return updateProject(projects, projectID, func(p domain.Project) domain.Project {
		p.Name = name
		return p
	})
}

// RemoveProject drops the matching project together with everything under it.
func RemoveProject(projects []domain.Project, projectID string) []domain.Project {
	if projectIndex(projects, projectID) < 0 {
		return projects
	}
	return lo.Filter(projects, func(p domain.Project, _ int) bool {
		return p.ID != projectID
	})
}

// AddArea appends a new empty area to the matching project. The returned
// bool is false when the project does not exist.
func AddArea(projects []domain.Project, projectID, name string) ([]domain.Project, domain.Area, bool) {
	if projectIndex(projects, projectID) < 0 {
		return projects, domain.Area{}, false
	}
	a := domain.Area{
		ID:        domain.NewID(domain.AreaIDPrefix),
		Name:      name,
		WorkItems: []domain.WorkItem{},
	}
	out := updateProject(projects, projectID, func(p domain.Project) domain.Project {
		p.Areas = append(slices.Clip(p.Areas), a)
		return p
	})
	return out, a, true
}

// UpdateArea merges patch into the matching area. Work items are untouched.
func UpdateArea(projects []domain.Project, projectID, areaID string, patch domain.AreaPatch) []domain.Project {
	return updateArea(projects, projectID, areaID, func(a domain.Area) domain.Area {
		if patch.Name != nil {
			a.Name = *patch.Name
		}
		if patch.ImageURL != nil {
			a.ImageURL = *patch.ImageURL
		}
		return a
	})
}

// AddWorkItem appends item to the matching area. A missing or clashing id
// is replaced with a fresh one and the quantity is recomputed.
func AddWorkItem(projects []domain.Project, projectID, areaID string, item domain.WorkItem) ([]domain.Project, domain.WorkItem, bool) {
	area, ok := FindArea(projects, projectID, areaID)
	if !ok {
		return projects, domain.WorkItem{}, false
	}
	if item.ID == "" || itemIndex(area.WorkItems, item.ID) >= 0 {
		item.ID = domain.NewID(domain.WorkItemIDPrefix)
	}
	item = normalizeItem(item)

	out := updateArea(projects, projectID, areaID, func(a domain.Area) domain.Area {
		a.WorkItems = append(slices.Clip(a.WorkItems), item)
		return a
	})
	return out, item, true
}

// AddWorkItems completes each proposal with defaults and appends the
// resulting items, in order, to the matching area.
func AddWorkItems(projects []domain.Project, projectID, areaID string, proposals []domain.ItemProposal) ([]domain.Project, []domain.WorkItem, bool) {
	if _, ok := FindArea(projects, projectID, areaID); !ok {
		return projects, nil, false
	}
	items := lo.Map(proposals, func(p domain.ItemProposal, _ int) domain.WorkItem {
		return ItemFromProposal(p)
	})
	if len(items) == 0 {
		return projects, items, true
	}

	out := updateArea(projects, projectID, areaID, func(a domain.Area) domain.Area {
		a.WorkItems = append(slices.Clip(a.WorkItems), items...)
		return a
	})
	return out, items, true
}

// UpdateWorkItem replaces the work item with item.ID in place, keeping its
// position, and recomputes its quantity.
func UpdateWorkItem(projects []domain.Project, projectID, areaID string, item domain.WorkItem) []domain.Project {
	item = normalizeItem(item)
	return updateItem(projects, projectID, areaID, item.ID, func(domain.WorkItem) domain.WorkItem {
		return item
	})
}

// RemoveWorkItem drops the matching work item from its area.
func RemoveWorkItem(projects []domain.Project, projectID, areaID, itemID string) []domain.Project {
	if _, ok := FindWorkItem(projects, projectID, areaID, itemID); !ok {
		return projects
	}
	return updateArea(projects, projectID, areaID, func(a domain.Area) domain.Area {
		a.WorkItems = lo.Filter(a.WorkItems, func(w domain.WorkItem, _ int) bool {
			return w.ID != itemID
		})
		return a
	})
}

// SetWorkItemColorImage stores an image reference verbatim as the item's
// color swatch.
func SetWorkItemColorImage(projects []domain.Project, projectID, areaID, itemID, ref, fileName string) []domain.Project {
	return updateItem(projects, projectID, areaID, itemID, func(w domain.WorkItem) domain.WorkItem {
		w.Color = ref
		w.ColorFileName = fileName
		return w
	})
}

// ItemFromProposal builds a complete work item from a generator proposal.
func ItemFromProposal(p domain.ItemProposal) domain.WorkItem {
	name := p.Name
	if name == "" {
		name = "Unnamed Work"
	}
	one := 1.0
	return quantity.Apply(domain.WorkItem{
		ID:             domain.NewID(domain.WorkItemIDPrefix),
		Name:           name,
		Category:       domain.ParseCategory(string(p.Category)),
		SubWorks:       []domain.SubWork{},
		UnitMultiplier: &one,
		UnitType:       domain.UnitLumpsum,
		Status:         domain.StatusPending,
	})
}

// normalizeItem applies itemDefaults and recomputes the quantity.
// Caller-supplied quantities are always discarded.
func normalizeItem(item domain.WorkItem) domain.WorkItem {
	item, _ = itemDefaults(item)
	return quantity.Apply(item)
}

// itemDefaults maps category and status onto their enums (Other and Pending
// for anything unknown) and gives sub-works unique ids. The quantity is left
// alone. The bool reports whether anything changed.
func itemDefaults(item domain.WorkItem) (domain.WorkItem, bool) {
	changed := false
	if c := domain.ParseCategory(string(item.Category)); c != item.Category {
		item.Category = c
		changed = true
	}
	if st := domain.ParseStatus(string(item.Status)); st != item.Status {
		item.Status = st
		changed = true
	}
	if item.SubWorks == nil {
		item.SubWorks = []domain.SubWork{}
		return item, true
	}
	if subs, fixed := withSubWorkIDs(item.SubWorks); fixed {
		item.SubWorks = subs
		changed = true
	}
	return item, changed
}

func withSubWorkIDs(subs []domain.SubWork) ([]domain.SubWork, bool) {
	seen := make(map[string]bool, len(subs))
	needsCopy := false
	for _, s := range subs {
		if s.ID == "" || seen[s.ID] {
			needsCopy = true
			break
		}
		seen[s.ID] = true
	}
	if !needsCopy {
		return subs, false
	}

	clear(seen)
	out := make([]domain.SubWork, len(subs))
	for i, s := range subs {
		if s.ID == "" || seen[s.ID] {
			s.ID = domain.NewID(domain.SubWorkIDPrefix)
		}
		seen[s.ID] = true
		out[i] = s
	}
	return out, true
}

func updateProject(projects []domain.Project, projectID string, fn func(domain.Project) domain.Project) []domain.Project {
	i := projectIndex(projects, projectID)
	if i < 0 {
		return projects
	}
	out := slices.Clone(projects)
	out[i] = fn(projects[i])
	return out
}

func updateArea(projects []domain.Project, projectID, areaID string, fn func(domain.Area) domain.Area) []domain.Project {
	p, ok := FindProject(projects, projectID)
	if !ok || areaIndex(p.Areas, areaID) < 0 {
		return projects
	}
	return updateProject(projects, projectID, func(p domain.Project) domain.Project {
		i := areaIndex(p.Areas, areaID)
		areas := slices.Clone(p.Areas)
		areas[i] = fn(p.Areas[i])
		p.Areas = areas
		return p
	})
}

func updateItem(projects []domain.Project, projectID, areaID, itemID string, fn func(domain.WorkItem) domain.WorkItem) []domain.Project {
	if _, ok := FindWorkItem(projects, projectID, areaID, itemID); !ok {
		return projects
	}
	return updateArea(projects, projectID, areaID, func(a domain.Area) domain.Area {
		i := itemIndex(a.WorkItems, itemID)
		items := slices.Clone(a.WorkItems)
		items[i] = fn(a.WorkItems[i])
		a.WorkItems = items
		return a
	})
}
