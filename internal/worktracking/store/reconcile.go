package store

import (
	"math"
	"slices"

	"github.com/constructtrack/constructtrack-backend/internal/worktracking/domain"
	"github.com/constructtrack/constructtrack-backend/internal/worktracking/quantity"
)

// QuantityMismatch describes a stored quantity that disagrees with the engine.
type QuantityMismatch struct {
	ProjectID string  `json:"projectId"`
	AreaID    string  `json:"areaId"`
	ItemID    string  `json:"itemId"`
	Stored    float64 `json:"stored"`
	Expected  float64 `json:"expected"`
}

const quantityTolerance = 1e-9

// CheckQuantities lists every work item whose stored quantity is not the
// engine output for its own fields.
func CheckQuantities(projects []domain.Project) []QuantityMismatch {
	var out []QuantityMismatch
	for _, p := range projects {
		for _, a := range p.Areas {
			for _, w := range a.WorkItems {
				want := quantity.ForItem(w)
				if !sameQuantity(w.Quantity, want) {
					out = append(out, QuantityMismatch{
						ProjectID: p.ID,
						AreaID:    a.ID,
						ItemID:    w.ID,
						Stored:    w.Quantity,
						Expected:  want,
					})
				}
			}
		}
	}
	return out
}

// ReconcileQuantities rewrites every inconsistent quantity through the
// normal update path and returns how many items changed. A consistent
// collection is returned as-is.
func ReconcileQuantities(projects []domain.Project) ([]domain.Project, int) {
	mismatches := CheckQuantities(projects)
	for _, m := range mismatches {
		w, _ := FindWorkItem(projects, m.ProjectID, m.AreaID, m.ItemID)
		projects = UpdateWorkItem(projects, m.ProjectID, m.AreaID, w)
	}
	return projects, len(mismatches)
}

// Normalize prepares a collection that did not come from the store
// operations: nil child slices become empty, category and status are mapped
// onto their enums, and missing or duplicate ids are replaced (projects
// across the collection, areas within a project, items within an area,
// sub-works within an item). Quantities are left for CheckQuantities.
// Untouched levels are shared.
func Normalize(projects []domain.Project) []domain.Project {
	if projects == nil {
		return []domain.Project{}
	}
	seen := make(map[string]bool, len(projects))
	var out []domain.Project
	for i, p := range projects {
		np, changed := normalizeProject(p)
		if p.ID == "" || seen[p.ID] {
			np.ID = domain.NewID(domain.ProjectIDPrefix)
			changed = true
		}
		seen[np.ID] = true
		if !changed {
			continue
		}
		if out == nil {
			out = slices.Clone(projects)
		}
		out[i] = np
	}
	if out == nil {
		return projects
	}
	return out
}

func normalizeProject(p domain.Project) (domain.Project, bool) {
	if p.Areas == nil {
		p.Areas = []domain.Area{}
		return p, true
	}
	seen := make(map[string]bool, len(p.Areas))
	var areas []domain.Area
	for i, a := range p.Areas {
		na, changed := normalizeArea(a)
		if a.ID == "" || seen[a.ID] {
			na.ID = domain.NewID(domain.AreaIDPrefix)
			changed = true
		}
		seen[na.ID] = true
		if !changed {
			continue
		}
		if areas == nil {
			areas = slices.Clone(p.Areas)
		}
		areas[i] = na
	}
	if areas == nil {
		return p, false
	}
	p.Areas = areas
	return p, true
}

func normalizeArea(a domain.Area) (domain.Area, bool) {
	if a.WorkItems == nil {
		a.WorkItems = []domain.WorkItem{}
		return a, true
	}
	seen := make(map[string]bool, len(a.WorkItems))
	var items []domain.WorkItem
	for i, w := range a.WorkItems {
		nw, changed := itemDefaults(w)
		if w.ID == "" || seen[w.ID] {
			nw.ID = domain.NewID(domain.WorkItemIDPrefix)
			changed = true
		}
		seen[nw.ID] = true
		if !changed {
			continue
		}
		if items == nil {
			items = slices.Clone(a.WorkItems)
		}
		items[i] = nw
	}
	if items == nil {
		return a, false
	}
	a.WorkItems = items
	return a, true
}

func sameQuantity(a, b float64) bool {
	if a == b {
		return true
	}
	return math.Abs(a-b) <= quantityTolerance*math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
}
