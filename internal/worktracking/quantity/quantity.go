// Package quantity derives a work item's billable quantity from its
// dimensions and unit type.
package quantity

import "github.com/constructtrack/constructtrack-backend/internal/worktracking/domain"

// Inputs are the dimensional fields the engine reads.
// A nil UnitMultiplier means 1.
type Inputs struct {
	Length         float64
	Width          float64
	Depth          float64
	Units          float64
	UnitMultiplier *float64
	UnitType       domain.UnitType
}

// Compute returns the quantity for in. It never fails: unknown unit types
// yield 0 and negative or zero inputs propagate arithmetically.
func Compute(in Inputs) float64 {
	switch in.UnitType {
	case domain.UnitSqFt, domain.UnitSqM:
		return in.Length * in.Width * in.Units
	case domain.UnitCubicMeter:
		return in.Length * in.Width * in.Depth
	case domain.UnitPieces:
		return in.Units * multiplier(in.UnitMultiplier)
	case domain.UnitRunningMeter:
		return in.Length
	case domain.UnitLumpsum:
		return 1
	case domain.UnitNos:
		return in.Length * in.Width * in.Depth * in.Units
	default:
		return 0
	}
}

// InputsOf extracts the engine inputs from a work item.
func InputsOf(item domain.WorkItem) Inputs {
	return Inputs{
		Length:         item.Length,
		Width:          item.Width,
		Depth:          item.Depth,
		Units:          item.Units,
		UnitMultiplier: item.UnitMultiplier,
		UnitType:       item.UnitType,
	}
}

// ForItem computes the quantity for item's current fields.
func ForItem(item domain.WorkItem) float64 {
	return Compute(InputsOf(item))
}

// Apply returns item with Quantity recomputed.
func Apply(item domain.WorkItem) domain.WorkItem {
	item.Quantity = ForItem(item)
	return item
}

// A zero multiplier is treated as absent, same as the editor form does.
func multiplier(m *float64) float64 {
	if m == nil || *m == 0 {
		return 1
	}
	return *m
}
