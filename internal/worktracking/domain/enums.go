package domain

// WorkCategory groups work items by trade.
type WorkCategory string

const (
	CategoryInterior   WorkCategory = "Interior"
	CategoryCivil      WorkCategory = "Civil"
	CategoryElectrical WorkCategory = "Electrical"
	CategoryPlumbing   WorkCategory = "Plumbing"
	CategoryOther      WorkCategory = "Other"
)

// Categories lists every category in display order.
var Categories = []WorkCategory{
	CategoryInterior,
	CategoryCivil,
	CategoryElectrical,
	CategoryPlumbing,
	CategoryOther,
}

// Valid reports whether c is a known category.
func (c WorkCategory) Valid() bool {
	for _, v := range Categories {
		if v == c {
			return true
		}
	}
	return false
}

// ParseCategory maps free text to a category, falling back to Other.
func ParseCategory(s string) WorkCategory {
	c := WorkCategory(s)
	if c.Valid() {
		return c
	}
	return CategoryOther
}

// UnitType is the measurement basis used to derive a quantity.
type UnitType string

const (
	UnitSqFt         UnitType = "sqft"
	UnitSqM          UnitType = "sqm"
	UnitCubicMeter   UnitType = "m³"
	UnitPieces       UnitType = "pcs"
	UnitRunningMeter UnitType = "rm"
	UnitLumpsum      UnitType = "lumpsum"
	UnitNos          UnitType = "nos"
)

var UnitTypes = []UnitType{
	UnitSqFt,
	UnitSqM,
	UnitCubicMeter,
	UnitPieces,
	UnitRunningMeter,
	UnitLumpsum,
	UnitNos,
}

func (u UnitType) Valid() bool {
	for _, v := range UnitTypes {
		if v == u {
			return true
		}
	}
	return false
}

// WorkStatus is the completion state of a WorkItem.
type WorkStatus string

const (
	StatusPending    WorkStatus = "Pending"
	StatusInProgress WorkStatus = "In Progress"
	StatusCompleted  WorkStatus = "Completed"
)

var Statuses = []WorkStatus{
	StatusPending,
	StatusInProgress,
	StatusCompleted,
}

func (s WorkStatus) Valid() bool {
	for _, v := range Statuses {
		if v == s {
			return true
		}
	}
	return false
}

// ParseStatus maps free text to a status, falling back to Pending.
func ParseStatus(s string) WorkStatus {
	st := WorkStatus(s)
	if st.Valid() {
		return st
	}
	return StatusPending
}
