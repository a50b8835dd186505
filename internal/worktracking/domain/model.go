package domain

// Project is the root of a work-tracking tree. It owns its Areas exclusively.
type Project struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Areas []Area `json:"areas"`
}

// Area is a physical zone of a project (a floor, a room) holding work items.
// ImageURL is an opaque reference to a captured or generated picture.
type Area struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	ImageURL  string     `json:"imageUrl,omitempty"`
	WorkItems []WorkItem `json:"workItems"`
}

// WorkItem is a billable unit of construction work.
//
// Quantity is derived from the dimensional fields and UnitType and must only
// be written by the store after running the quantity engine.
type WorkItem struct {
	ID               string       `json:"id"`
	Name             string       `json:"name"`
	Category         WorkCategory `json:"category"`
	SubWorks         []SubWork    `json:"subWorks"`
	DesignPreference string       `json:"designPreference"`
	Color            string       `json:"color"`
	ColorFileName    string       `json:"colorFileName,omitempty"`
	Length           float64      `json:"length"`
	Width            float64      `json:"width"`
	Depth            float64      `json:"depth"`
	Units            float64      `json:"units"`
	UnitMultiplier   *float64     `json:"unitMultiplier,omitempty"`
	UnitType         UnitType     `json:"unitType"`
	Quantity         float64      `json:"quantity"`
	Status           WorkStatus   `json:"status"`
}

// SubWork is an uncosted checklist step of a WorkItem.
type SubWork struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	IsCompleted bool   `json:"isCompleted"`
}

// AreaPatch carries the Area fields to merge; nil fields are left as-is.
type AreaPatch struct {
	Name     *string `json:"name,omitempty"`
	ImageURL *string `json:"imageUrl,omitempty"`
}

// ItemProposal is a work item suggested by an external generator.
// Missing fields are filled with defaults when folded into an Area.
type ItemProposal struct {
	Name     string       `json:"name"`
	Category WorkCategory `json:"category,omitempty"`
}
