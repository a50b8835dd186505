package store

import "github.com/constructtrack/constructtrack-backend/internal/worktracking/domain"

// DemoProjects returns a fresh copy of the sample workspace shown to new
// owners when demo seeding is on.
func DemoProjects() []domain.Project {
	return []domain.Project{
		{
			ID:   "proj-1",
			Name: "Downtown Highrise",
			Areas: []domain.Area{
				{
					ID:   "area-1",
					Name: "First Floor - Lobby",
					WorkItems: []domain.WorkItem{
						{
							ID: "item-1", Name: "Marble Flooring", Category: domain.CategoryInterior,
							SubWorks: []domain.SubWork{
								{ID: "sw-1", Name: "Grinding", IsCompleted: true},
								{ID: "sw-2", Name: "Polishing"},
							},
							DesignPreference: "Italian Statuario marble", Color: "White with grey veins",
							Length: 100, Width: 50, Units: 1, UnitType: domain.UnitSqFt, Quantity: 5000,
							Status: domain.StatusInProgress,
						},
					},
				},
				{
					ID:   "area-2",
					Name: "Second Floor - Office Space",
					WorkItems: []domain.WorkItem{
						{
							ID: "item-2", Name: "Electrical Wiring", Category: domain.CategoryElectrical,
							SubWorks: []domain.SubWork{
								{ID: "sw-3", Name: "Conduit laying", IsCompleted: true},
								{ID: "sw-4", Name: "Wire pulling", IsCompleted: true},
							},
							DesignPreference: "Standard copper wiring", Color: "N/A",
							Length: 500, UnitType: domain.UnitRunningMeter, Quantity: 500,
							Status: domain.StatusCompleted,
						},
						{
							ID: "item-3", Name: "Drywall Installation", Category: domain.CategoryCivil,
							SubWorks:         []domain.SubWork{},
							DesignPreference: "Fire-rated gypsum board", Color: "Off-white",
							Length: 200, Width: 8, Units: 1, UnitType: domain.UnitSqFt, Quantity: 1600,
							Status: domain.StatusPending,
						},
					},
				},
			},
		},
	}
}
