package store

import "github.com/constructtrack/constructtrack-backend/internal/worktracking/domain"

// ProgressSummary counts work items per status.
type ProgressSummary struct {
	Total             int     `json:"total"`
	Pending           int     `json:"pending"`
	InProgress        int     `json:"inProgress"`
	Completed         int     `json:"completed"`
	CompletionPercent float64 `json:"completionPercent"`
	SubWorksTotal     int     `json:"subWorksTotal"`
	SubWorksCompleted int     `json:"subWorksCompleted"`
}

// Summarize tallies items. Items with an unknown status only count towards
// Total.
func Summarize(items []domain.WorkItem) ProgressSummary {
	var s ProgressSummary
	for _, w := range items {
		s.add(w)
	}
	s.finish()
	return s
}

// SummarizeProject tallies every work item across the project's areas.
func SummarizeProject(p domain.Project) ProgressSummary {
	var s ProgressSummary
	for _, a := range p.Areas {
		for _, w := range a.WorkItems {
			s.add(w)
		}
	}
	s.finish()
	return s
}

func (s *ProgressSummary) add(w domain.WorkItem) {
	s.Total++
	switch w.Status {
	case domain.StatusPending:
		s.Pending++
	case domain.StatusInProgress:
		s.InProgress++
	case domain.StatusCompleted:
		s.Completed++
	}
	for _, sw := range w.SubWorks {
		s.SubWorksTotal++
		if sw.IsCompleted {
			s.SubWorksCompleted++
		}
	}
}

func (s *ProgressSummary) finish() {
	if s.Total > 0 {
		s.CompletionPercent = float64(s.Completed) / float64(s.Total) * 100
	}
}
