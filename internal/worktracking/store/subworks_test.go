package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/constructtrack/constructtrack-backend/internal/worktracking/domain"
)

func TestAddSubWorks(t *testing.T) {
	in := fixture()

	out, subs, ok := AddSubWorks(in, "proj-1", "area-1", "item-1", []string{"  Sealing ", "", "   ", "Buffing"})

	require.True(t, ok)
	require.Len(t, subs, 2)
	assert.Equal(t, "Sealing", subs[0].Name)
	assert.Equal(t, "Buffing", subs[1].Name)
	assert.False(t, subs[0].IsCompleted)
	assert.NotEqual(t, subs[0].ID, subs[1].ID)

	w, _ := FindWorkItem(out, "proj-1", "area-1", "item-1")
	require.Len(t, w.SubWorks, 4)
	assert.Equal(t, []string{"sw-1", "sw-2", subs[0].ID, subs[1].ID},
		[]string{w.SubWorks[0].ID, w.SubWorks[1].ID, w.SubWorks[2].ID, w.SubWorks[3].ID})
	assert.Len(t, in[0].Areas[0].WorkItems[0].SubWorks, 2)
}

func TestAddSubWorks_OnlyBlankNames(t *testing.T) {
	in := fixture()

	out, subs, ok := AddSubWorks(in, "proj-1", "area-1", "item-1", []string{" ", ""})

	assert.True(t, ok)
	assert.Empty(t, subs)
	assert.Same(t, &in[0], &out[0])
}

func TestToggleSubWork(t *testing.T) {
	in := fixture()

	out := ToggleSubWork(in, "proj-1", "area-1", "item-1", "sw-2")

	w, _ := FindWorkItem(out, "proj-1", "area-1", "item-1")
	assert.True(t, w.SubWorks[1].IsCompleted)
	assert.True(t, w.SubWorks[0].IsCompleted)
	assert.False(t, in[0].Areas[0].WorkItems[0].SubWorks[1].IsCompleted)

	out = ToggleSubWork(out, "proj-1", "area-1", "item-1", "sw-2")
	w, _ = FindWorkItem(out, "proj-1", "area-1", "item-1")
	assert.False(t, w.SubWorks[1].IsCompleted)
}

func TestRemoveSubWork(t *testing.T) {
	in := fixture()

	out := RemoveSubWork(in, "proj-1", "area-1", "item-1", "sw-1")

	w, _ := FindWorkItem(out, "proj-1", "area-1", "item-1")
	require.Len(t, w.SubWorks, 1)
	assert.Equal(t, "sw-2", w.SubWorks[0].ID)
	assert.True(t, HasSubWork(in, "proj-1", "area-1", "item-1", "sw-1"))
	assert.False(t, HasSubWork(out, "proj-1", "area-1", "item-1", "sw-1"))
}

func TestSummarize(t *testing.T) {
	in := fixture()

	s := SummarizeProject(in[0])

	assert.Equal(t, 3, s.Total)
	assert.Equal(t, 1, s.Pending)
	assert.Equal(t, 1, s.InProgress)
	assert.Equal(t, 1, s.Completed)
	assert.InDelta(t, 33.333, s.CompletionPercent, 0.001)
	assert.Equal(t, 5, s.SubWorksTotal)
	assert.Equal(t, 3, s.SubWorksCompleted)

	assert.Equal(t, ProgressSummary{}, Summarize(nil))

	area := in[0].Areas[1]
	s = Summarize(area.WorkItems)
	assert.Equal(t, 2, s.Total)
	assert.Equal(t, float64(50), s.CompletionPercent)

	s = Summarize([]domain.WorkItem{{Status: "Blocked"}})
	assert.Equal(t, 1, s.Total)
	assert.Zero(t, s.Pending+s.InProgress+s.Completed)
}
