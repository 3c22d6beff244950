package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"home-organizer/internal/model"
)

func uintPtr(v uint) *uint { return &v }

func weeklySnapshot() Snapshot {
	return Snapshot{
		People: []model.Person{
			{ID: 1, Name: "Alex", Color: "#ff0000", Active: true},
		},
		Tasks: []TaskWithRule{
			{
				Task: model.Task{ID: 5, Title: "Take out trash", Notes: "bins by the door", AssigneeID: uintPtr(1), Category: "kitchen", Active: true},
				Rule: model.RecurrenceRule{TaskID: 5, Freq: FreqWeekly, Interval: 1, ByWeekday: "mon,wed", StartDate: "2024-01-01"},
			},
		},
	}
}

func TestResolveWeeklyMonth(t *testing.T) {
	occs := Resolve(MonthWindow(2024, 1), weeklySnapshot())

	require.Len(t, occs, 10)
	assert.Equal(t, "2024-01-01", occs[0].Date)
	assert.Equal(t, "2024-01-31", occs[9].Date)
	for _, occ := range occs {
		assert.Equal(t, uint(5), occ.TaskID)
		assert.Equal(t, "Take out trash", occ.Title)
		assert.Equal(t, model.StatusOpen, occ.Status)
		assert.Equal(t, "Alex", occ.AssigneeName)
		assert.Equal(t, "#ff0000", occ.AssigneeColor)
	}
}

func TestResolveMergesOverride(t *testing.T) {
	snap := weeklySnapshot()
	snap.Overrides = []model.Instance{
		{TaskID: 5, Date: "2024-01-03", Status: model.StatusDone, Notes: "done early"},
	}

	occs := Resolve(MonthWindow(2024, 1), snap)
	require.Len(t, occs, 10)

	byDate := make(map[string]Occurrence)
	for _, occ := range occs {
		byDate[occ.Date] = occ
	}
	assert.Equal(t, model.StatusDone, byDate["2024-01-03"].Status)
	assert.Equal(t, "done early", byDate["2024-01-03"].Notes)
	// Other dates keep the rule defaults.
	assert.Equal(t, model.StatusOpen, byDate["2024-01-01"].Status)
	assert.Equal(t, "bins by the door", byDate["2024-01-01"].Notes)
}

func TestResolveIsIdempotent(t *testing.T) {
	snap := weeklySnapshot()
	snap.Overrides = []model.Instance{{TaskID: 5, Date: "2024-01-03", Status: model.StatusDone}}

	first := Resolve(MonthWindow(2024, 1), snap)
	second := Resolve(MonthWindow(2024, 1), snap)
	assert.Equal(t, first, second)
}

func TestResolveSkipsInactiveTasks(t *testing.T) {
	snap := weeklySnapshot()
	snap.Tasks[0].Task.Active = false

	assert.Empty(t, Resolve(MonthWindow(2024, 1), snap))
}

func TestResolveInactiveAssigneeKeepsID(t *testing.T) {
	snap := weeklySnapshot()
	// The assignee is no longer in the active-people snapshot.
	snap.People = nil

	occs := Resolve(MonthWindow(2024, 1), snap)
	require.NotEmpty(t, occs)
	require.NotNil(t, occs[0].AssigneeID)
	assert.Equal(t, uint(1), *occs[0].AssigneeID)
	assert.Empty(t, occs[0].AssigneeName)
	assert.Empty(t, occs[0].AssigneeColor)
}

func TestResolveSkipsUnparseableRules(t *testing.T) {
	snap := weeklySnapshot()
	snap.Tasks = append(snap.Tasks, TaskWithRule{
		Task: model.Task{ID: 6, Title: "Broken", Active: true},
		Rule: model.RecurrenceRule{TaskID: 6, Freq: FreqDaily, StartDate: "garbage"},
	})

	occs := Resolve(MonthWindow(2024, 1), snap)
	for _, occ := range occs {
		assert.NotEqual(t, uint(6), occ.TaskID)
	}
}

func TestResolveOrderedByDayThenTask(t *testing.T) {
	snap := weeklySnapshot()
	snap.Tasks = append(snap.Tasks, TaskWithRule{
		Task: model.Task{ID: 7, Title: "Water plants", Active: true},
		Rule: model.RecurrenceRule{TaskID: 7, Freq: FreqDaily, Interval: 1, StartDate: "2024-01-01"},
	})

	occs := Resolve(MonthWindow(2024, 1), snap)
	last := ""
	for _, occ := range occs {
		assert.GreaterOrEqual(t, occ.Date, last)
		last = occ.Date
	}
	// Both tasks fall on Jan 1; the pair order is task 5 then task 7.
	assert.Equal(t, uint(5), occs[0].TaskID)
	assert.Equal(t, uint(7), occs[1].TaskID)
}
