package schedule

import (
	"time"

	"home-organizer/internal/model"
)

// Window is the inclusive date range occurrences are requested for.
type Window struct {
	Start time.Time
	End   time.Time
}

// MonthWindow returns the full calendar month window for year/month.
func MonthWindow(year, month int) Window {
	first, last := MonthRange(year, month)
	return Window{Start: first, End: last}
}

// TaskWithRule pairs an active task with its recurrence rule.
type TaskWithRule struct {
	Task model.Task
	Rule model.RecurrenceRule
}

// Snapshot is the record-store state one resolution call works from:
// active people, active task+rule pairs and the overrides inside the
// requested range. Resolve never reaches outside of it.
type Snapshot struct {
	People    []model.Person
	Tasks     []TaskWithRule
	Overrides []model.Instance
}

// Occurrence is one resolved (task, date) pair, denormalized with task
// display fields, merged override status and assignee metadata.
type Occurrence struct {
	Date          string `json:"date"`
	TaskID        uint   `json:"taskId"`
	Title         string `json:"title"`
	Notes         string `json:"notes"`
	Color         string `json:"color"`
	Category      string `json:"category"`
	Priority      string `json:"priority"`
	Status        string `json:"status"`
	AssigneeID    *uint  `json:"assigneeId"`
	AssigneeName  string `json:"assigneeName"`
	AssigneeColor string `json:"assigneeColor"`
}

type overrideKey struct {
	taskID uint
	date   string
}

// Resolve expands every rule in the snapshot across the window and merges
// overrides and assignee data into the resulting occurrences. It is a
// pure function of its arguments: identical inputs produce identical
// output, ordered by day and then by task iteration order. Rules whose
// dates do not parse contribute nothing.
func Resolve(window Window, snap Snapshot) []Occurrence {
	people := make(map[uint]model.Person, len(snap.People))
	for _, p := range snap.People {
		people[p.ID] = p
	}
	overrides := make(map[overrideKey]model.Instance, len(snap.Overrides))
	for _, inst := range snap.Overrides {
		overrides[overrideKey{inst.TaskID, inst.Date}] = inst
	}

	type compiled struct {
		task    model.Task
		matcher *RuleMatcher
	}
	matchers := make([]compiled, 0, len(snap.Tasks))
	for _, pair := range snap.Tasks {
		if !pair.Task.Active {
			continue
		}
		m, err := CompileRule(pair.Rule)
		if err != nil {
			continue
		}
		matchers = append(matchers, compiled{task: pair.Task, matcher: m})
	}

	var out []Occurrence
	for day := window.Start; !day.After(window.End); day = day.AddDate(0, 0, 1) {
		for _, c := range matchers {
			if !c.matcher.Matches(day) {
				continue
			}
			out = append(out, assemble(c.task, FormatDate(day), overrides, people))
		}
	}
	return out
}

// assemble merges the per-date override and the assignee snapshot into
// the final occurrence. An assignee missing from the active-people
// snapshot keeps its id but loses name and color.
func assemble(task model.Task, date string, overrides map[overrideKey]model.Instance, people map[uint]model.Person) Occurrence {
	occ := Occurrence{
		Date:       date,
		TaskID:     task.ID,
		Title:      task.Title,
		Notes:      task.Notes,
		Color:      task.Color,
		Category:   task.Category,
		Priority:   task.Priority,
		Status:     model.StatusOpen,
		AssigneeID: task.AssigneeID,
	}

	if inst, ok := overrides[overrideKey{task.ID, date}]; ok {
		if inst.Status != "" {
			occ.Status = inst.Status
		}
		if inst.Notes != "" {
			occ.Notes = inst.Notes
		}
	}

	if task.AssigneeID != nil {
		if person, ok := people[*task.AssigneeID]; ok {
			occ.AssigneeName = person.Name
			occ.AssigneeColor = person.Color
		}
	}
	return occ
}
