package domain

import (
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"
)

// Filter narrows a task list. It is the filter criteria passed to the task
// store when fetching. Uses AND logic between fields, OR logic within Lanes.
type Filter struct {
	Query    string // fuzzy match against title and ID
	Lanes    []Lane
	Assignee string
}

// IsActive returns true if any filter is active
func (f Filter) IsActive() bool {
	return strings.TrimSpace(f.Query) != "" || len(f.Lanes) > 0 || f.Assignee != ""
}

// Apply filters a list of tasks. Input order is preserved.
func (f Filter) Apply(tasks []Task) []Task {
	if !f.IsActive() {
		return tasks
	}

	result := make([]Task, 0, len(tasks))
	for _, task := range tasks {
		if f.matchesFields(task) {
			result = append(result, task)
		}
	}

	query := strings.TrimSpace(f.Query)
	if query == "" {
		return result
	}

	matches := fuzzy.FindFrom(query, taskSource(result))
	idx := make([]int, 0, len(matches))
	for _, m := range matches {
		idx = append(idx, m.Index)
	}
	sort.Ints(idx)

	out := make([]Task, 0, len(idx))
	for _, i := range idx {
		out = append(out, result[i])
	}
	return out
}

// Matches returns true if the task passes all active filters
func (f Filter) Matches(t Task) bool {
	return len(f.Apply([]Task{t})) == 1
}

func (f Filter) matchesFields(t Task) bool {
	if len(f.Lanes) > 0 {
		found := false
		for _, l := range f.Lanes {
			if l == t.Status {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.Assignee != "" && !strings.EqualFold(f.Assignee, t.Assignee) {
		return false
	}
	return true
}

// taskSource adapts tasks to fuzzy.Source
type taskSource []Task

func (s taskSource) String(i int) string {
	return s[i].ID + " " + s[i].Title
}

func (s taskSource) Len() int {
	return len(s)
}
