package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func filterFixture() []Task {
	return []Task{
		{ID: "lb-1", Title: "Implement user authentication", Status: LaneTodo, Assignee: "ana"},
		{ID: "lb-2", Title: "Fix login redirect bug", Status: LaneInProgress, Assignee: "ben"},
		{ID: "lb-3", Title: "Add password reset flow", Status: LaneTodo},
		{ID: "lb-4", Title: "Configure monitoring", Status: LaneDone, Assignee: "ana"},
	}
}

func ids(tasks []Task) []string {
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.ID)
	}
	return out
}

func TestFilter_IsActive(t *testing.T) {
	assert.False(t, Filter{}.IsActive())
	assert.False(t, Filter{Query: "   "}.IsActive())
	assert.True(t, Filter{Query: "auth"}.IsActive())
	assert.True(t, Filter{Lanes: []Lane{LaneDone}}.IsActive())
	assert.True(t, Filter{Assignee: "ana"}.IsActive())
}

func TestFilter_Apply(t *testing.T) {
	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{"inactive filter keeps everything", Filter{}, []string{"lb-1", "lb-2", "lb-3", "lb-4"}},
		{"single lane", Filter{Lanes: []Lane{LaneTodo}}, []string{"lb-1", "lb-3"}},
		{"lanes are OR'ed", Filter{Lanes: []Lane{LaneTodo, LaneDone}}, []string{"lb-1", "lb-3", "lb-4"}},
		{"assignee is case-insensitive", Filter{Assignee: "ANA"}, []string{"lb-1", "lb-4"}},
		{"lane AND assignee", Filter{Lanes: []Lane{LaneDone}, Assignee: "ana"}, []string{"lb-4"}},
		{"fuzzy query", Filter{Query: "redir"}, []string{"lb-2"}},
		{"fuzzy query keeps input order", Filter{Query: "lb"}, []string{"lb-1", "lb-2", "lb-3", "lb-4"}},
		{"query matches id", Filter{Query: "lb-3"}, []string{"lb-3"}},
		{"query with no hits", Filter{Query: "zzzz"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.filter.Apply(filterFixture())
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestFilter_Matches(t *testing.T) {
	f := Filter{Lanes: []Lane{LaneTodo}}
	assert.True(t, f.Matches(Task{ID: "x", Status: LaneTodo}))
	assert.False(t, f.Matches(Task{ID: "x", Status: LaneDone}))
}
