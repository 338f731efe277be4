package taskdb

import (
	"context"
	"time"

	"github.com/riordanpawley/laneboard/internal/domain"
)

// demoTasks fill an empty database so a fresh board has something to drag.
var demoTasks = []domain.Task{
	{ID: "LB-1", Title: "Sketch the lane layout", Status: domain.LaneDone, Priority: domain.P2, Type: domain.TypeTask, Assignee: "ana"},
	{ID: "LB-2", Title: "Persist column order", Status: domain.LaneInReview, Priority: domain.P1, Type: domain.TypeFeature, Assignee: "ben"},
	{ID: "LB-3", Title: "Roll back failed moves", Status: domain.LaneInProgress, Priority: domain.P0, Type: domain.TypeFeature, Assignee: "ana"},
	{ID: "LB-4", Title: "Cards flicker on refetch", Status: domain.LaneTodo, Priority: domain.P1, Type: domain.TypeBug},
	{ID: "LB-5", Title: "Hide empty lanes", Status: domain.LaneTodo, Priority: domain.P3, Type: domain.TypeFeature, Assignee: "chris"},
	{ID: "LB-6", Title: "Keyboard drag and drop", Status: domain.LaneBacklog, Priority: domain.P2, Type: domain.TypeEpic},
	{ID: "LB-7", Title: "Table view sorting", Status: domain.LaneBacklog, Priority: domain.P3, Type: domain.TypeTask},
	{ID: "LB-8", Title: "Upgrade terminal deps", Status: domain.LanePaused, Priority: domain.P4, Type: domain.TypeChore, Assignee: "ben"},
	{ID: "LB-9", Title: "Mouse support in tmux", Status: domain.LaneCancelled, Priority: domain.P4, Type: domain.TypeTask},
}

// Seed inserts the demo tasks when the database is empty and returns how many
// were added.
func (d *DB) Seed(ctx context.Context) (int, error) {
	n, err := d.Count(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		return 0, nil
	}

	base := d.now().Add(-time.Duration(len(demoTasks)) * time.Hour)
	for i, t := range demoTasks {
		t.CreatedAt = base.Add(time.Duration(i) * time.Hour)
		t.UpdatedAt = t.CreatedAt
		if err := d.Insert(ctx, t); err != nil {
			return i, err
		}
	}
	return len(demoTasks), nil
}
