// Package board renders the kanban board and measures where everything on it
// sits, so pointer events can be mapped back to columns and cards.
package board

import (
	"github.com/riordanpawley/laneboard/internal/domain"
	"github.com/riordanpawley/laneboard/internal/drag"
)

// Column represents a kanban column with tasks
type Column struct {
	Lane  domain.Lane
	Title string
	Tasks []domain.Task
}

// Cursor represents the current cursor position
type Cursor struct {
	Column int // Column index into the visible columns
	Task   int // Task index within column
}

// View is everything Render needs. It is a snapshot; Render never changes
// any of it.
type View struct {
	Columns []Column
	Cursor  Cursor
	// Session is the running drag gesture, nil when idle.
	Session *drag.Session
	// Pending holds ids of tasks whose move is still in flight.
	Pending map[string]bool
	Width   int
	Height  int
}

// locate returns the column and card index of taskID in columns.
func locate(columns []Column, taskID string) (col, card int, ok bool) {
	for i, c := range columns {
		for j, t := range c.Tasks {
			if t.ID == taskID {
				return i, j, true
			}
		}
	}
	return 0, 0, false
}
