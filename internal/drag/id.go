// Package drag turns pointer gestures into drag sessions over board columns
// and task cards. It knows nothing about persistence or the task store; the
// kanban engine decides what a finished session means.
package drag

import (
	"strings"

	"github.com/riordanpawley/laneboard/internal/domain"
)

// ID identifies a draggable or droppable element on the board. Column and
// card ids live in separate namespaces so a task may be named like a lane.
type ID string

const (
	lanePrefix = "lane:"
	taskPrefix = "task:"
)

// LaneID returns the element id of a column
func LaneID(lane domain.Lane) ID {
	return ID(lanePrefix + string(lane))
}

// TaskID returns the element id of a task card
func TaskID(taskID string) ID {
	return ID(taskPrefix + taskID)
}

// Lane returns the lane a column id names
func (id ID) Lane() (domain.Lane, bool) {
	s, ok := strings.CutPrefix(string(id), lanePrefix)
	if !ok {
		return "", false
	}
	return domain.ParseLane(s)
}

// Task returns the task id a card id names
func (id ID) Task() (string, bool) {
	s, ok := strings.CutPrefix(string(id), taskPrefix)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}
