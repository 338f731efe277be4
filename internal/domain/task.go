// Package domain contains the core task and lane types shared by the board,
// the task store clients and the task service.
package domain

import "time"

// Task is a single card on the board. The board only ever reads tasks and
// patches their Status.
type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Status      Lane      `json:"status"`
	Priority    Priority  `json:"priority"`
	Type        TaskType  `json:"type"`
	Assignee    string    `json:"assignee,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Priority represents task priority (0 = highest)
type Priority int

const (
	P0 Priority = iota // Critical
	P1                 // High
	P2                 // Medium
	P3                 // Low
	P4                 // Backlog
)

// String returns priority as string
func (p Priority) String() string {
	if p < P0 || p > P4 {
		return "P?"
	}
	return []string{"P0", "P1", "P2", "P3", "P4"}[p]
}

// TaskType represents the type of task
type TaskType string

const (
	TypeTask    TaskType = "task"
	TypeBug     TaskType = "bug"
	TypeFeature TaskType = "feature"
	TypeEpic    TaskType = "epic"
	TypeChore   TaskType = "chore"
)

// Short returns single character representation
func (t TaskType) Short() string {
	switch t {
	case TypeTask:
		return "T"
	case TypeBug:
		return "B"
	case TypeFeature:
		return "F"
	case TypeEpic:
		return "E"
	case TypeChore:
		return "C"
	default:
		return "?"
	}
}

// String returns the display string
func (t TaskType) String() string {
	return string(t)
}

// FindTask returns the task with the given id.
func FindTask(tasks []Task, id string) (Task, bool) {
	for _, t := range tasks {
		if t.ID == id {
			return t, true
		}
	}
	return Task{}, false
}
