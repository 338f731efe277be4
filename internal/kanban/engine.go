// Package kanban reconciles drag gestures on the board with the column
// layout, the optimistic overlay and the remote task store.
//
// Every method except Dispatch must be called from the UI goroutine.
// Dispatch performs the blocking store call and touches no engine state, so
// it can run inside a tea.Cmd.
package kanban

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/riordanpawley/laneboard/internal/domain"
	"github.com/riordanpawley/laneboard/internal/drag"
	"github.com/riordanpawley/laneboard/internal/layout"
	"github.com/riordanpawley/laneboard/internal/optimistic"
	"github.com/riordanpawley/laneboard/internal/types"
)

// FallbackMoveError is shown when a failed move carries no usable message.
const FallbackMoveError = "Failed to move task"

// TaskUpdater is the task store's write side.
type TaskUpdater interface {
	UpdateStatus(ctx context.Context, taskID string, lane domain.Lane) error
}

// Notifier receives fire-and-forget user notifications.
type Notifier interface {
	Notify(level types.ToastLevel, message string)
}

// Column is one rendered lane with the tasks it shows.
type Column struct {
	Lane  domain.Lane
	Label string
	Tasks []domain.Task
}

// Relocation is a task move that has been overlaid and still needs its
// remote call.
type Relocation struct {
	Ticket optimistic.Ticket
	TaskID string
	From   domain.Lane
	To     domain.Lane
}

// Resolution is the outcome of dispatching a Relocation.
type Resolution struct {
	Relocation Relocation
	Err        error
}

// Engine is the board's state: authoritative tasks, the overlay, the column
// layout and the running drag session.
type Engine struct {
	tasks    []domain.Task
	columns  *layout.Columns
	drag     drag.Controller
	patch    *optimistic.Patch
	updater  TaskUpdater
	notifier Notifier
	logger   logrus.FieldLogger
}

// NewEngine creates an engine over columns. updater and notifier are
// required.
func NewEngine(columns *layout.Columns, updater TaskUpdater, notifier Notifier, logger logrus.FieldLogger) *Engine {
	return &Engine{
		columns:  columns,
		patch:    optimistic.New(),
		updater:  updater,
		notifier: notifier,
		logger:   logger,
	}
}

// Mark stamps the start of a refetch. Pass the result to SetTasks.
func (e *Engine) Mark() uint64 {
	return e.patch.Mark()
}

// SetTasks replaces the authoritative task list with a refetch issued at
// mark. Overlays the new data already reflects are dropped. A task drag
// whose task vanished is cancelled.
func (e *Engine) SetTasks(tasks []domain.Task, mark uint64) {
	e.tasks = make([]domain.Task, len(tasks))
	copy(e.tasks, tasks)
	e.patch.Reconcile(e.tasks, mark)

	if s, ok := e.drag.Current(); ok && s.Kind == drag.KindTask {
		if _, ok := domain.FindTask(e.tasks, s.TaskID); !ok {
			e.drag.End()
		}
	}
}

// Tasks returns the task list with provisional lanes applied.
func (e *Engine) Tasks() []domain.Task {
	return e.patch.Overlay(e.tasks)
}

// Layout exposes the column order and visibility state.
func (e *Engine) Layout() *layout.Columns {
	return e.columns
}

// Columns groups the rendered tasks into the visible columns, in column
// order. Tasks keep their relative order from the task list.
func (e *Engine) Columns() []Column {
	lanes := e.columns.VisibleOrder()
	byLane := make(map[domain.Lane][]domain.Task, len(lanes))
	for _, t := range e.Tasks() {
		byLane[t.Status] = append(byLane[t.Status], t)
	}

	out := make([]Column, 0, len(lanes))
	for _, lane := range lanes {
		out = append(out, Column{Lane: lane, Label: lane.Label(), Tasks: byLane[lane]})
	}
	return out
}

// Pending reports whether a move for taskID is in flight
func (e *Engine) Pending(taskID string) bool {
	return e.patch.Pending(taskID) > 0
}

// HasLane reports whether lane is shown on the board
func (e *Engine) HasLane(lane domain.Lane) bool {
	return e.columns.Visible(lane)
}

// TaskLane returns the lane taskID renders in
func (e *Engine) TaskLane(taskID string) (domain.Lane, bool) {
	t, ok := domain.FindTask(e.tasks, taskID)
	if !ok {
		return "", false
	}
	if lane, ok := e.patch.Lane(taskID); ok {
		return lane, true
	}
	return t.Status, true
}

// Session returns the running drag session, if any
func (e *Engine) Session() (drag.Session, bool) {
	return e.drag.Current()
}

// Dragging reports whether a gesture is running
func (e *Engine) Dragging() bool {
	return e.drag.Active()
}

// BeginDrag starts a gesture on id. Unknown ids and a second concurrent
// gesture are refused.
func (e *Engine) BeginDrag(id drag.ID) bool {
	return e.drag.Begin(id, e)
}

// UpdateDragTarget records the candidate target. Nothing else changes.
func (e *Engine) UpdateDragTarget(over drag.ID) {
	e.drag.UpdateTarget(over)
}

// CancelDrag abandons the running gesture.
func (e *Engine) CancelDrag() {
	e.drag.End()
}

// EndDrag finishes the gesture dropped on over (empty when dropped outside
// any target). Column drops reorder in place. A task drop that changes lane
// returns the Relocation to dispatch; every other outcome returns nil. The
// session is cleared on every path.
func (e *Engine) EndDrag(over drag.ID) *Relocation {
	s, ok := e.drag.End()
	if !ok || over == "" {
		return nil
	}

	switch s.Kind {
	case drag.KindColumn:
		target, ok := over.Lane()
		if !ok {
			return nil
		}
		e.ReorderColumns(s.Lane, target)
		return nil

	case drag.KindTask:
		lane, ok := e.dropLane(s.TaskID, over)
		if !ok {
			return nil
		}
		r, _ := e.RelocateTask(s.TaskID, lane)
		return r
	}
	return nil
}

// dropLane resolves where a task dropped on over should go: the lane itself,
// or the lane of the card it landed on.
func (e *Engine) dropLane(taskID string, over drag.ID) (domain.Lane, bool) {
	if lane, ok := over.Lane(); ok {
		return lane, true
	}
	otherID, ok := over.Task()
	if !ok || otherID == taskID {
		return "", false
	}
	return e.TaskLane(otherID)
}

// RelocateTask overlays lane on taskID and returns the remote call to
// dispatch. Moving a task to the lane it already renders in, or naming an
// unknown task or lane, changes nothing and returns false.
func (e *Engine) RelocateTask(taskID string, lane domain.Lane) (*Relocation, bool) {
	if !lane.Valid() {
		return nil, false
	}
	task, ok := domain.FindTask(e.tasks, taskID)
	if !ok {
		return nil, false
	}
	current, _ := e.TaskLane(taskID)
	if current == lane {
		return nil, false
	}

	ticket := e.patch.Apply(taskID, task.Status, lane)
	e.logger.WithFields(logrus.Fields{
		"task": taskID,
		"from": current,
		"to":   lane,
		"seq":  ticket.Seq,
	}).Debug("task relocated optimistically")

	return &Relocation{Ticket: ticket, TaskID: taskID, From: current, To: lane}, true
}

// Dispatch performs the remote status update for r. It only reads the
// updater and is safe to call off the UI goroutine.
func (e *Engine) Dispatch(ctx context.Context, r Relocation) Resolution {
	return Resolution{Relocation: r, Err: e.updater.UpdateStatus(ctx, r.TaskID, r.To)}
}

// Resolve applies a dispatched move's outcome. A failure restores the task
// to where it rendered before the move and reports the failure.
func (e *Engine) Resolve(res Resolution) {
	r := res.Relocation
	lane, ok := e.patch.Settle(r.Ticket, res.Err == nil)
	if !ok {
		e.logger.WithField("task", r.TaskID).Warn("resolution for unknown move")
	}

	if res.Err != nil {
		e.logger.WithError(res.Err).WithFields(logrus.Fields{
			"task":     r.TaskID,
			"to":       r.To,
			"rendered": lane,
		}).Error("task move failed")
		e.notifier.Notify(types.ToastError, domain.UserMessage(res.Err, FallbackMoveError))
		return
	}

	e.notifier.Notify(types.ToastSuccess, fmt.Sprintf("Moved %s to %s", r.TaskID, r.To.Label()))
}

// ReorderColumns moves from to the position of to and reports success.
func (e *Engine) ReorderColumns(from, to domain.Lane) bool {
	if !e.columns.Reorder(from, to) {
		return false
	}
	e.notifier.Notify(types.ToastSuccess, fmt.Sprintf("Moved %s column", from.Label()))
	return true
}

// MoveColumn shifts lane by delta places among the visible columns. Hidden
// lanes keep their relative positions.
func (e *Engine) MoveColumn(lane domain.Lane, delta int) bool {
	order := e.columns.VisibleOrder()
	i := lane.IndexIn(order)
	if i < 0 {
		return false
	}
	j := i + delta
	if j < 0 || j >= len(order) {
		return false
	}
	return e.ReorderColumns(lane, order[j])
}

// ToggleColumn shows or hides lane. Hiding the last visible column is
// silently refused.
func (e *Engine) ToggleColumn(lane domain.Lane) bool {
	if !e.columns.Toggle(lane) {
		return false
	}
	if e.columns.Visible(lane) {
		e.notifier.Notify(types.ToastInfo, fmt.Sprintf("Showing %s", lane.Label()))
	} else {
		e.notifier.Notify(types.ToastInfo, fmt.Sprintf("Hid %s", lane.Label()))
	}
	return true
}

// ResetColumns restores default order and visibility and clears both
// stored overrides.
func (e *Engine) ResetColumns() {
	e.columns.ResetOrder()
	e.columns.ResetVisibility()
	e.notifier.Notify(types.ToastInfo, "Column layout reset")
}
