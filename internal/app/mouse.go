package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/riordanpawley/laneboard/internal/drag"
	"github.com/riordanpawley/laneboard/internal/ui/board"
)

// handleMouse feeds left-button events through the pointer sensor. A press
// selects what is under the pointer; once the pointer travels the activation
// distance the press becomes a drag, every move retargets it, and the
// release drops it.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.loading || m.mode == ModeTable || !m.overlays.IsEmpty() {
		return m, nil
	}
	p := drag.Point{X: msg.X, Y: msg.Y}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || m.engine.Dragging() {
			return m, nil
		}
		geo := m.geometry()
		id, rect, ok := geo.Hit(p)
		if !ok {
			return m, nil
		}
		m.sensor.Press(id, rect, p)
		m.selectHit(geo, id, p)
		return m, nil

	case tea.MouseActionMotion:
		if !m.sensor.Pressed() {
			return m, nil
		}
		if m.sensor.Move(p) && !m.engine.BeginDrag(m.sensor.ID()) {
			// Refused (hidden lane, vanished task): let the gesture go.
			m.sensor.Reset()
			return m, nil
		}
		if m.sensor.Dragging() {
			m.engine.UpdateDragTarget(m.target())
		}
		return m, nil

	case tea.MouseActionRelease:
		if !m.sensor.Pressed() {
			return m, nil
		}
		if !m.sensor.Dragging() {
			m.sensor.Release(p)
			return m, nil
		}
		m.sensor.Move(p)
		over := m.target()
		m.sensor.Release(p)

		sess, _ := m.engine.Session()
		r := m.engine.EndDrag(over)
		if sess.Kind == drag.KindTask {
			m.focusTask(sess.TaskID)
		} else {
			m.focusLane(sess)
		}
		cmd := m.dispatch(r)
		return m, cmd
	}

	return m, nil
}

// target is the droppable nearest to the dragged box
func (m Model) target() drag.ID {
	sess, ok := m.engine.Session()
	if !ok {
		return ""
	}
	id, _ := drag.ClosestCorners(m.sensor.DraggedRect(), m.geometry().Droppables(sess.Kind))
	return id
}

// selectHit moves the cursor to the clicked card or column
func (m *Model) selectHit(geo board.Geometry, id drag.ID, p drag.Point) {
	if taskID, ok := id.Task(); ok {
		m.focusTask(taskID)
		return
	}
	if col, ok := geo.ColumnAt(p); ok {
		m.cursor = board.Cursor{Column: col}
		m.clampCursor()
	}
}

// focusLane keeps the cursor on a column after it was dragged
func (m *Model) focusLane(sess drag.Session) {
	for i, c := range m.columns() {
		if c.Lane == sess.Lane {
			m.cursor = board.Cursor{Column: i}
			m.clampCursor()
			return
		}
	}
}
