package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/riordanpawley/laneboard/internal/domain"
	"github.com/riordanpawley/laneboard/internal/drag"
	"github.com/riordanpawley/laneboard/internal/kanban"
	"github.com/riordanpawley/laneboard/internal/ui/overlay"
)

// handleKey processes keyboard input based on current mode
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global keys (work in any mode)
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "ctrl+l":
		// Force redraw
		return m, tea.ClearScreen
	}

	// Any running gesture owns the keyboard
	if m.engine.Dragging() {
		return m.handleMoveMode(msg)
	}

	switch m.mode {
	case ModeTable:
		return m.handleTableMode(msg)
	default:
		return m.handleNormalMode(msg)
	}
}

// handleViewKeys covers the keys shared by the board and the table
func (m Model) handleViewKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	switch msg.String() {
	case "q":
		return m, tea.Quit, true
	case "r":
		cmd := m.fetch()
		return m, cmd, true
	case "/":
		search := overlay.NewSearchOverlay(m.filter.Query)
		search.SetMatchCount(len(m.visibleTasks()))
		return m, m.overlays.Push(search), true
	case ",":
		return m, m.overlays.Push(overlay.NewSortMenu(m.sort)), true
	case "?":
		return m, m.overlays.Push(overlay.NewHelpOverlay()), true
	case "t":
		if m.mode == ModeTable {
			m.mode = ModeNormal
			if t, ok := m.table.Selected(); ok {
				m.focusTask(t.ID)
			}
		} else {
			m.mode = ModeTable
			m.syncTable()
		}
		return m, nil, true
	}
	return m, nil, false
}

// handleNormalMode processes keyboard input on the board
func (m Model) handleNormalMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if next, cmd, ok := m.handleViewKeys(msg); ok {
		return next, cmd
	}

	cols := m.columns()
	switch msg.String() {
	// Navigation
	case "h", "left":
		m.cursor.Column--
		m.clampCursor()
	case "l", "right":
		m.cursor.Column++
		m.clampCursor()
	case "j", "down":
		m.cursor.Task++
		m.clampCursor()
	case "k", "up":
		m.cursor.Task--
		m.clampCursor()
	case "g":
		m.cursor.Task = 0
	case "G":
		if m.cursor.Column < len(cols) {
			m.cursor.Task = max(len(cols[m.cursor.Column].Tasks)-1, 0)
		}

	// Pick up the selected card
	case " ", "space":
		if t, ok := m.selectedTask(); ok {
			if m.engine.BeginDrag(drag.TaskID(t.ID)) {
				lane, _ := m.engine.TaskLane(t.ID)
				m.engine.UpdateDragTarget(drag.LaneID(lane))
				m.mode = ModeMove
			}
		}

	// Columns
	case "<", ">":
		delta := -1
		if msg.String() == ">" {
			delta = 1
		}
		if lane, ok := m.selectedLane(); ok && m.engine.MoveColumn(lane, delta) {
			m.cursor.Column += delta
			m.clampCursor()
		}
	case "1", "2", "3", "4", "5", "6", "7":
		lanes := domain.AllLanes()
		i := int(msg.String()[0] - '1')
		if i < len(lanes) {
			selected, hadSelection := m.selectedTask()
			m.engine.ToggleColumn(lanes[i])
			m.clampCursor()
			if hadSelection {
				m.focusTask(selected.ID)
			}
		}
	case "R":
		m.engine.ResetColumns()
		m.clampCursor()
	}

	return m, nil
}

// handleMoveMode drives a picked-up card: h/l retarget, enter drops, esc
// puts it back. Pointer drags also end up here while the button is held.
func (m Model) handleMoveMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	sess, _ := m.engine.Session()

	switch msg.String() {
	case "esc":
		m.engine.CancelDrag()
		m.sensor.Reset()
		m.mode = ModeNormal
		return m, nil

	case "h", "left", "l", "right":
		if sess.Kind != drag.KindTask || m.sensor.Dragging() {
			return m, nil
		}
		delta := 1
		if s := msg.String(); s == "h" || s == "left" {
			delta = -1
		}
		order := m.engine.Layout().VisibleOrder()
		current, ok := sess.Over.Lane()
		if !ok {
			current = sess.SourceLane
		}
		i := current.IndexIn(order)
		j := min(max(i+delta, 0), len(order)-1)
		if i >= 0 && j != i {
			m.engine.UpdateDragTarget(drag.LaneID(order[j]))
			m.cursor.Column = j
		}
		return m, nil

	case "enter", " ", "space":
		if m.sensor.Dragging() {
			return m, nil
		}
		m.mode = ModeNormal
		r := m.engine.EndDrag(sess.Over)
		if sess.Kind == drag.KindTask {
			m.focusTask(sess.TaskID)
		}
		cmd := m.dispatch(r)
		return m, cmd
	}

	return m, nil
}

// handleTableMode processes keyboard input in the table view
func (m Model) handleTableMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if next, cmd, ok := m.handleViewKeys(msg); ok {
		return next, cmd
	}

	switch msg.String() {
	// Shift the selected task one lane left or right
	case "H", "L":
		t, ok := m.table.Selected()
		if !ok {
			return m, nil
		}
		lanes := domain.AllLanes()
		delta := 1
		if msg.String() == "H" {
			delta = -1
		}
		j := t.Status.Index() + delta
		if j < 0 || j >= len(lanes) {
			return m, nil
		}
		r, _ := m.engine.RelocateTask(t.ID, lanes[j])
		cmd := m.dispatch(r)
		return m, cmd
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// dispatch sends a relocation to the store, if there is one
func (m *Model) dispatch(r *kanban.Relocation) tea.Cmd {
	if r == nil {
		return nil
	}
	m.syncTable()
	return dispatchCmd(m.engine, *r, m.requestTimeout)
}
