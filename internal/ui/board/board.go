package board

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/riordanpawley/laneboard/internal/drag"
	"github.com/riordanpawley/laneboard/internal/ui/styles"
)

// Render renders the board described by v. It reads v and nothing else; the
// drag decorations (lifted source, drop marker, column insertion marker)
// come from v.Session.
func Render(v View, s *styles.Styles) string {
	if len(v.Columns) == 0 || v.Width <= 0 || v.Height <= 0 {
		return ""
	}

	geo := Measure(v.Columns, v.Width, v.Height)
	colWidth := geo.ColumnWidth()
	states := decorate(v)

	columnStrings := make([]string, 0, len(v.Columns))
	for i, col := range v.Columns {
		columnStr := renderColumn(col, geo.layouts[i], states[i], colWidth, v.Height, s)

		// Force consistent width using lipgloss Width
		sized := lipgloss.NewStyle().Width(colWidth).MaxWidth(colWidth).Height(v.Height).MaxHeight(v.Height).Render(columnStr)
		columnStrings = append(columnStrings, sized)
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, columnStrings...)
}

// decorate works out per-column drag and cursor state.
func decorate(v View) []columnState {
	states := make([]columnState, len(v.Columns))
	for i := range states {
		states[i] = columnState{
			active:   i == v.Cursor.Column,
			cursor:   v.Cursor.Task,
			markerAt: -1,
			pending:  v.Pending,
		}
	}

	if v.Session == nil {
		return states
	}
	sess := *v.Session

	switch sess.Kind {
	case drag.KindColumn:
		overLane, hasOver := sess.Over.Lane()
		for i, col := range v.Columns {
			if col.Lane == sess.Lane {
				states[i].lifted = true
			} else if hasOver && col.Lane == overLane {
				states[i].target = true
			}
		}

	case drag.KindTask:
		for i := range states {
			states[i].liftedTask = sess.TaskID
		}
		ghostCol, ghostAt, ok := ghost(v.Columns, sess)
		if ok {
			states[ghostCol].markerAt = ghostAt
		}
	}
	return states
}

// ghost finds where a dragged card would land: before the hovered card, or
// at the end of the hovered lane. Hovering the dragged card itself shows
// nothing.
func ghost(columns []Column, sess drag.Session) (col, at int, ok bool) {
	if taskID, isTask := sess.Over.Task(); isTask {
		if taskID == sess.TaskID {
			return 0, 0, false
		}
		return locate(columns, taskID)
	}
	if lane, isLane := sess.Over.Lane(); isLane {
		for i, c := range columns {
			if c.Lane == lane {
				return i, len(c.Tasks), true
			}
		}
	}
	return 0, 0, false
}
