// Package table is the list view of the board: every task, post-overlay,
// one row each.
package table

import (
	"time"

	btable "github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/riordanpawley/laneboard/internal/domain"
	"github.com/riordanpawley/laneboard/internal/ui/styles"
)

// Fixed column widths; Title takes whatever is left.
const (
	idWidth       = 10
	laneWidth     = 13
	priorityWidth = 4
	typeWidth     = 8
	assigneeWidth = 12
	updatedWidth  = 10
	minTitleWidth = 12
)

// Model wraps a bubbles table over the task list
type Model struct {
	table btable.Model
	tasks []domain.Task
	width int
}

// New creates an empty focused table
func New(s *styles.Styles) Model {
	t := btable.New(
		btable.WithColumns(columns(80)),
		btable.WithFocused(true),
	)
	ts := btable.DefaultStyles()
	ts.Header = s.TableHeader
	ts.Cell = s.TableCell
	ts.Selected = s.TableSelected
	t.SetStyles(ts)

	return Model{table: t, width: 80}
}

func columns(width int) []btable.Column {
	fixed := idWidth + laneWidth + priorityWidth + typeWidth + assigneeWidth + updatedWidth
	// Each cell has one column of padding on both sides.
	title := max(width-fixed-2*7, minTitleWidth)
	return []btable.Column{
		{Title: "ID", Width: idWidth},
		{Title: "Title", Width: title},
		{Title: "Lane", Width: laneWidth},
		{Title: "Pri", Width: priorityWidth},
		{Title: "Type", Width: typeWidth},
		{Title: "Assignee", Width: assigneeWidth},
		{Title: "Updated", Width: updatedWidth},
	}
}

// SetSize fits the table to the screen
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.table.SetColumns(columns(width))
	m.table.SetWidth(width)
	m.table.SetHeight(max(height, 3))
}

// SetTasks replaces the rows. pending marks tasks whose move is in flight.
// The cursor stays on the same task when it is still listed.
func (m *Model) SetTasks(tasks []domain.Task, pending map[string]bool) {
	selected, hadSelection := m.Selected()

	m.tasks = make([]domain.Task, len(tasks))
	copy(m.tasks, tasks)

	rows := make([]btable.Row, 0, len(tasks))
	for _, t := range tasks {
		rows = append(rows, row(t, pending[t.ID]))
	}
	m.table.SetRows(rows)

	if !hadSelection {
		return
	}
	for i, t := range m.tasks {
		if t.ID == selected.ID {
			m.table.SetCursor(i)
			return
		}
	}
	m.table.SetCursor(min(m.table.Cursor(), max(len(m.tasks)-1, 0)))
}

func row(t domain.Task, pending bool) btable.Row {
	lane := t.Status.Label()
	if pending {
		lane = "⟳ " + lane
	}
	updated := ""
	if !t.UpdatedAt.IsZero() {
		updated = t.UpdatedAt.Local().Format(time.DateOnly)
	}
	return btable.Row{t.ID, t.Title, lane, t.Priority.String(), t.Type.String(), t.Assignee, updated}
}

// Selected returns the task under the cursor
func (m Model) Selected() (domain.Task, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.tasks) {
		return domain.Task{}, false
	}
	return m.tasks[i], true
}

// Len returns the number of rows
func (m Model) Len() int {
	return len(m.tasks)
}

// Update forwards navigation keys to the table
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the table
func (m Model) View() string {
	if len(m.tasks) == 0 {
		return "No tasks to display"
	}
	return m.table.View()
}
