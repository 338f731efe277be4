package app

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/riordanpawley/laneboard/internal/ui/board"
	"github.com/riordanpawley/laneboard/internal/ui/overlay"
	"github.com/riordanpawley/laneboard/internal/ui/statusbar"
	"github.com/riordanpawley/laneboard/internal/ui/toast"
)

// View renders the screen: the board or table on top, then toasts, the
// search bar when open, and the status bar. The board starts at the top
// left cell, so mouse coordinates need no translation.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	// Show loading spinner if loading
	if m.loading {
		return m.renderLoading()
	}

	parts := []string{m.renderMain()}
	if t := m.renderToasts(); t != "" {
		parts = append(parts, t)
	}
	if bar := m.renderBar(); bar != "" {
		parts = append(parts, bar)
	}
	parts = append(parts, m.renderStatusBar())

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) renderMain() string {
	height := m.mainHeight()

	// Centered modal overlays replace the main area
	if o := m.overlays.Current(); o != nil {
		if w, _ := o.Size(); w > 0 {
			return overlay.Place(o, m.overlayStyles, m.width, height)
		}
	}

	if m.mode == ModeTable {
		m.table.SetSize(m.width, height)
		return lipgloss.NewStyle().Height(height).MaxHeight(height).Render(m.table.View())
	}
	return m.renderBoard(height)
}

func (m Model) renderBoard(height int) string {
	v := board.View{
		Columns: m.columns(),
		Cursor:  m.cursor,
		Pending: m.pending(m.engine.Tasks()),
		Width:   m.width,
		Height:  height,
	}
	if sess, ok := m.engine.Session(); ok {
		v.Session = &sess
	}
	return board.Render(v, m.styles)
}

// geometry measures the board exactly as renderBoard draws it
func (m Model) geometry() board.Geometry {
	return board.Measure(m.columns(), m.width, m.mainHeight())
}

func (m Model) renderToasts() string {
	view := toast.New(m.styles).Render(m.toasts.Active(), m.width)
	if view == "" {
		return ""
	}
	return lipgloss.PlaceHorizontal(m.width, lipgloss.Right, view)
}

// renderBar draws a full-width overlay such as the search bar
func (m Model) renderBar() string {
	o := m.overlays.Current()
	if o == nil {
		return ""
	}
	if w, _ := o.Size(); w > 0 {
		return ""
	}
	return overlay.Frame(o, m.overlayStyles)
}

func (m Model) renderStatusBar() string {
	tasks := m.visibleTasks()
	pending := m.pending(tasks)
	return statusbar.New(m.currentMode(), m.width, m.styles).
		WithInfo(statusbar.Info{
			Tasks:   len(tasks),
			Pending: len(pending),
			Query:   m.filter.Query,
			Offline: m.offline,
		}).
		Render()
}

// mainHeight is what is left for the board or table once the bottom rows
// are laid out.
func (m Model) mainHeight() int {
	used := 1 // status bar
	if t := m.renderToasts(); t != "" {
		used += lipgloss.Height(t)
	}
	if bar := m.renderBar(); bar != "" {
		used += lipgloss.Height(bar)
	}
	return max(m.height-used, 0)
}

func (m Model) renderLoading() string {
	content := lipgloss.JoinHorizontal(lipgloss.Center,
		m.spinner.View(),
		" Loading tasks...",
	)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}
