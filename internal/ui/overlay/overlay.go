// Package overlay holds the modal panels drawn over the board: help, search
// and the sort menu.
package overlay

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Overlay represents a modal overlay component
type Overlay interface {
	tea.Model
	Title() string
	// Size is the panel size; a zero width means the full board width.
	Size() (width, height int)
}

// CloseOverlayMsg signals that the overlay should be closed
type CloseOverlayMsg struct{}

// SelectionMsg is sent when a menu entry is picked
type SelectionMsg struct {
	Key   string
	Value any
}

func closeCmd() tea.Msg {
	return CloseOverlayMsg{}
}

// Frame draws o inside the overlay border with its title.
func Frame(o Overlay, s *Styles) string {
	body := o.View()
	if title := o.Title(); title != "" {
		body = lipgloss.JoinVertical(lipgloss.Left, s.Title.Render(title), body)
	}
	width, _ := o.Size()
	if width > 0 {
		return s.Overlay.Width(width).Render(body)
	}
	return body
}

// Place centers the framed overlay in a width x height area. Bars (zero
// width overlays) are pinned to the bottom instead.
func Place(o Overlay, s *Styles, width, height int) string {
	w, _ := o.Size()
	frame := Frame(o, s)
	if w == 0 {
		return lipgloss.PlaceVertical(height, lipgloss.Bottom, frame)
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, frame)
}
