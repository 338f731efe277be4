package board

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/riordanpawley/laneboard/internal/domain"
	"github.com/riordanpawley/laneboard/internal/ui/styles"
)

// columnState carries the drag decorations for one column.
type columnState struct {
	active bool // cursor column
	lifted bool // column being dragged
	target bool // column drag hovering here
	cursor int  // cursor card when active
	// markerAt is the gap index that shows the drop marker, -1 for none.
	markerAt   int
	liftedTask string
	pending    map[string]bool
}

// renderColumn renders a kanban column with header and task cards
func renderColumn(col Column, layout columnLayout, state columnState, width, height int, s *styles.Styles) string {
	header := renderHeader(col, state, width, s)

	innerWidth := max(width-2*cardInset, 1)
	innerRows := max(height-bodyTop-1, 0)

	shown := len(layout.cards)
	markerAt := state.markerAt
	if markerAt > shown {
		markerAt = shown
	}

	lines := make([]string, 0, innerRows)
	for j := 0; j < shown; j++ {
		lines = append(lines, gapLine(j == markerAt, innerWidth, s))

		task := col.Tasks[j]
		card := renderCard(task, cardState{
			cursor:  state.active && j == state.cursor,
			lifted:  task.ID == state.liftedTask,
			pending: state.pending[task.ID],
		}, innerWidth, s)
		lines = append(lines, strings.Split(card, "\n")...)
	}
	lines = append(lines, gapLine(markerAt == shown, innerWidth, s))
	if layout.hidden > 0 {
		lines = append(lines, s.Overflow.Render(fmt.Sprintf("+%d more", layout.hidden)))
	}
	if len(lines) > innerRows {
		lines = lines[:innerRows]
	}

	body := s.Column.
		BorderForeground(borderColor(col.Lane, state)).
		Width(max(width-2, 1)).
		Height(innerRows).
		Render(strings.Join(lines, "\n"))

	return lipgloss.JoinVertical(lipgloss.Left, header, body)
}

// renderHeader renders "─ Label (n) ─────" across the column width.
func renderHeader(col Column, state columnState, width int, s *styles.Styles) string {
	style := s.LaneHeader(col.Lane)
	lead := "─ "
	switch {
	case state.lifted:
		style = s.ColumnHeaderLifted
	case state.target:
		style = s.ColumnHeaderTarget
		lead = "▼ "
	case state.active:
		style = s.ColumnHeaderActive
	}

	text := fmt.Sprintf("%s%s (%d) ", lead, col.Title, len(col.Tasks))
	if pad := width - ansi.StringWidth(text); pad > 0 {
		text += strings.Repeat("─", pad)
	}
	return style.Render(ansi.Truncate(text, width, ""))
}

// gapLine is the spacer above a card, or the drop marker.
func gapLine(marker bool, width int, s *styles.Styles) string {
	if !marker {
		return ""
	}
	return s.DropMarker.Render(ansi.Truncate("╌╌ drop here "+strings.Repeat("╌", width), width, ""))
}

func borderColor(lane domain.Lane, state columnState) lipgloss.Color {
	if state.target || state.markerAt >= 0 {
		return styles.Peach
	}
	if state.active {
		return styles.LaneColor(lane)
	}
	return styles.Surface1
}
