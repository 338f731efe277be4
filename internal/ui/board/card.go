package board

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/riordanpawley/laneboard/internal/domain"
	"github.com/riordanpawley/laneboard/internal/ui/styles"
)

const pendingGlyph = "⟳ "

// cardState is how a single card should be drawn
type cardState struct {
	cursor  bool
	lifted  bool
	pending bool
}

// renderCard renders a task card whose outer width is width.
func renderCard(task domain.Task, state cardState, width int, s *styles.Styles) string {
	cardStyle := s.Card
	switch {
	case state.lifted:
		cardStyle = s.CardLifted
	case state.cursor:
		cardStyle = s.CardActive
	}

	// Border takes two columns, padding two more.
	cardStyle = cardStyle.Width(max(width-2, 1))
	contentWidth := max(width-4, 1)

	prefix := ""
	if state.pending {
		prefix = s.PendingMark.Render(pendingGlyph)
	} else if state.cursor {
		prefix = "▶"
	}
	title := ansi.Truncate(task.Title, max(contentWidth-ansi.StringWidth(prefix), 1), "…")
	titleStyle := s.TaskTitle
	if state.lifted {
		titleStyle = titleStyle.Faint(true)
	}
	titleLine := prefix + titleStyle.Render(title)

	priorityBadge := s.PriorityBadge(int(task.Priority)).Render(task.Priority.String())
	typeBadge := s.TypeBadge.Render(task.Type.Short())
	badgeLine := lipgloss.JoinHorizontal(lipgloss.Left, s.TaskID.Render(task.ID), " ", priorityBadge, " ", typeBadge)
	if task.Assignee != "" {
		badgeLine = lipgloss.JoinHorizontal(lipgloss.Left, badgeLine, " ", s.Assignee.Render("@"+task.Assignee))
	}
	badgeLine = ansi.Truncate(badgeLine, contentWidth, "…")

	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, titleLine, badgeLine))
}
