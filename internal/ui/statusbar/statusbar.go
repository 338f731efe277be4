// Package statusbar renders the bottom line of the screen: the mode badge,
// key hints and board counters.
package statusbar

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/riordanpawley/laneboard/internal/types"
	"github.com/riordanpawley/laneboard/internal/ui/styles"
)

// Info is the right-hand side of the bar
type Info struct {
	Tasks   int
	Pending int
	Query   string
	Offline bool
}

func (i Info) String() string {
	parts := []string{fmt.Sprintf("%d tasks", i.Tasks)}
	if i.Pending > 0 {
		parts = append(parts, fmt.Sprintf("%d syncing", i.Pending))
	}
	if i.Query != "" {
		parts = append(parts, "/"+i.Query)
	}
	if i.Offline {
		parts = append(parts, "offline")
	}
	return strings.Join(parts, " · ")
}

// StatusBar represents the status bar at the bottom of the TUI
type StatusBar struct {
	mode   types.Mode
	width  int
	info   Info
	styles *styles.Styles
}

// New creates a new StatusBar with the given mode, width, and styles
func New(mode types.Mode, width int, styles *styles.Styles) StatusBar {
	return StatusBar{mode: mode, width: width, styles: styles}
}

// WithInfo returns a copy of the bar showing info on the right
func (sb StatusBar) WithInfo(info Info) StatusBar {
	sb.info = info
	return sb
}

// Render renders the status bar as a string
func (sb StatusBar) Render() string {
	left := sb.styles.StatusMode.Render(sb.mode.String())
	if hints := GetHints(sb.mode); hints != "" {
		left = lipgloss.JoinHorizontal(lipgloss.Left,
			left,
			sb.styles.StatusHint.Render(" │ "),
			sb.styles.StatusHint.Render(hints),
		)
	}

	right := sb.styles.StatusInfo.Render(sb.info.String())

	// Padding takes two columns of the bar.
	inner := max(sb.width-2, 0)
	gap := inner - lipgloss.Width(left) - lipgloss.Width(right)
	content := left
	if gap > 0 {
		content = left + strings.Repeat(" ", gap) + right
	}
	return sb.styles.StatusBar.Width(sb.width).Render(ansi.Truncate(content, inner, "…"))
}
