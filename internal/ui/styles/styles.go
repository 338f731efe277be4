package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/riordanpawley/laneboard/internal/domain"
)

// Styles holds all the UI styles
type Styles struct {
	// Board
	Board              lipgloss.Style
	Column             lipgloss.Style
	ColumnHeader       lipgloss.Style
	ColumnHeaderActive lipgloss.Style
	ColumnHeaderLifted lipgloss.Style
	ColumnHeaderTarget lipgloss.Style

	// Cards
	Card        lipgloss.Style
	CardActive  lipgloss.Style
	CardLifted  lipgloss.Style
	TaskID      lipgloss.Style
	TaskTitle   lipgloss.Style
	Assignee    lipgloss.Style
	PendingMark lipgloss.Style
	DropMarker  lipgloss.Style
	Overflow    lipgloss.Style

	// Badges
	PriorityBadge func(priority int) lipgloss.Style
	TypeBadge     lipgloss.Style

	// Table
	TableHeader   lipgloss.Style
	TableCell     lipgloss.Style
	TableSelected lipgloss.Style

	// Status bar
	StatusBar  lipgloss.Style
	StatusMode lipgloss.Style
	StatusHint lipgloss.Style
	StatusInfo lipgloss.Style

	// Toasts
	ToastInfo    lipgloss.Style
	ToastSuccess lipgloss.Style
	ToastWarning lipgloss.Style
	ToastError   lipgloss.Style

	Spinner lipgloss.Style
}

// New creates a new Styles instance with Catppuccin Macchiato theme
func New() *Styles {
	return &Styles{
		Board: lipgloss.NewStyle().
			Background(Base),

		Column: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Surface1).
			Padding(0, 1),

		ColumnHeader: lipgloss.NewStyle().
			Foreground(Subtext0).
			Bold(true),

		ColumnHeaderActive: lipgloss.NewStyle().
			Foreground(Blue).
			Bold(true),

		ColumnHeaderLifted: lipgloss.NewStyle().
			Foreground(Overlay0).
			Faint(true),

		ColumnHeaderTarget: lipgloss.NewStyle().
			Foreground(Peach).
			Bold(true).
			Underline(true),

		Card: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Surface1).
			Padding(0, 1),

		CardActive: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Lavender).
			Padding(0, 1),

		CardLifted: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Surface0).
			Foreground(Overlay0).
			Faint(true).
			Padding(0, 1),

		TaskID: lipgloss.NewStyle().
			Foreground(Overlay1).
			Bold(true),

		TaskTitle: lipgloss.NewStyle().
			Foreground(Text),

		Assignee: lipgloss.NewStyle().
			Foreground(Teal),

		PendingMark: lipgloss.NewStyle().
			Foreground(Yellow).
			Bold(true),

		DropMarker: lipgloss.NewStyle().
			Foreground(Peach).
			Bold(true),

		Overflow: lipgloss.NewStyle().
			Foreground(Overlay1).
			Italic(true),

		PriorityBadge: func(priority int) lipgloss.Style {
			color := PriorityColors[max(0, min(priority, len(PriorityColors)-1))]
			return lipgloss.NewStyle().
				Foreground(Base).
				Background(color).
				Padding(0, 1).
				Bold(true)
		},

		TypeBadge: lipgloss.NewStyle().
			Foreground(Subtext0).
			Background(Surface1).
			Padding(0, 1),

		TableHeader: lipgloss.NewStyle().
			Foreground(Subtext1).
			Bold(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(Surface1).
			BorderBottom(true),

		TableCell: lipgloss.NewStyle().
			Foreground(Text),

		TableSelected: lipgloss.NewStyle().
			Foreground(Base).
			Background(Lavender).
			Bold(true),

		StatusBar: lipgloss.NewStyle().
			Background(Surface0).
			Foreground(Subtext0).
			Padding(0, 1),

		StatusMode: lipgloss.NewStyle().
			Background(Blue).
			Foreground(Base).
			Bold(true).
			Padding(0, 1),

		StatusHint: lipgloss.NewStyle().
			Foreground(Overlay1),

		StatusInfo: lipgloss.NewStyle().
			Foreground(Subtext0),

		ToastInfo: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Blue).
			Foreground(Blue).
			Padding(0, 1),

		ToastSuccess: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Green).
			Foreground(Green).
			Padding(0, 1),

		ToastWarning: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Yellow).
			Foreground(Yellow).
			Padding(0, 1),

		ToastError: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Red).
			Foreground(Red).
			Padding(0, 1),

		Spinner: lipgloss.NewStyle().
			Foreground(Mauve),
	}
}

// LaneHeader returns the header style for lane tinted with its accent.
func (s *Styles) LaneHeader(lane domain.Lane) lipgloss.Style {
	return s.ColumnHeader.Foreground(LaneColor(lane))
}
