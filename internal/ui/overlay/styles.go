package overlay

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/riordanpawley/laneboard/internal/ui/styles"
)

// Styles holds all overlay-specific styles
type Styles struct {
	Overlay        lipgloss.Style
	Title          lipgloss.Style
	Category       lipgloss.Style
	MenuItem       lipgloss.Style
	MenuItemActive lipgloss.Style
	MenuKey        lipgloss.Style
	Footer         lipgloss.Style
	SearchBar      lipgloss.Style
	MatchCount     lipgloss.Style
}

// New creates a new Styles instance using the Catppuccin Macchiato theme
func New() *Styles {
	return &Styles{
		Overlay: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(styles.Surface2).
			Background(styles.Base).
			Padding(1, 2),

		Title: lipgloss.NewStyle().
			Foreground(styles.Text).
			Bold(true).
			MarginBottom(1),

		Category: lipgloss.NewStyle().
			Foreground(styles.Blue).
			Bold(true),

		MenuItem: lipgloss.NewStyle().
			Foreground(styles.Text),

		MenuItemActive: lipgloss.NewStyle().
			Foreground(styles.Blue).
			Bold(true),

		MenuKey: lipgloss.NewStyle().
			Foreground(styles.Yellow).
			Bold(true),

		Footer: lipgloss.NewStyle().
			Foreground(styles.Subtext0).
			MarginTop(1),

		SearchBar: lipgloss.NewStyle().
			Foreground(styles.Text).
			Background(styles.Surface0),

		MatchCount: lipgloss.NewStyle().
			Foreground(styles.Overlay1).
			Background(styles.Surface0),
	}
}
