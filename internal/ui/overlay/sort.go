package overlay

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/riordanpawley/laneboard/internal/domain"
)

// SortOption represents a sort option with metadata
type SortOption struct {
	Key         string
	Label       string
	Field       domain.SortField
	Description string
}

var sortOptions = []SortOption{
	{Key: "p", Label: "Priority", Field: domain.SortByPriority, Description: "P0 first"},
	{Key: "u", Label: "Updated", Field: domain.SortByUpdated, Description: "by last update"},
	{Key: "t", Label: "Title", Field: domain.SortByTitle, Description: "alphabetical"},
}

// SortMenu chooses how cards are ordered inside each column
type SortMenu struct {
	sort   domain.Sort
	styles *Styles
}

// NewSortMenu opens the menu on the current sort
func NewSortMenu(current domain.Sort) *SortMenu {
	return &SortMenu{sort: current, styles: New()}
}

// Sort returns the menu's current choice
func (m *SortMenu) Sort() domain.Sort {
	return m.sort
}

// Init initializes the menu
func (m *SortMenu) Init() tea.Cmd {
	return nil
}

// Update toggles the picked field and reports the new sort as a
// SelectionMsg. Pressing a field's key again flips its direction.
func (m *SortMenu) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if s := key.String(); s == "esc" || s == "q" {
		return m, closeCmd
	}

	for _, opt := range sortOptions {
		if opt.Key == key.String() {
			m.sort.Toggle(opt.Field)
			sel := SelectionMsg{Key: opt.Key, Value: m.sort}
			return m, func() tea.Msg { return sel }
		}
	}
	return m, nil
}

// View renders the menu
func (m *SortMenu) View() string {
	var b strings.Builder
	for _, opt := range sortOptions {
		active := m.sort.Field == opt.Field

		keyStyle, labelStyle := m.styles.MenuItem, m.styles.MenuItem
		if active {
			keyStyle, labelStyle = m.styles.MenuKey, m.styles.MenuItemActive
		}
		b.WriteString(keyStyle.Render("[" + opt.Key + "]"))
		b.WriteString(" ")
		b.WriteString(labelStyle.Render(opt.Label))
		b.WriteString(" ")
		b.WriteString(m.styles.MenuItem.Faint(true).Render("(" + opt.Description + ")"))
		if active {
			arrow := "↑"
			if m.sort.Order == domain.SortDesc {
				arrow = "↓"
			}
			b.WriteString(" " + m.styles.MenuItemActive.Render("● "+arrow))
		}
		b.WriteString("\n")
	}
	b.WriteString(m.styles.Footer.Render("Press same key to toggle direction • Esc to close"))
	return b.String()
}

// Title returns the overlay title
func (m *SortMenu) Title() string {
	return "Sort"
}

// Size returns the overlay dimensions
func (m *SortMenu) Size() (width, height int) {
	return 56, len(sortOptions) + 5
}
