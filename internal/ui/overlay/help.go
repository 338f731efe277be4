package overlay

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// KeyBinding represents a single keybinding entry
type KeyBinding struct {
	Key         string
	Description string
}

// KeyCategory represents a category of keybindings
type KeyCategory struct {
	Name     string
	Bindings []KeyBinding
}

// Categories lists every board keybinding, grouped for the help screen.
var Categories = []KeyCategory{
	{
		Name: "Navigation",
		Bindings: []KeyBinding{
			{Key: "h/l", Description: "Move between columns"},
			{Key: "j/k", Description: "Move between cards"},
		},
	},
	{
		Name: "Moving cards",
		Bindings: []KeyBinding{
			{Key: "Space", Description: "Pick up the selected card"},
			{Key: "h/l", Description: "Carry it to another column"},
			{Key: "Enter", Description: "Drop it there"},
			{Key: "Esc", Description: "Put it back"},
			{Key: "mouse", Description: "Drag cards and column headers"},
		},
	},
	{
		Name: "Columns",
		Bindings: []KeyBinding{
			{Key: "< / >", Description: "Move the selected column"},
			{Key: "1-7", Description: "Show or hide a lane"},
			{Key: "R", Description: "Reset column order and visibility"},
		},
	},
	{
		Name: "View",
		Bindings: []KeyBinding{
			{Key: "t", Description: "Toggle board / table"},
			{Key: "/", Description: "Search"},
			{Key: ",", Description: "Sort menu"},
			{Key: "r", Description: "Refresh tasks"},
			{Key: "?", Description: "Help (this screen)"},
			{Key: "q", Description: "Quit"},
		},
	},
}

// HelpOverlay displays keybinding reference
type HelpOverlay struct {
	styles     *Styles
	scroll     int
	viewHeight int
}

// NewHelpOverlay creates a new help overlay
func NewHelpOverlay() *HelpOverlay {
	return &HelpOverlay{styles: New(), viewHeight: 20}
}

// Init initializes the overlay
func (h *HelpOverlay) Init() tea.Cmd {
	return nil
}

// Update handles scrolling and closing
func (h *HelpOverlay) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return h, nil
	}

	switch key.String() {
	case "esc", "q", "?":
		return h, closeCmd
	case "j", "down":
		h.scroll = min(h.scroll+1, h.maxScroll())
	case "k", "up":
		h.scroll = max(h.scroll-1, 0)
	case "g":
		h.scroll = 0
	case "G":
		h.scroll = h.maxScroll()
	}
	return h, nil
}

func (h *HelpOverlay) lines() []string {
	var lines []string
	for i, cat := range Categories {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, h.styles.Category.Render(cat.Name+":"))
		for _, b := range cat.Bindings {
			lines = append(lines, "  "+h.styles.MenuKey.Render(b.Key)+"  "+h.styles.MenuItem.Render(b.Description))
		}
	}
	return lines
}

func (h *HelpOverlay) maxScroll() int {
	return max(0, len(h.lines())-h.viewHeight)
}

// View renders the visible slice of the help text
func (h *HelpOverlay) View() string {
	lines := h.lines()
	start := min(h.scroll, len(lines))
	end := min(start+h.viewHeight, len(lines))

	out := strings.Join(lines[start:end], "\n")
	if h.maxScroll() > 0 {
		out += "\n" + h.styles.Footer.Render("[j/k to scroll, g/G to jump]")
	}
	return out
}

// Title returns the overlay title
func (h *HelpOverlay) Title() string {
	return "Help"
}

// Size returns the overlay dimensions
func (h *HelpOverlay) Size() (width, height int) {
	return 50, h.viewHeight + 4
}
