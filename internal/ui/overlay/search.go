package overlay

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// SearchMsg carries the query after every edit, for live filtering
type SearchMsg struct {
	Query string
}

// SearchOverlay is the one-line fuzzy search bar
type SearchOverlay struct {
	input      textinput.Model
	matchCount int
	styles     *Styles
}

// NewSearchOverlay opens the bar pre-filled with query.
func NewSearchOverlay(query string) *SearchOverlay {
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "search titles and ids..."
	ti.CharLimit = 100
	ti.Width = 50
	ti.SetValue(query)
	ti.Focus()

	return &SearchOverlay{input: ti, styles: New()}
}

// Query returns the current input
func (s *SearchOverlay) Query() string {
	return s.input.Value()
}

// SetMatchCount updates the match count display
func (s *SearchOverlay) SetMatchCount(count int) {
	s.matchCount = count
}

// Init implements tea.Model
func (s *SearchOverlay) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model. Enter keeps the query, Esc clears it; both
// close the bar.
func (s *SearchOverlay) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEnter:
			return s, closeCmd
		case tea.KeyEsc:
			s.input.SetValue("")
			return s, tea.Batch(emitSearch(""), closeCmd)
		}
	}

	before := s.input.Value()
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	if after := s.input.Value(); after != before {
		return s, tea.Batch(cmd, emitSearch(after))
	}
	return s, cmd
}

func emitSearch(query string) tea.Cmd {
	return func() tea.Msg { return SearchMsg{Query: query} }
}

// View implements tea.Model
func (s *SearchOverlay) View() string {
	view := s.input.View()
	if s.input.Value() != "" {
		view += s.styles.MatchCount.Render(fmt.Sprintf(" (%d matches)", s.matchCount))
	}
	return s.styles.SearchBar.Render(view)
}

// Title is empty; the bar has no frame
func (s *SearchOverlay) Title() string {
	return ""
}

// Size implements Overlay (full-width single line)
func (s *SearchOverlay) Size() (width, height int) {
	return 0, 1
}
