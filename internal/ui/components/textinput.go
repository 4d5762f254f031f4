package components

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/chapterquiz/internal/ui/theme"
)

// FilterInput wraps bubbles/textinput as a single-line search box.
type FilterInput struct {
	Model textinput.Model
}

// NewFilterInput creates a focused filter input.
func NewFilterInput(placeholder string, charLimit int) FilterInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "/ "
	if charLimit > 0 {
		ti.CharLimit = charLimit
	}
	ti.Focus()
	return FilterInput{Model: ti}
}

// Init returns the initial command.
func (f FilterInput) Init() tea.Cmd {
	return f.Model.Focus()
}

// Update forwards messages to the wrapped input.
func (f FilterInput) Update(msg tea.Msg) (FilterInput, tea.Cmd) {
	var cmd tea.Cmd
	f.Model, cmd = f.Model.Update(msg)
	return f, cmd
}

// View renders the input.
func (f FilterInput) View() string {
	return theme.Body.Render(f.Model.View())
}

// Value returns the trimmed, lower-cased query.
func (f FilterInput) Value() string {
	return strings.ToLower(strings.TrimSpace(f.Model.Value()))
}

// Matches reports whether every word of the query occurs in s.
func (f FilterInput) Matches(s string) bool {
	s = strings.ToLower(s)
	for _, w := range strings.Fields(f.Value()) {
		if !strings.Contains(s, w) {
			return false
		}
	}
	return true
}
