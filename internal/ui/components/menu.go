package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/chapterquiz/internal/ui/theme"
)

// MenuItem represents a single entry of a Menu.
type MenuItem struct {
	Label    string
	Detail   string
	Action   func() tea.Cmd
	Disabled bool
}

// Menu is a vertical list of selectable items. Only Visible rows are drawn
// at a time; the window follows the selection.
type Menu struct {
	Items    []MenuItem
	Selected int
	Visible  int
	offset   int
}

// NewMenu creates a new menu with the first enabled item selected.
func NewMenu(items []MenuItem, visible int) Menu {
	selected := 0
	for i, item := range items {
		if !item.Disabled {
			selected = i
			break
		}
	}
	m := Menu{Items: items, Selected: selected, Visible: visible}
	m.scroll()
	return m
}

// Update handles keyboard navigation.
func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch kmsg.String() {
	case "up", "k":
		for i := m.Selected - 1; i >= 0; i-- {
			if !m.Items[i].Disabled {
				m.Selected = i
				break
			}
		}
	case "down", "j":
		for i := m.Selected + 1; i < len(m.Items); i++ {
			if !m.Items[i].Disabled {
				m.Selected = i
				break
			}
		}
	case "enter":
		if m.Selected >= 0 && m.Selected < len(m.Items) {
			item := m.Items[m.Selected]
			if item.Action != nil && !item.Disabled {
				return m, item.Action()
			}
		}
	}

	m.scroll()
	return m, nil
}

func (m *Menu) scroll() {
	if m.Visible <= 0 {
		return
	}
	if m.Selected < m.offset {
		m.offset = m.Selected
	}
	if m.Selected >= m.offset+m.Visible {
		m.offset = m.Selected - m.Visible + 1
	}
}

// View renders the visible window of the menu.
func (m Menu) View() string {
	end := len(m.Items)
	if m.Visible > 0 {
		end = min(end, m.offset+m.Visible)
	}

	var b strings.Builder
	for i := m.offset; i < end; i++ {
		item := m.Items[i]
		switch {
		case i == m.Selected:
			b.WriteString(theme.Selected.Render("  ▸ " + item.Label))
		case item.Disabled:
			b.WriteString(theme.Dimmed.Render("    " + item.Label))
		default:
			b.WriteString(theme.Unselected.Render("    " + item.Label))
		}
		if item.Detail != "" {
			b.WriteString("  " + theme.Hint.Render(item.Detail))
		}
		b.WriteString("\n")
	}
	if end < len(m.Items) {
		b.WriteString(theme.Dimmed.Render("    ⋮"))
		b.WriteString("\n")
	}
	return b.String()
}
