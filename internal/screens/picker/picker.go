package picker

import (
	"fmt"
	"strings"
	"unicode/utf8"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/chapterquiz/internal/chapter"
	"github.com/abhisek/chapterquiz/internal/router"
	"github.com/abhisek/chapterquiz/internal/screen"
	"github.com/abhisek/chapterquiz/internal/ui/components"
	"github.com/abhisek/chapterquiz/internal/ui/layout"
	"github.com/abhisek/chapterquiz/internal/ui/theme"
)

// visibleRows is how many chapters the list shows at once.
const visibleRows = 12

// QuizFactory builds the quiz screen for a chapter.
type QuizFactory func(doc chapter.Document) screen.Screen

// PickerScreen lists the loaded chapters and starts a quiz for the chosen one.
type PickerScreen struct {
	chapters   []chapter.Document
	newQuiz    QuizFactory
	newHistory func() screen.Screen
	filter     components.FilterInput
	menu       components.Menu
	query      string
}

var _ screen.Screen = (*PickerScreen)(nil)
var _ screen.KeyHintProvider = (*PickerScreen)(nil)

// New creates a PickerScreen over chapters.
func New(chapters []chapter.Document, newQuiz QuizFactory) *PickerScreen {
	s := &PickerScreen{
		chapters: chapters,
		newQuiz:  newQuiz,
		filter:   components.NewFilterInput("type to filter chapters", 60),
	}
	s.rebuild()
	return s
}

// WithHistory enables the Tab shortcut to the quiz history screen.
func (s *PickerScreen) WithHistory(newHistory func() screen.Screen) *PickerScreen {
	s.newHistory = newHistory
	return s
}

func (s *PickerScreen) Init() tea.Cmd {
	return s.filter.Init()
}

func (s *PickerScreen) Title() string {
	return "Chapters"
}

func (s *PickerScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Start quiz"},
	}
	if s.newHistory != nil {
		hints = append(hints, layout.KeyHint{Key: "Tab", Description: "History"})
	}
	return append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
}

func (s *PickerScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "up", "down", "enter":
			var cmd tea.Cmd
			s.menu, cmd = s.menu.Update(msg)
			return s, cmd
		case "tab":
			if s.newHistory == nil {
				return s, nil
			}
			next := s.newHistory()
			return s, func() tea.Msg { return router.PushScreenMsg{Screen: next} }
		}
	}

	var cmd tea.Cmd
	s.filter, cmd = s.filter.Update(msg)
	if q := s.filter.Value(); q != s.query {
		s.query = q
		s.rebuild()
	}
	return s, cmd
}

// rebuild refreshes the menu from the chapters matching the filter.
func (s *PickerScreen) rebuild() {
	var items []components.MenuItem
	for _, doc := range s.chapters {
		label := fmt.Sprintf("%d. %s", doc.Number, doc.Title)
		if !s.filter.Matches(label) {
			continue
		}
		items = append(items, components.MenuItem{
			Label:  label,
			Detail: fmt.Sprintf("%d chars", utf8.RuneCountInString(doc.Content)),
			Action: s.start(doc),
		})
	}
	s.menu = components.NewMenu(items, visibleRows)
}

func (s *PickerScreen) start(doc chapter.Document) func() tea.Cmd {
	return func() tea.Cmd {
		next := s.newQuiz(doc)
		return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
	}
}

// Visible returns the labels of the chapters currently listed.
func (s *PickerScreen) Visible() []string {
	labels := make([]string, len(s.menu.Items))
	for i, item := range s.menu.Items {
		labels[i] = item.Label
	}
	return labels
}

func (s *PickerScreen) View(width, height int) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(layout.Centered(theme.Title, width, "Pick a chapter"))
	b.WriteString("\n")
	b.WriteString(layout.Centered(theme.Subtitle, width,
		fmt.Sprintf("%d chapters loaded", len(s.chapters))))
	b.WriteString("\n\n")

	b.WriteString("  " + s.filter.View())
	b.WriteString("\n\n")

	if len(s.menu.Items) == 0 {
		b.WriteString(theme.Hint.Render("    No chapters match."))
		return b.String()
	}
	b.WriteString(s.menu.View())
	return b.String()
}
