package history

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/chapterquiz/internal/quizgen"
	"github.com/abhisek/chapterquiz/internal/screen"
	"github.com/abhisek/chapterquiz/internal/store"
	"github.com/abhisek/chapterquiz/internal/ui/layout"
	"github.com/abhisek/chapterquiz/internal/ui/theme"
)

// historyLimit caps how many past quizzes are loaded.
const historyLimit = 50

type historyLoadedMsg struct {
	Events []store.QuizEvent
	Err    error
}

// HistoryScreen lists previously generated quizzes.
type HistoryScreen struct {
	eventRepo store.EventRepo
	events    []store.QuizEvent
	selected  int
	expanded  map[int]bool
	loaded    bool
	errMsg    string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(eventRepo store.EventRepo) *HistoryScreen {
	return &HistoryScreen{
		eventRepo: eventRepo,
		expanded:  make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo := s.eventRepo
	return func() tea.Msg {
		events, err := repo.QueryQuizEvents(context.Background(), 0, store.QueryOpts{Limit: historyLimit})
		return historyLoadedMsg{Events: events, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Questions"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.events = msg.Events
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.events)-1 {
				s.selected++
			}
		case "enter":
			if len(s.events) > 0 {
				s.expanded[s.selected] = !s.expanded[s.selected]
			}
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return "\n\n" + layout.Centered(theme.Incorrect, width, "Error: "+s.errMsg)
	}
	if !s.loaded {
		return "\n\n" + layout.Centered(theme.Dimmed, width, "Loading history...")
	}
	if len(s.events) == 0 {
		return "\n\n" + layout.Centered(theme.Hint, width, "No quizzes yet. Pick a chapter to start!")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, e := range s.events {
		prefix := "  "
		style := theme.Unselected
		if i == s.selected {
			prefix = "▸ "
			style = theme.Selected
		}

		line := fmt.Sprintf("%s%s  Ch %d  %s  %d/%d questions  %s",
			prefix,
			e.Timestamp.Local().Format("Jan 02 15:04"),
			e.ChapterNumber,
			e.ChapterTitle,
			e.Generated,
			e.Requested,
			e.Source,
		)
		b.WriteString(style.Render(line))
		b.WriteString("\n")

		if s.expanded[i] {
			b.WriteString(renderDetails(e))
		}
	}

	return b.String()
}

// renderDetails lists the stored questions with their correct answers.
func renderDetails(e store.QuizEvent) string {
	var b strings.Builder
	if e.FallbackReason != "" {
		b.WriteString(theme.Hint.Render("      fallback: " + e.FallbackReason))
		b.WriteString("\n")
	}

	var doc quizgen.QuizDocument
	if err := json.Unmarshal([]byte(e.QuizJSON), &doc); err != nil {
		b.WriteString(theme.Incorrect.Render("      unreadable quiz: " + err.Error()))
		b.WriteString("\n")
		return b.String()
	}
	if len(doc.Questions) == 0 {
		b.WriteString(theme.Hint.Render("      No questions"))
		b.WriteString("\n")
		return b.String()
	}

	answer := lipgloss.NewStyle().Foreground(theme.Success)
	for _, q := range doc.Questions {
		b.WriteString(theme.Body.Render("      " + q.Prompt))
		b.WriteString("\n")
		if q.CorrectIndex >= 0 && q.CorrectIndex < len(q.Options) {
			b.WriteString(answer.Render("        → " + q.Options[q.CorrectIndex]))
			b.WriteString("\n")
		}
	}
	return b.String()
}
