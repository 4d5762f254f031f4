package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/chapterquiz/internal/quizgen"
	"github.com/abhisek/chapterquiz/internal/router"
	"github.com/abhisek/chapterquiz/internal/screen"
	"github.com/abhisek/chapterquiz/internal/ui/layout"
	"github.com/abhisek/chapterquiz/internal/ui/theme"
)

// Missed is a question the user answered wrong.
type Missed struct {
	Question string
	Answer   string
}

// Result is the outcome of one finished quiz.
type Result struct {
	ChapterNumber int
	ChapterTitle  string
	Source        quizgen.Provenance
	Total         int
	Correct       int
	Missed        []Missed
}

// Accuracy returns the share of correct answers in [0, 1].
func (r Result) Accuracy() float64 {
	if r.Total == 0 {
		return 0
	}
	return float64(r.Correct) / float64(r.Total)
}

// SummaryScreen displays the score of a finished quiz.
type SummaryScreen struct {
	result Result
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen.
func New(result Result) *SummaryScreen {
	return &SummaryScreen{result: result}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Quiz Summary"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Chapters"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Result returns the result shown by the screen.
func (s *SummaryScreen) Result() Result {
	return s.result
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "enter" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	r := s.result
	var b strings.Builder

	b.WriteString(layout.Centered(theme.Title, width, "Quiz complete!"))
	b.WriteString("\n\n")
	b.WriteString(layout.Centered(theme.Subtitle, width,
		fmt.Sprintf("%d. %s", r.ChapterNumber, r.ChapterTitle)))
	b.WriteString("\n\n")

	score := fmt.Sprintf("Correct: %d/%d        Accuracy: %.0f%%",
		r.Correct, r.Total, r.Accuracy()*100)
	b.WriteString(layout.Centered(theme.Body.Bold(true), width, score))
	b.WriteString("\n")
	b.WriteString(layout.Centered(lipgloss.NewStyle(), width, sourceBadge(r.Source)))
	b.WriteString("\n\n")

	if len(r.Missed) == 0 {
		if r.Total > 0 {
			b.WriteString(layout.Centered(theme.Correct, width, "Every answer was right."))
		}
		return b.String()
	}

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", max(min(width-8, 60), 0)))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, theme.Dimmed.Render("Review")))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n\n")

	for _, m := range r.Missed {
		b.WriteString("  " + theme.Body.Render(m.Question) + "\n")
		b.WriteString("    " + theme.Correct.Render("→ "+m.Answer) + "\n\n")
	}

	return b.String()
}

func sourceBadge(p quizgen.Provenance) string {
	switch p {
	case quizgen.ProvenanceRemote:
		return theme.RemoteBadge.Render("AI-generated questions")
	case quizgen.ProvenanceLocal:
		return theme.LocalBadge.Render("Offline questions")
	}
	return ""
}
