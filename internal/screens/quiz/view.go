package quiz

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/chapterquiz/internal/quizgen"
	"github.com/abhisek/chapterquiz/internal/ui/components"
	"github.com/abhisek/chapterquiz/internal/ui/layout"
	"github.com/abhisek/chapterquiz/internal/ui/theme"
)

func (s *QuizScreen) View(width, height int) string {
	switch {
	case s.quiz == nil:
		return s.renderLoading(width)
	case len(s.quiz.Questions) == 0:
		return renderEmpty(width)
	}
	return s.renderQuestion(width)
}

func (s *QuizScreen) renderLoading(width int) string {
	return "\n\n" + layout.Centered(theme.Dimmed, width,
		s.spinner.View()+" Preparing questions...")
}

func renderEmpty(width int) string {
	return "\n\n" + layout.Centered(theme.Dimmed, width,
		"This chapter has too little text to build a quiz.\n\nPress Esc to pick another chapter.")
}

func (s *QuizScreen) renderQuestion(width int) string {
	var b strings.Builder

	total := len(s.quiz.Questions)
	badge := theme.LocalBadge.Render("offline")
	if s.source == quizgen.ProvenanceRemote {
		badge = theme.RemoteBadge.Render("AI")
	}
	info := theme.Dimmed.Render(fmt.Sprintf("  Question %d of %d  ", s.current+1, total)) + badge
	b.WriteString(info)
	b.WriteString("\n")

	bar := components.NewProgressBar(s.current, total, max(width-4, 10))
	if s.choice.Submitted {
		bar.Done++
	}
	b.WriteString("  " + bar.View())
	b.WriteString("\n\n")

	card := lipgloss.NewStyle().
		Padding(0, 2).
		Width(max(width-4, 20)).
		Render(s.choice.View())
	b.WriteString(card)
	b.WriteString("\n")

	if s.choice.Submitted {
		if s.choice.IsCorrect() {
			b.WriteString(layout.Centered(theme.Correct, width, "Correct!"))
		} else {
			b.WriteString(layout.Centered(theme.Incorrect, width, "Not quite"))
		}
	}

	return b.String()
}
