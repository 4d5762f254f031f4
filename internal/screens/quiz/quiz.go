package quiz

import (
	"context"
	"log/slog"
	"strconv"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/chapterquiz/internal/chapter"
	"github.com/abhisek/chapterquiz/internal/quizgen"
	"github.com/abhisek/chapterquiz/internal/router"
	"github.com/abhisek/chapterquiz/internal/screen"
	"github.com/abhisek/chapterquiz/internal/screens/summary"
	"github.com/abhisek/chapterquiz/internal/store"
	"github.com/abhisek/chapterquiz/internal/ui/components"
	"github.com/abhisek/chapterquiz/internal/ui/layout"
	"github.com/abhisek/chapterquiz/internal/ui/theme"
)

// quizReadyMsg is sent when the quiz for the chapter has been generated.
type quizReadyMsg struct {
	Doc     quizgen.QuizDocument
	Outcome quizgen.Outcome
}

// QuizScreen generates a quiz for one chapter and walks through it.
type QuizScreen struct {
	engine    *quizgen.Engine
	doc       chapter.Document
	opts      quizgen.GenerateOptions
	eventRepo store.EventRepo

	spinner spinner.Model
	quiz    *quizgen.QuizDocument
	source  quizgen.Provenance
	current int
	choice  components.MultiChoice
	correct int
	missed  []summary.Missed
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)
var _ screen.StatusProvider = (*QuizScreen)(nil)

// New creates a QuizScreen. eventRepo may be nil, in which case the
// generated quiz is not recorded.
func New(engine *quizgen.Engine, doc chapter.Document, opts quizgen.GenerateOptions, eventRepo store.EventRepo) *QuizScreen {
	return &QuizScreen{
		engine:    engine,
		doc:       doc,
		opts:      opts,
		eventRepo: eventRepo,
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(theme.Selected),
		),
	}
}

func (s *QuizScreen) Init() tea.Cmd {
	return tea.Batch(s.spinner.Tick, s.generate())
}

func (s *QuizScreen) Title() string {
	return s.doc.Title
}

func (s *QuizScreen) Status() string {
	if s.quiz == nil {
		return ""
	}
	return theme.Correct.Render("✓") + " " + strconv.Itoa(s.correct)
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.quiz == nil || len(s.quiz.Questions) == 0:
		return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	case s.choice.Submitted:
		return []layout.KeyHint{{Key: "Enter", Description: "Next"}}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Choose"},
		{Key: "A-D", Description: "Answer"},
		{Key: "Enter", Description: "Submit"},
		{Key: "Esc", Description: "Leave quiz"},
	}
}

// generate runs the engine off the UI loop and records the result.
func (s *QuizScreen) generate() tea.Cmd {
	engine, doc, opts, repo := s.engine, s.doc.Quiz(), s.opts, s.eventRepo
	return func() tea.Msg {
		ctx := context.Background()
		out := engine.Generate(ctx, doc.Content, opts)
		quiz := out.Document(doc)
		if repo != nil {
			if err := out.Record(ctx, repo, quiz); err != nil {
				slog.Warn("failed to record quiz", "chapter", doc.Number, "error", err)
			}
		}
		return quizReadyMsg{Doc: quiz, Outcome: out}
	}
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case quizReadyMsg:
		s.quiz = &msg.Doc
		s.source = msg.Outcome.Source
		if len(s.quiz.Questions) > 0 {
			s.choice = s.newChoice(0)
		}
		return s, nil

	case spinner.TickMsg:
		if s.quiz != nil {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *QuizScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.quiz == nil || len(s.quiz.Questions) == 0 {
		return s, nil
	}

	if s.choice.Submitted {
		if msg.String() == "enter" || msg.String() == "space" {
			return s.advance()
		}
		return s, nil
	}

	s.choice, _ = s.choice.Update(msg)
	if s.choice.Submitted {
		s.score()
	}
	return s, nil
}

func (s *QuizScreen) score() {
	q := s.quiz.Questions[s.current]
	if quizgen.CheckAnswer(q, s.choice.ChosenIndex) {
		s.correct++
		return
	}
	s.missed = append(s.missed, summary.Missed{
		Question: q.Prompt,
		Answer:   q.Options[q.CorrectIndex],
	})
}

func (s *QuizScreen) advance() (screen.Screen, tea.Cmd) {
	s.current++
	if s.current < len(s.quiz.Questions) {
		s.choice = s.newChoice(s.current)
		return s, nil
	}

	result := s.Result()
	return s, func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: summary.New(result)}
	}
}

// Result returns the score so far.
func (s *QuizScreen) Result() summary.Result {
	r := summary.Result{
		ChapterNumber: int(s.doc.Number),
		ChapterTitle:  s.doc.Title,
		Source:        s.source,
		Correct:       s.correct,
		Missed:        s.missed,
	}
	if s.quiz != nil {
		r.Total = len(s.quiz.Questions)
	}
	return r
}

func (s *QuizScreen) newChoice(i int) components.MultiChoice {
	q := s.quiz.Questions[i]
	return components.NewMultiChoice(q.Prompt, q.Options, q.CorrectIndex)
}
