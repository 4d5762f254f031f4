package app

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/chapterquiz/internal/chapter"
	"github.com/abhisek/chapterquiz/internal/quizgen"
	"github.com/abhisek/chapterquiz/internal/router"
	"github.com/abhisek/chapterquiz/internal/screen"
	"github.com/abhisek/chapterquiz/internal/screens/history"
	"github.com/abhisek/chapterquiz/internal/screens/picker"
	"github.com/abhisek/chapterquiz/internal/screens/quiz"
	"github.com/abhisek/chapterquiz/internal/store"
	"github.com/abhisek/chapterquiz/internal/ui/layout"
)

// Options holds the dependencies of the quiz TUI.
type Options struct {
	Engine   *quizgen.Engine
	Chapters []chapter.Document

	// EventRepo records generated quizzes; nil disables recording.
	EventRepo store.EventRepo

	// Count is the per-quiz question count, quizgen.DefaultCount for the
	// engine default. Mode overrides the engine mode when set.
	Count int
	Mode  quizgen.Mode

	// Seed makes every quiz reproducible when non-zero.
	Seed uint64
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	width  int
	height int
}

// newAppModel creates a new AppModel with the chapter picker.
func newAppModel(opts Options) AppModel {
	newQuiz := func(doc chapter.Document) screen.Screen {
		gen := quizgen.GenerateOptions{Count: opts.Count, Mode: opts.Mode}
		if opts.Seed != 0 {
			gen.Rand = rand.New(rand.NewPCG(opts.Seed, opts.Seed))
		}
		return quiz.New(opts.Engine, doc, gen, opts.EventRepo)
	}
	home := picker.New(opts.Chapters, newQuiz)
	if opts.EventRepo != nil {
		home.WithHistory(func() screen.Screen { return history.New(opts.EventRepo) })
	}
	return AppModel{
		router: router.New(home),
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

// render draws the full frame, or nothing before the first resize.
func (m AppModel) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title, status := "", ""
	if active != nil {
		title = active.Title()
		if sp, ok := active.(screen.StatusProvider); ok {
			status = sp.Status()
		}
	}
	header := layout.RenderHeader(title, status, m.width)
	footer := layout.RenderFooter(m.hints(active), m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := m.router.View(m.width, contentHeight)

	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

func (m AppModel) hints(active screen.Screen) []layout.KeyHint {
	if hp, ok := active.(screen.KeyHintProvider); ok {
		if hints := hp.KeyHints(); len(hints) > 0 {
			return hints
		}
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	if opts.Engine == nil {
		return errors.New("quiz engine is required")
	}
	if len(opts.Chapters) == 0 {
		return errors.New("no chapters to quiz on")
	}

	p := tea.NewProgram(newAppModel(opts))
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
