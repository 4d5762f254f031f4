package app

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/chapterquiz/internal/chapter"
	"github.com/abhisek/chapterquiz/internal/quizgen"
	"github.com/abhisek/chapterquiz/internal/router"
)

func testOptions() Options {
	cfg := quizgen.DefaultConfig()
	cfg.Mode = quizgen.ModeLocalOnly
	return Options{
		Engine: quizgen.New(nil, cfg),
		Chapters: []chapter.Document{
			{Number: 1, Title: "Енергија и сила", Content: "Енергијата е способност за вршење работа."},
			{Number: 2, Title: "Клетка", Content: "Клетката е основна единица на животот."},
		},
		Count: 2,
		Seed:  42,
	}
}

func sized(m AppModel) AppModel {
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return next.(AppModel)
}

func TestAppModel_ViewBeforeResize(t *testing.T) {
	m := newAppModel(testOptions())
	if got := m.render(); got != "" {
		t.Errorf("expected empty view before the first resize, got %q", got)
	}
	if !m.View().AltScreen {
		t.Error("expected alt screen")
	}
}

func TestAppModel_TooSmall(t *testing.T) {
	m := newAppModel(testOptions())
	next, _ := m.Update(tea.WindowSizeMsg{Width: 40, Height: 10})
	if got := next.(AppModel).render(); !strings.Contains(got, "Terminal too small") {
		t.Errorf("expected min size message, got %q", got)
	}
}

func TestAppModel_RendersPicker(t *testing.T) {
	m := sized(newAppModel(testOptions()))
	content := m.render()
	for _, want := range []string{"ChapterQuiz", "Chapters", "Енергија и сила", "Start quiz"} {
		if !strings.Contains(content, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestAppModel_StartQuizAndGoBack(t *testing.T) {
	m := sized(newAppModel(testOptions()))

	next, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	m = next.(AppModel)
	if cmd == nil {
		t.Fatal("expected Enter to start a quiz")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatalf("expected PushScreenMsg, got %T", cmd())
	}

	next, _ = m.Update(push)
	m = next.(AppModel)
	if m.router.Depth() != 2 {
		t.Fatalf("depth = %d, want 2", m.router.Depth())
	}
	if !strings.Contains(m.render(), "Енергија и сила") {
		t.Error("expected quiz title in header")
	}

	_, cmd = m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected Esc to pop the quiz")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg on Esc")
	}
}

func TestAppModel_EscAtRootIgnored(t *testing.T) {
	m := sized(newAppModel(testOptions()))
	if _, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape}); cmd != nil {
		t.Error("Esc on the picker should do nothing")
	}
}

func TestRun_RequiresEngineAndChapters(t *testing.T) {
	opts := testOptions()
	opts.Engine = nil
	if err := Run(opts); err == nil {
		t.Error("expected error without engine")
	}

	opts = testOptions()
	opts.Chapters = nil
	if err := Run(opts); err == nil {
		t.Error("expected error without chapters")
	}
}
