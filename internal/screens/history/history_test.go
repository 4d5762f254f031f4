package history

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/chapterquiz/internal/store"
)

// mockEventRepo serves canned quiz events.
type mockEventRepo struct {
	store.EventRepo
	events []store.QuizEvent
	err    error
	opts   store.QueryOpts
}

func (m *mockEventRepo) QueryQuizEvents(_ context.Context, _ int, opts store.QueryOpts) ([]store.QuizEvent, error) {
	m.opts = opts
	return m.events, m.err
}

const storedQuiz = `{"chapter_number":3,"chapter_title":"Топлина","questions":[
 {"question":"Што е топлина?","options":["Енергија што се пренесува","Вид на сила","Единица за маса","Мерка за брзина"],"correct_answer":0}]}`

func testEvents() []store.QuizEvent {
	ts := time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC)
	return []store.QuizEvent{
		{ID: 2, Timestamp: ts, QuizEventData: store.QuizEventData{
			ChapterNumber: 3, ChapterTitle: "Топлина", Source: "local",
			Requested: 5, Generated: 1, FallbackReason: "no remote credential configured",
			QuizJSON: storedQuiz,
		}},
		{ID: 1, Timestamp: ts.Add(-time.Hour), QuizEventData: store.QuizEventData{
			ChapterNumber: 1, ChapterTitle: "Енергија", Source: "remote",
			Requested: 5, Generated: 5, QuizJSON: "not json",
		}},
	}
}

func load(t *testing.T, s *HistoryScreen) {
	t.Helper()
	s.Update(s.Init()())
}

func TestHistoryScreen_Loading(t *testing.T) {
	s := New(&mockEventRepo{})
	if !strings.Contains(s.View(80, 24), "Loading history") {
		t.Error("expected loading message before data arrives")
	}
}

func TestHistoryScreen_Empty(t *testing.T) {
	repo := &mockEventRepo{}
	s := New(repo)
	load(t, s)

	if !strings.Contains(s.View(80, 24), "No quizzes yet") {
		t.Error("expected empty message")
	}
	if repo.opts.Limit != historyLimit {
		t.Errorf("Limit = %d, want %d", repo.opts.Limit, historyLimit)
	}
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if len(s.expanded) != 0 {
		t.Error("Enter on an empty list should not expand anything")
	}
}

func TestHistoryScreen_Error(t *testing.T) {
	s := New(&mockEventRepo{err: errors.New("database is locked")})
	load(t, s)
	if !strings.Contains(s.View(80, 24), "database is locked") {
		t.Error("expected error message")
	}
}

func TestHistoryScreen_ListAndExpand(t *testing.T) {
	s := New(&mockEventRepo{events: testEvents()})
	load(t, s)

	view := s.View(100, 30)
	for _, want := range []string{"Ch 3", "Топлина", "1/5 questions", "Ch 1", "remote"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
	if strings.Contains(view, "Што е топлина?") {
		t.Error("questions should be hidden until expanded")
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	view = s.View(100, 30)
	for _, want := range []string{"Што е топлина?", "→ Енергија што се пренесува", "fallback: no remote credential"} {
		if !strings.Contains(view, want) {
			t.Errorf("expanded view missing %q", want)
		}
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if !strings.Contains(s.View(100, 30), "unreadable quiz") {
		t.Error("expected unreadable quiz note for corrupt JSON")
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if s.selected != 1 {
		t.Errorf("selected = %d, want clamped to 1", s.selected)
	}
}
