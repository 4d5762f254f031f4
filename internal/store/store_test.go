package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.DB() == nil {
		t.Fatal("expected non-nil database handle")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	for _, table := range []string{"llm_request_events", "quiz_events", "global_sequence"} {
		var name string
		err := db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Fatalf("query sqlite_master for %s: %v", table, err)
		}
	}
}

func TestReopenKeepsEvents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reopen.db")
	ctx := context.Background()

	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.EventRepo().AppendLLMRequest(ctx, LLMRequestEventData{Provider: "mock", Model: "mock", Purpose: "quiz-gen", Success: true}); err != nil {
		t.Fatalf("append: %v", err)
	}
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()

	events, err := s.EventRepo().QueryLLMEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("events = %d, want 1", len(events))
	}
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()
	ctx := context.Background()

	sc, err := newSequenceCounter(db)
	if err != nil {
		t.Fatalf("new sequence counter: %v", err)
	}

	var seqs []int64
	for i := 0; i < 5; i++ {
		seq, err := sc.Next(ctx)
		if err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
		seqs = append(seqs, seq)
	}

	// Should be monotonically increasing starting from 1.
	for i, seq := range seqs {
		expected := int64(i + 1)
		if seq != expected {
			t.Errorf("seq[%d] = %d, want %d", i, seq, expected)
		}
	}
}

func TestLLMEventRoundTrip(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	err := repo.AppendLLMRequest(ctx, LLMRequestEventData{
		RequestID:    "req-1",
		Provider:     "openai",
		Model:        "gpt-4o-mini",
		Purpose:      "quiz-gen",
		InputTokens:  120,
		OutputTokens: 80,
		LatencyMs:    350,
		Success:      true,
		RequestBody:  "[user]\nhello",
		ResponseBody: "Прашање 1: ...",
	})
	if err != nil {
		t.Fatalf("append: %v", err)
	}

	events, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 10})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("events = %d, want 1", len(events))
	}

	e, err := repo.GetLLMEvent(ctx, events[0].ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if e == nil {
		t.Fatal("expected event")
	}
	if e.RequestID != "req-1" || e.Model != "gpt-4o-mini" || !e.Success {
		t.Errorf("unexpected event: %+v", e)
	}
	if e.ResponseBody != "Прашање 1: ..." {
		t.Errorf("response body = %q", e.ResponseBody)
	}
	if e.Sequence != 1 {
		t.Errorf("sequence = %d, want 1", e.Sequence)
	}
	if time.Since(e.Timestamp) > time.Minute {
		t.Errorf("timestamp too old: %v", e.Timestamp)
	}
}

func TestGetLLMEventMissing(t *testing.T) {
	s := openTestStore(t)
	e, err := s.EventRepo().GetLLMEvent(context.Background(), 42)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if e != nil {
		t.Fatalf("expected nil, got %+v", e)
	}
}

func TestQueryLLMEventsNewestFirstWithLimit(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for _, purpose := range []string{"a", "b", "c"} {
		if err := repo.AppendLLMRequest(ctx, LLMRequestEventData{Provider: "mock", Model: "mock", Purpose: purpose}); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	events, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 2})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("events = %d, want 2", len(events))
	}
	if events[0].Purpose != "c" || events[1].Purpose != "b" {
		t.Errorf("order = %s,%s, want c,b", events[0].Purpose, events[1].Purpose)
	}

	after, err := repo.QueryLLMEvents(ctx, QueryOpts{After: 2})
	if err != nil {
		t.Fatalf("query after: %v", err)
	}
	if len(after) != 1 || after[0].Purpose != "c" {
		t.Errorf("after filter returned %+v", after)
	}
}

func TestLLMUsageAggregates(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	events := []LLMRequestEventData{
		{Provider: "openai", Model: "gpt-4o-mini", Purpose: "quiz-gen", InputTokens: 100, OutputTokens: 50, LatencyMs: 100},
		{Provider: "openai", Model: "gpt-4o-mini", Purpose: "quiz-gen", InputTokens: 200, OutputTokens: 70, LatencyMs: 300},
		{Provider: "anthropic", Model: "claude-haiku-4-5", Purpose: "other", InputTokens: 10, OutputTokens: 5, LatencyMs: 50},
	}
	for _, e := range events {
		if err := repo.AppendLLMRequest(ctx, e); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	if err != nil {
		t.Fatalf("usage by purpose: %v", err)
	}
	if len(byPurpose) != 2 {
		t.Fatalf("purposes = %d, want 2", len(byPurpose))
	}
	q := byPurpose[1]
	if q.Purpose != "quiz-gen" || q.Calls != 2 || q.InputTokens != 300 || q.OutputTokens != 120 || q.AvgLatencyMs != 200 {
		t.Errorf("quiz-gen usage = %+v", q)
	}

	byModel, err := repo.LLMUsageByModel(ctx)
	if err != nil {
		t.Fatalf("usage by model: %v", err)
	}
	if len(byModel) != 2 {
		t.Fatalf("models = %d, want 2", len(byModel))
	}
	if byModel[1].Model != "gpt-4o-mini" || byModel[1].Calls != 2 {
		t.Errorf("gpt-4o-mini usage = %+v", byModel[1])
	}
}

func TestQuizEventsFilterByChapter(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for _, ch := range []int{1, 2, 1} {
		err := repo.AppendQuizEvent(ctx, QuizEventData{
			RequestID:     "r",
			ChapterNumber: ch,
			ChapterTitle:  "Енергија",
			Mode:          "local_only",
			Source:        "local",
			Requested:     5,
			Generated:     3,
			QuizJSON:      `{"questions":[]}`,
		})
		if err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	all, err := repo.QueryQuizEvents(ctx, 0, QueryOpts{})
	if err != nil {
		t.Fatalf("query all: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("all = %d, want 3", len(all))
	}

	one, err := repo.QueryQuizEvents(ctx, 1, QueryOpts{})
	if err != nil {
		t.Fatalf("query chapter 1: %v", err)
	}
	if len(one) != 2 {
		t.Fatalf("chapter 1 = %d, want 2", len(one))
	}
	if one[0].Sequence <= one[1].Sequence {
		t.Errorf("expected newest first, got %d then %d", one[0].Sequence, one[1].Sequence)
	}
	if one[0].Generated != 3 || one[0].Source != "local" {
		t.Errorf("unexpected event: %+v", one[0])
	}
}

func TestGetQuizEvent(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	err := repo.AppendQuizEvent(ctx, QuizEventData{
		RequestID:      "req-7",
		ChapterNumber:  7,
		ChapterTitle:   "Топлина",
		Mode:           "remote_preferred",
		Source:         "local",
		Requested:      5,
		Generated:      4,
		FallbackReason: "no remote credential configured",
		QuizJSON:       `{"chapter_number":7}`,
	})
	if err != nil {
		t.Fatalf("append: %v", err)
	}

	events, err := repo.QueryQuizEvents(ctx, 7, QueryOpts{})
	if err != nil || len(events) != 1 {
		t.Fatalf("query: %v (%d events)", err, len(events))
	}

	got, err := repo.GetQuizEvent(ctx, events[0].ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil {
		t.Fatal("expected event")
	}
	if got.RequestID != "req-7" || got.ChapterTitle != "Топлина" || got.FallbackReason == "" {
		t.Errorf("unexpected event: %+v", got)
	}
	if got.Timestamp.IsZero() {
		t.Error("expected timestamp")
	}

	missing, err := repo.GetQuizEvent(ctx, 9999)
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil for missing event, got %+v", missing)
	}
}

func TestSequenceSharedAcrossTables(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	if err := repo.AppendLLMRequest(ctx, LLMRequestEventData{Provider: "mock", Model: "mock", Purpose: "quiz-gen"}); err != nil {
		t.Fatalf("append llm: %v", err)
	}
	if err := repo.AppendQuizEvent(ctx, QuizEventData{RequestID: "r", ChapterNumber: 1, QuizJSON: "{}"}); err != nil {
		t.Fatalf("append quiz: %v", err)
	}

	llmEvents, _ := repo.QueryLLMEvents(ctx, QueryOpts{})
	quizEvents, _ := repo.QueryQuizEvents(ctx, 0, QueryOpts{})
	if len(llmEvents) != 1 || len(quizEvents) != 1 {
		t.Fatalf("unexpected counts: %d llm, %d quiz", len(llmEvents), len(quizEvents))
	}
	if quizEvents[0].Sequence <= llmEvents[0].Sequence {
		t.Errorf("quiz sequence %d should follow llm sequence %d", quizEvents[0].Sequence, llmEvents[0].Sequence)
	}
}

func TestDefaultDBPathFromEnv(t *testing.T) {
	want := filepath.Join(t.TempDir(), "nested", "quiz.db")
	t.Setenv("CHAPTERQUIZ_DB", want)

	got, err := DefaultDBPath()
	if err != nil {
		t.Fatalf("default path: %v", err)
	}
	if got != want {
		t.Errorf("path = %q, want %q", got, want)
	}
}

func TestDefaultDBPathXDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("CHAPTERQUIZ_DB", "")
	t.Setenv("XDG_DATA_HOME", dir)

	got, err := DefaultDBPath()
	if err != nil {
		t.Fatalf("default path: %v", err)
	}
	want := filepath.Join(dir, "chapterquiz", "chapterquiz.db")
	if got != want {
		t.Errorf("path = %q, want %q", got, want)
	}
}
