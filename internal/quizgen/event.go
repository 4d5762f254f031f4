package quizgen

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/abhisek/chapterquiz/internal/store"
)

// Event builds the audit record of the call that produced doc.
func (o Outcome) Event(doc QuizDocument) (store.QuizEventData, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return store.QuizEventData{}, fmt.Errorf("marshal quiz: %w", err)
	}

	var reason string
	if o.Fallback != nil {
		reason = o.Fallback.Error()
	}

	return store.QuizEventData{
		RequestID:      o.RequestID,
		ChapterNumber:  doc.ChapterNumber,
		ChapterTitle:   doc.ChapterTitle,
		Mode:           string(o.Mode),
		Source:         string(o.Source),
		Requested:      o.Requested,
		Generated:      len(doc.Questions),
		FallbackReason: reason,
		QuizJSON:       string(raw),
	}, nil
}

// Record appends the audit record of the call that produced doc to repo.
func (o Outcome) Record(ctx context.Context, repo store.EventRepo, doc QuizDocument) error {
	data, err := o.Event(doc)
	if err != nil {
		return err
	}
	if err := repo.AppendQuizEvent(ctx, data); err != nil {
		return fmt.Errorf("record quiz event: %w", err)
	}
	return nil
}
