package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

const quizEventColumns = `id, sequence, timestamp, request_id, chapter_number,
	chapter_title, mode, source, requested, generated, fallback_reason, quiz_json`

func (r *eventRepo) AppendQuizEvent(ctx context.Context, data QuizEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `INSERT INTO quiz_events (
		sequence, timestamp, request_id, chapter_number, chapter_title,
		mode, source, requested, generated, fallback_reason, quiz_json
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		seqNum, time.Now().UnixMilli(), data.RequestID, data.ChapterNumber, data.ChapterTitle,
		data.Mode, data.Source, data.Requested, data.Generated, data.FallbackReason, data.QuizJSON,
	)
	if err != nil {
		return fmt.Errorf("save quiz event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryQuizEvents(ctx context.Context, chapter int, opts QueryOpts) ([]QuizEvent, error) {
	var extra []filter
	if chapter > 0 {
		extra = append(extra, filter{clause: "chapter_number = ?", arg: chapter})
	}
	query, args := applyQueryOpts("SELECT "+quizEventColumns+" FROM quiz_events", opts, extra...)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query quiz events: %w", err)
	}
	defer rows.Close()

	var out []QuizEvent
	for rows.Next() {
		e, err := scanQuizEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *eventRepo) GetQuizEvent(ctx context.Context, id int) (*QuizEvent, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+quizEventColumns+" FROM quiz_events WHERE id = ?", id)

	e, err := scanQuizEvent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func scanQuizEvent(s scanner) (QuizEvent, error) {
	var (
		e  QuizEvent
		ts int64
	)
	err := s.Scan(&e.ID, &e.Sequence, &ts, &e.RequestID, &e.ChapterNumber,
		&e.ChapterTitle, &e.Mode, &e.Source, &e.Requested, &e.Generated,
		&e.FallbackReason, &e.QuizJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return e, err
	}
	if err != nil {
		return e, fmt.Errorf("scan quiz event: %w", err)
	}
	e.Timestamp = time.UnixMilli(ts)
	return e, nil
}
