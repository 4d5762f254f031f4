package quizgen

import (
	"context"
	"errors"
	"fmt"

	"github.com/abhisek/chapterquiz/internal/llm"
	"github.com/google/uuid"
)

// ErrNoCredential means no remote provider is configured.
var ErrNoCredential = errors.New("no remote credential configured")

// Purpose labels remote quiz requests in the event log.
const Purpose = "quiz-gen"

// Remote asks the configured provider for n questions about content and
// parses the reply. Malformed blocks are skipped, so a successful call can
// return fewer than n questions or none at all.
func (e *Engine) Remote(ctx context.Context, content string, n int) ([]Question, error) {
	if e.provider == nil {
		return nil, ErrNoCredential
	}

	ctx, cancel := context.WithTimeout(ctx, e.cfg.RequestTimeout)
	defer cancel()
	ctx = llm.WithPurpose(ctx, Purpose)
	if llm.RequestIDFrom(ctx) == "" {
		ctx = llm.WithRequestID(ctx, uuid.NewString())
	}

	resp, err := e.provider.Generate(ctx, llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(excerpt(content, e.cfg.ExcerptLimit), n, e.cfg)},
		},
		MaxTokens:   e.cfg.MaxTokens,
		Temperature: e.cfg.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("remote generation: %w", err)
	}

	questions := ParseReply(resp.Text, e.cfg.ReplyFormat)
	if len(questions) > n {
		questions = questions[:n]
	}
	e.cfg.logger().Debug("parsed remote reply",
		"model", resp.Model,
		"requested", n,
		"parsed", len(questions),
	)
	return questions, nil
}
