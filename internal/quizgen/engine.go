package quizgen

import (
	"context"
	"math/rand/v2"

	"github.com/abhisek/chapterquiz/internal/llm"
	"github.com/google/uuid"
)

// Engine turns chapter text into multiple-choice questions. It is safe for
// concurrent use: every call works on its own copies and random source.
type Engine struct {
	provider  llm.Provider
	cfg       Config
	extractor *Extractor
}

// New creates an Engine. A nil provider means no credential is configured,
// so remote-preferred calls go straight to the local pipeline. Unset fields
// of cfg take their DefaultConfig values.
func New(provider llm.Provider, cfg Config) *Engine {
	cfg = cfg.withDefaults()
	return &Engine{
		provider:  provider,
		cfg:       cfg,
		extractor: NewExtractor(cfg.MaxConcepts),
	}
}

// Config returns the engine's configuration.
func (e *Engine) Config() Config { return e.cfg }

// Extractor returns the concept extractor used by the local pipeline.
func (e *Engine) Extractor() *Extractor { return e.extractor }

// Outcome describes one generation call.
type Outcome struct {
	Questions []Question

	// Source is the pipeline whose output was returned.
	Source Provenance

	// Fallback holds the reason the remote path was abandoned, if it was.
	Fallback error

	// RequestID correlates the call with its LLM request event.
	RequestID string

	// Mode and Requested are the resolved call parameters.
	Mode      Mode
	Requested int
}

// Document wraps the outcome's questions for chapter ch.
func (o Outcome) Document(ch ChapterDocument) QuizDocument {
	return QuizDocument{
		ChapterNumber: ch.Number,
		ChapterTitle:  ch.Title,
		Questions:     nonNil(o.Questions),
	}
}

// Generate runs the remote-then-local state machine and reports which path
// produced the result. It never fails: remote errors are logged and
// downgraded to the local pipeline.
func (e *Engine) Generate(ctx context.Context, content string, opts GenerateOptions) Outcome {
	n := opts.Count
	if n < 0 {
		n = e.cfg.QuestionCount
	}
	mode := opts.Mode
	if mode == "" {
		mode = e.cfg.Mode
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	log := e.cfg.logger()

	out := Outcome{RequestID: uuid.NewString(), Mode: mode, Requested: n}
	if n == 0 {
		out.Questions = []Question{}
		out.Source = ProvenanceLocal
		return out
	}
	if mode == ModeRemotePreferred {
		qs, err := e.Remote(llm.WithRequestID(ctx, out.RequestID), content, n)
		if err == nil {
			out.Questions = nonNil(qs)
			out.Source = ProvenanceRemote
			return out
		}
		log.Warn("remote generation unavailable, using local pipeline",
			"request_id", out.RequestID,
			"error", err,
		)
		out.Fallback = err
	}

	out.Questions = e.Local(rng, content, n)
	out.Source = ProvenanceLocal
	return out
}

// GenerateQuestions returns up to opts.Count questions for content. A
// shorter or empty list is a valid result.
func (e *Engine) GenerateQuestions(ctx context.Context, content string, opts GenerateOptions) []Question {
	return e.Generate(ctx, content, opts).Questions
}

// GenerateQuiz wraps the generated questions in a QuizDocument for the
// given chapter.
func (e *Engine) GenerateQuiz(ctx context.Context, ch ChapterDocument, opts GenerateOptions) QuizDocument {
	return e.Generate(ctx, ch.Content, opts).Document(ch)
}

// CheckAnswer reports whether selected is the correct option of q.
func CheckAnswer(q Question, selected int) bool {
	return selected >= 0 && selected < len(q.Options) && selected == q.CorrectIndex
}

func nonNil(qs []Question) []Question {
	if qs == nil {
		return []Question{}
	}
	return qs
}
