package quizgen

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"time"
)

// Config controls the behavior of the Engine.
type Config struct {
	// Mode decides whether the remote service is tried first.
	Mode Mode

	// QuestionCount is the default number of questions per call.
	QuestionCount int

	// MaxConcepts caps how many concepts the Extractor keeps (8-15).
	MaxConcepts int

	// ExcerptLimit caps, in runes, how much chapter text is sent remotely.
	ExcerptLimit int

	// RequestTimeout bounds the single remote call.
	RequestTimeout time.Duration

	// Language is the target language named in the remote instruction.
	Language string

	// ReplyFormat is the plain-text contract requested from the remote
	// service and expected by the parser.
	ReplyFormat ReplyFormat

	// MaxTokens is the token budget for the remote reply.
	MaxTokens int

	// Temperature controls remote output randomness (0.0-1.0).
	Temperature float64

	// Logger receives fallback warnings. Nil discards them.
	Logger *slog.Logger
}

// DefaultConfig returns a Config with the recommended defaults.
func DefaultConfig() Config {
	return Config{
		Mode:           ModeRemotePreferred,
		QuestionCount:  5,
		MaxConcepts:    DefaultConcepts,
		ExcerptLimit:   3000,
		RequestTimeout: 30 * time.Second,
		Language:       "македонски",
		ReplyFormat:    DefaultReplyFormat,
		MaxTokens:      1500,
		Temperature:    0.7,
	}
}

// ConfigFromEnv builds a Config from environment variables, falling back
// to defaults for unset values.
func ConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()

	if m := os.Getenv("CHAPTERQUIZ_MODE"); m != "" {
		mode, err := ParseMode(m)
		if err != nil {
			return cfg, err
		}
		cfg.Mode = mode
	}

	ints := []struct {
		key string
		dst *int
	}{
		{"CHAPTERQUIZ_QUESTION_COUNT", &cfg.QuestionCount},
		{"CHAPTERQUIZ_MAX_CONCEPTS", &cfg.MaxConcepts},
		{"CHAPTERQUIZ_EXCERPT_LIMIT", &cfg.ExcerptLimit},
	}
	for _, v := range ints {
		s := os.Getenv(v.key)
		if s == "" {
			continue
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", v.key, err)
		}
		*v.dst = n
	}

	if s := os.Getenv("CHAPTERQUIZ_REQUEST_TIMEOUT"); s != "" {
		secs, err := strconv.Atoi(s)
		if err != nil {
			return cfg, fmt.Errorf("CHAPTERQUIZ_REQUEST_TIMEOUT: %w", err)
		}
		cfg.RequestTimeout = time.Duration(secs) * time.Second
	}

	return cfg, cfg.Validate()
}

// withDefaults fills unset fields from DefaultConfig. QuestionCount and
// Temperature keep their zero values, both are meaningful.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Mode == "" {
		c.Mode = d.Mode
	}
	if c.MaxConcepts <= 0 {
		c.MaxConcepts = d.MaxConcepts
	}
	if c.ExcerptLimit <= 0 {
		c.ExcerptLimit = d.ExcerptLimit
	}
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = d.RequestTimeout
	}
	if c.Language == "" {
		c.Language = d.Language
	}
	if c.MaxTokens <= 0 {
		c.MaxTokens = d.MaxTokens
	}
	c.ReplyFormat = c.ReplyFormat.resolve()
	return c
}

// Validate checks the numeric settings.
func (c Config) Validate() error {
	if _, err := ParseMode(string(c.Mode)); err != nil {
		return err
	}
	if c.QuestionCount < 0 {
		return fmt.Errorf("question count must not be negative, got %d", c.QuestionCount)
	}
	if c.ExcerptLimit <= 0 {
		return fmt.Errorf("excerpt limit must be positive, got %d", c.ExcerptLimit)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive, got %s", c.RequestTimeout)
	}
	return nil
}

// ParseMode accepts the canonical mode names and the short forms
// "remote" and "local".
func ParseMode(s string) (Mode, error) {
	switch s {
	case string(ModeRemotePreferred), "remote":
		return ModeRemotePreferred, nil
	case string(ModeLocalOnly), "local":
		return ModeLocalOnly, nil
	default:
		return "", fmt.Errorf("unknown mode %q: must be remote_preferred or local_only", s)
	}
}

func (c Config) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
