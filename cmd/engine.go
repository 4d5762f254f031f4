package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/abhisek/chapterquiz/internal/llm"
	"github.com/abhisek/chapterquiz/internal/quizgen"
	"github.com/abhisek/chapterquiz/internal/store"
	"github.com/spf13/cobra"
)

// addQuizFlags registers the flags that tune quiz generation.
func addQuizFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("chapters", "", "JSON file with an array of {chapter_number, title, content}")
	f.IntP("count", "n", 0, "Number of questions per quiz (default from CHAPTERQUIZ_QUESTION_COUNT or 5)")
	f.String("mode", "", "Generation mode: remote_preferred or local_only")
	f.Uint64("seed", 0, "Seed for reproducible offline quizzes (0 = random)")
	f.Int("excerpt-limit", 0, "Max characters of chapter text sent to the LLM")
	f.Duration("timeout", 0, "Timeout of the remote request")
	f.Int("max-concepts", 0, "Max concepts kept by the offline extractor (8-15)")
}

// engineConfig merges environment settings with command-line overrides.
func engineConfig(cmd *cobra.Command) (quizgen.Config, error) {
	cfg, err := quizgen.ConfigFromEnv()
	if err != nil {
		return cfg, fmt.Errorf("load config: %w", err)
	}

	f := cmd.Flags()
	if f.Changed("mode") {
		s, _ := f.GetString("mode")
		if cfg.Mode, err = quizgen.ParseMode(s); err != nil {
			return cfg, err
		}
	}
	if f.Changed("count") {
		cfg.QuestionCount, _ = f.GetInt("count")
	}
	if f.Changed("excerpt-limit") {
		cfg.ExcerptLimit, _ = f.GetInt("excerpt-limit")
	}
	if f.Changed("timeout") {
		cfg.RequestTimeout, _ = f.GetDuration("timeout")
	}
	if f.Changed("max-concepts") {
		cfg.MaxConcepts, _ = f.GetInt("max-concepts")
	}

	cfg.Logger = slog.Default()
	return cfg, cfg.Validate()
}

// newEngine builds the quiz engine. A missing or broken LLM configuration
// is not fatal: the engine then runs on the offline pipeline.
func newEngine(cmd *cobra.Command, eventRepo store.EventRepo) (*quizgen.Engine, error) {
	cfg, err := engineConfig(cmd)
	if err != nil {
		return nil, err
	}

	var provider llm.Provider
	if cfg.Mode == quizgen.ModeRemotePreferred {
		provider, err = llm.NewProviderFromEnv(cmd.Context(), eventRepo)
		switch {
		case errors.Is(err, llm.ErrNoProvider):
			slog.Info("no LLM provider configured, using offline questions")
		case err != nil:
			slog.Warn("LLM provider unavailable, using offline questions", "error", err)
		default:
			slog.Debug("LLM provider ready", "model", provider.ModelID())
		}
	}

	return quizgen.New(provider, cfg), nil
}

// generateOptions returns the per-call options from the flags.
func generateOptions(cmd *cobra.Command) quizgen.GenerateOptions {
	// --count is already folded into the engine's QuestionCount.
	opts := quizgen.GenerateOptions{Count: quizgen.DefaultCount}
	if seed, _ := cmd.Flags().GetUint64("seed"); seed != 0 {
		opts.Rand = rand.New(rand.NewPCG(seed, seed))
	}
	return opts
}
