package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/abhisek/chapterquiz/internal/chapter"
	"github.com/abhisek/chapterquiz/internal/quizgen"
	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate quiz JSON for one or more chapters",
	Example: `  chapterquiz generate --chapters chapters.json --chapter 3
  chapterquiz generate --text chapter.txt --mode local_only --seed 7 --out quiz.json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		docs, err := selectChapters(cmd)
		if err != nil {
			return err
		}

		st, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()
		repo := st.EventRepo()

		engine, err := newEngine(cmd, repo)
		if err != nil {
			return err
		}
		opts := generateOptions(cmd)

		quizzes := make([]quizgen.QuizDocument, 0, len(docs))
		for _, d := range docs {
			ch := d.Quiz()
			out := engine.Generate(ctx, ch.Content, opts)
			quiz := out.Document(ch)

			if err := quizgen.ValidateQuiz(quiz); err != nil {
				return fmt.Errorf("chapter %d: %w", ch.Number, err)
			}
			if err := out.Record(ctx, repo, quiz); err != nil {
				slog.Warn("failed to record quiz", "chapter", ch.Number, "error", err)
			}

			slog.Info("generated quiz",
				"chapter", ch.Number,
				"source", out.Source,
				"questions", len(quiz.Questions),
				"request_id", out.RequestID,
			)
			quizzes = append(quizzes, quiz)
		}

		var payload any = quizzes
		if len(quizzes) == 1 {
			payload = quizzes[0]
		}
		return writeJSON(cmd, payload)
	},
}

// selectChapters resolves the chapters to quiz on from --text or
// --chapters, narrowed by --chapter.
func selectChapters(cmd *cobra.Command) ([]chapter.Document, error) {
	f := cmd.Flags()
	number, _ := f.GetInt("chapter")

	if textPath, _ := f.GetString("text"); textPath != "" {
		data, err := os.ReadFile(textPath)
		if err != nil {
			return nil, fmt.Errorf("read text: %w", err)
		}
		doc := chapter.FromText(max(number, 1), string(data))
		if title, _ := f.GetString("title"); title != "" {
			doc.Title = title
		}
		return []chapter.Document{doc}, nil
	}

	path, _ := f.GetString("chapters")
	if path == "" {
		return nil, errors.New("one of --chapters or --text is required")
	}
	docs, err := chapter.Load(path)
	if err != nil {
		return nil, err
	}
	if number == 0 {
		if len(docs) == 0 {
			return nil, fmt.Errorf("%s contains no chapters", path)
		}
		return docs, nil
	}
	d, err := chapter.Find(docs, number)
	if err != nil {
		return nil, err
	}
	return []chapter.Document{d}, nil
}

// writeJSON prints v as indented JSON to --out or stdout.
func writeJSON(cmd *cobra.Command, v any) error {
	var w io.Writer = cmd.OutOrStdout()
	if path, _ := cmd.Flags().GetString("out"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		w = f
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func init() {
	addQuizFlags(generateCmd)
	generateCmd.Flags().Int("chapter", 0, "Only this chapter number (default: every chapter)")
	generateCmd.Flags().String("text", "", "Plain text file to use as a single chapter")
	generateCmd.Flags().String("title", "", "Chapter title for --text (default: first line)")
	generateCmd.Flags().StringP("out", "o", "", "Write JSON to this file instead of stdout")
}
