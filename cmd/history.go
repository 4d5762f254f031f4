package cmd

import (
	"fmt"
	"strings"

	"github.com/abhisek/chapterquiz/internal/quizgen"
	"github.com/abhisek/chapterquiz/internal/store"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recently generated quizzes",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		chapterNum, _ := cmd.Flags().GetInt("chapter")

		s, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		events, err := s.EventRepo().QueryQuizEvents(cmd.Context(), chapterNum, store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query quizzes: %w", err)
		}

		w := cmd.OutOrStdout()
		if len(events) == 0 {
			fmt.Fprintln(w, "No quizzes generated yet.")
			return nil
		}

		fmt.Fprintf(w, "%-5s  %-19s  %-4s  %-28s  %-7s  %-9s  %s\n",
			"ID", "Timestamp", "Ch", "Title", "Source", "Questions", "Fallback")
		fmt.Fprintln(w, strings.Repeat("─", 100))

		for _, e := range events {
			fmt.Fprintf(w, "%-5d  %-19s  %-4d  %-28s  %-7s  %-9s  %s\n",
				e.ID,
				e.Timestamp.Local().Format("2006-01-02 15:04:05"),
				e.ChapterNumber,
				truncate(e.ChapterTitle, 28),
				e.Source,
				fmt.Sprintf("%d/%d", e.Generated, e.Requested),
				truncate(e.FallbackReason, 40),
			)
		}
		return nil
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print the quiz JSON of a history entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var id int
		if _, err := fmt.Sscanf(args[0], "%d", &id); err != nil {
			return fmt.Errorf("invalid ID %q: %w", args[0], err)
		}

		s, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		e, err := s.EventRepo().GetQuizEvent(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("get quiz: %w", err)
		}
		if e == nil {
			return fmt.Errorf("quiz %d not found", id)
		}
		if err := quizgen.ValidateQuizJSON([]byte(e.QuizJSON)); err != nil {
			return fmt.Errorf("stored quiz %d: %w", id, err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), e.QuizJSON)
		return nil
	},
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Number of quizzes to show")
	historyCmd.Flags().Int("chapter", 0, "Only quizzes for this chapter number")
	historyCmd.AddCommand(historyShowCmd)
}
