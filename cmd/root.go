package cmd

import (
	"io"
	"log/slog"
	"os"

	"github.com/abhisek/chapterquiz/internal/store"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "chapterquiz",
	Short: "Quiz generator for textbook chapters",
	Long: "ChapterQuiz turns OCR-extracted textbook chapters into multiple-choice quizzes,\n" +
		"using a remote LLM when one is configured and an offline pipeline otherwise.",
	SilenceUsage: true,
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeLogging()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

// logFile is the --log-file handle of the running command, if any.
var logFile *os.File

func Execute() error {
	err := rootCmd.Execute()
	// PersistentPostRunE is skipped when RunE fails.
	if cerr := closeLogging(); err == nil {
		err = cerr
	}
	return err
}

func init() {
	// Assigned here rather than in the literal: setupLogging refers to
	// rootCmd, which would otherwise be an initialization cycle.
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return setupLogging(cmd)
	}

	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides CHAPTERQUIZ_DB env var)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log debug messages")
	rootCmd.PersistentFlags().String("log-file", "", "Write logs to this file instead of stderr")

	addQuizFlags(rootCmd)

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(conceptsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then CHAPTERQUIZ_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// openStore opens the event store at the resolved path.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, err
	}
	return store.Open(dbPath)
}

// setupLogging installs the default slog logger. The TUI owns the
// terminal, so without --log-file it logs nowhere.
func setupLogging(cmd *cobra.Command) error {
	level := slog.LevelInfo
	if v, _ := cmd.Flags().GetBool("verbose"); v {
		level = slog.LevelDebug
	}

	var w io.Writer = os.Stderr
	if p, _ := cmd.Flags().GetString("log-file"); p != "" {
		f, err := os.OpenFile(p, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return err
		}
		logFile = f
		w = f
	} else if cmd == rootCmd {
		w = io.Discard
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
	return nil
}

// closeLogging closes the --log-file handle and points the default logger
// back at stderr. It is a no-op without a log file.
func closeLogging() error {
	if logFile == nil {
		return nil
	}
	f := logFile
	logFile = nil
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	return f.Close()
}
