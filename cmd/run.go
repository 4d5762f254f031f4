package cmd

import (
	"errors"
	"fmt"

	"github.com/abhisek/chapterquiz/internal/app"
	"github.com/abhisek/chapterquiz/internal/chapter"
	"github.com/spf13/cobra"
)

// runApp opens the store, loads the chapters, builds the engine and
// launches the TUI.
func runApp(cmd *cobra.Command) error {
	path, _ := cmd.Flags().GetString("chapters")
	if path == "" {
		return errors.New("--chapters is required to take a quiz")
	}
	chapters, err := chapter.Load(path)
	if err != nil {
		return err
	}

	st, err := openStore(cmd)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	eventRepo := st.EventRepo()
	engine, err := newEngine(cmd, eventRepo)
	if err != nil {
		return err
	}

	mode, count := engine.Config().Mode, engine.Config().QuestionCount
	seed, _ := cmd.Flags().GetUint64("seed")

	return app.Run(app.Options{
		Engine:    engine,
		Chapters:  chapters,
		EventRepo: eventRepo,
		Count:     count,
		Mode:      mode,
		Seed:      seed,
	})
}
