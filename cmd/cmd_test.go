package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/abhisek/chapterquiz/internal/chapter"
	"github.com/abhisek/chapterquiz/internal/quizgen"
	"github.com/abhisek/chapterquiz/internal/store"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const energyText = `1.2.1. Енергија и сила
Енергијата е способност за вршење работа.
Силата е влијание што го менува движењето на телото.
Масата е количество материја во тело.
Брзината е промена на положбата во време.
Притисокот е сила по единица површина.`

const chaptersJSON = `[
  {"chapter_number": 1, "title": "Енергија и сила", "content": "Енергијата е способност за вршење работа."},
  {"chapter_number": "2", "title": "Клетка", "content": "Клетката е основна единица на животот."}
]`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func newSelectCmd(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	c := &cobra.Command{}
	f := c.Flags()
	f.String("chapters", "", "")
	f.Int("chapter", 0, "")
	f.String("text", "", "")
	f.String("title", "", "")
	require.NoError(t, f.Parse(args))
	return c
}

func TestSelectChapters(t *testing.T) {
	chapters := writeFile(t, "chapters.json", chaptersJSON)
	text := writeFile(t, "chapter.txt", energyText)

	_, err := selectChapters(newSelectCmd(t))
	assert.ErrorContains(t, err, "--chapters or --text")

	all, err := selectChapters(newSelectCmd(t, "--chapters", chapters))
	require.NoError(t, err)
	assert.Len(t, all, 2)

	one, err := selectChapters(newSelectCmd(t, "--chapters", chapters, "--chapter", "2"))
	require.NoError(t, err)
	require.Len(t, one, 1)
	assert.Equal(t, "Клетка", one[0].Title)

	_, err = selectChapters(newSelectCmd(t, "--chapters", chapters, "--chapter", "9"))
	assert.ErrorIs(t, err, chapter.ErrChapterNotFound)

	fromText, err := selectChapters(newSelectCmd(t, "--text", text))
	require.NoError(t, err)
	require.Len(t, fromText, 1)
	assert.Equal(t, chapter.Number(1), fromText[0].Number)
	assert.Equal(t, "1.2.1. Енергија и сила", fromText[0].Title)

	titled, err := selectChapters(newSelectCmd(t, "--text", text, "--title", "Енергија", "--chapter", "3"))
	require.NoError(t, err)
	assert.Equal(t, "Енергија", titled[0].Title)
	assert.Equal(t, chapter.Number(3), titled[0].Number)
}

func TestGenerateCommand_LocalOnly(t *testing.T) {
	dir := t.TempDir()
	text := writeFile(t, "chapter.txt", energyText)
	dbPath := filepath.Join(dir, "quiz.db")
	outPath := filepath.Join(dir, "quiz.json")

	rootCmd.SetArgs([]string{
		"generate",
		"--db", dbPath,
		"--text", text,
		"--chapter", "4",
		"--mode", "local_only",
		"--seed", "5",
		"--count", "3",
		"--out", outPath,
	})
	require.NoError(t, rootCmd.Execute())

	raw, err := os.ReadFile(outPath)
	require.NoError(t, err)
	require.NoError(t, quizgen.ValidateQuizJSON(raw))

	var quiz quizgen.QuizDocument
	require.NoError(t, json.Unmarshal(raw, &quiz))
	assert.Equal(t, 4, quiz.ChapterNumber)
	assert.Equal(t, "1.2.1. Енергија и сила", quiz.ChapterTitle)
	assert.Len(t, quiz.Questions, 3)

	st, err := store.Open(dbPath)
	require.NoError(t, err)
	defer st.Close()

	events, err := st.EventRepo().QueryQuizEvents(context.Background(), 4, store.QueryOpts{})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "local", events[0].Source)
	assert.Equal(t, "local_only", events[0].Mode)
	assert.Equal(t, 3, events[0].Generated)
}

func TestConceptsCommand(t *testing.T) {
	text := writeFile(t, "chapter.txt", energyText)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	defer rootCmd.SetOut(nil)

	rootCmd.SetArgs([]string{"concepts", "--text", text})
	require.NoError(t, rootCmd.Execute())

	got := out.String()
	assert.Contains(t, got, "Subject:   physics")
	assert.Contains(t, got, "Енергијата")
	assert.Contains(t, got, "definition")
}

func TestSetupLoggingClosesLogFile(t *testing.T) {
	prev := slog.Default()
	defer slog.SetDefault(prev)

	logPath := filepath.Join(t.TempDir(), "chapterquiz.log")
	c := &cobra.Command{}
	c.Flags().Bool("verbose", false, "")
	c.Flags().String("log-file", "", "")
	require.NoError(t, c.Flags().Parse([]string{"--log-file", logPath, "--verbose"}))

	require.NoError(t, setupLogging(c))
	require.NotNil(t, logFile)
	slog.Debug("engine ready", "mode", "local_only")

	f := logFile
	require.NoError(t, closeLogging())
	assert.Nil(t, logFile)
	assert.Error(t, f.Close(), "handle should already be closed")
	require.NoError(t, closeLogging())

	raw, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "engine ready")
	assert.Contains(t, string(raw), "mode=local_only")
}

func TestGenerateCommand_ZeroCount(t *testing.T) {
	dir := t.TempDir()
	text := writeFile(t, "chapter.txt", energyText)
	outPath := filepath.Join(dir, "quiz.json")

	rootCmd.SetArgs([]string{
		"generate",
		"--db", filepath.Join(dir, "quiz.db"),
		"--text", text,
		"--mode", "local_only",
		"--count", "0",
		"--out", outPath,
	})
	require.NoError(t, rootCmd.Execute())

	raw, err := os.ReadFile(outPath)
	require.NoError(t, err)
	var quiz quizgen.QuizDocument
	require.NoError(t, json.Unmarshal(raw, &quiz))
	assert.NotNil(t, quiz.Questions)
	assert.Empty(t, quiz.Questions)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "Енер", truncate("Енергија", 4))
	assert.Equal(t, "сила", truncate("сила", 10))
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	defer rootCmd.SetOut(nil)

	rootCmd.SetArgs([]string{"version"})
	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, "chapterquiz (devel)\n", out.String())
}
