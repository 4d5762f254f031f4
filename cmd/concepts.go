package cmd

import (
	"fmt"
	"strings"

	"github.com/abhisek/chapterquiz/internal/quizgen"
	"github.com/spf13/cobra"
)

var conceptsCmd = &cobra.Command{
	Use:   "concepts",
	Short: "Show the concepts and subject the offline pipeline finds in a chapter",
	RunE: func(cmd *cobra.Command, args []string) error {
		docs, err := selectChapters(cmd)
		if err != nil {
			return err
		}
		maxConcepts, _ := cmd.Flags().GetInt("max-concepts")
		extractor := quizgen.NewExtractor(maxConcepts)

		w := cmd.OutOrStdout()
		for i, d := range docs {
			if i > 0 {
				fmt.Fprintln(w)
			}
			printConcepts(cmd, int(d.Number), d.Title, d.Content, extractor)
		}
		return nil
	},
}

func printConcepts(cmd *cobra.Command, number int, title, content string, extractor *quizgen.Extractor) {
	w := cmd.OutOrStdout()
	sep := strings.Repeat("─", 72)

	scores := quizgen.Scores(content)
	fmt.Fprintf(w, "Chapter %d: %s\n", number, title)
	fmt.Fprintf(w, "Subject:   %s (physics %d, biology %d, chemistry %d, general %d)\n",
		quizgen.Classify(content),
		scores[quizgen.SubjectPhysics],
		scores[quizgen.SubjectBiology],
		scores[quizgen.SubjectChemistry],
		scores[quizgen.SubjectGeneral],
	)
	fmt.Fprintln(w, sep)

	concepts := extractor.Extract(content)
	if len(concepts) == 0 {
		fmt.Fprintln(w, "No concepts found.")
		return
	}

	fmt.Fprintf(w, "%-24s  %-10s  %-5s  %s\n", "Term", "Category", "Conf", "Context")
	fmt.Fprintln(w, sep)
	for _, c := range concepts {
		fmt.Fprintf(w, "%-24s  %-10s  %.2f  %s\n",
			truncate(c.Term, 24), c.Category, c.Confidence, truncate(c.Context, 40))
	}

	var known []string
	for _, c := range concepts {
		k, ok := quizgen.LookupKnowledge(c.Term)
		if !ok {
			continue
		}
		line := fmt.Sprintf("  %s: %s", c.Term, k.Definition)
		if len(k.Characteristics) > 0 {
			line += "\n    traits: " + strings.Join(k.Characteristics, "; ")
		}
		if len(k.Units) > 0 {
			line += "\n    units:  " + strings.Join(k.Units, ", ")
		}
		known = append(known, line)
	}
	if len(known) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Known concepts")
		fmt.Fprintln(w, sep)
		fmt.Fprintln(w, strings.Join(known, "\n"))
	}
}

func init() {
	f := conceptsCmd.Flags()
	f.String("chapters", "", "JSON file with an array of {chapter_number, title, content}")
	f.Int("chapter", 0, "Only this chapter number (default: every chapter)")
	f.String("text", "", "Plain text file to use as a single chapter")
	f.String("title", "", "Chapter title for --text (default: first line)")
	f.Int("max-concepts", 0, "Max concepts kept by the extractor (8-15)")
}
