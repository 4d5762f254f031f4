// Package chapter loads the chapter files produced by the text
// extraction pipeline.
package chapter

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/abhisek/chapterquiz/internal/quizgen"
)

// ErrChapterNotFound is returned by Find when no chapter has the number.
var ErrChapterNotFound = errors.New("chapter not found")

// Number is a chapter number that accepts both JSON numbers and numeric
// strings such as "3".
type Number int

func (n *Number) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		v, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return fmt.Errorf("chapter_number %q is not a number", s)
		}
		*n = Number(v)
		return nil
	}

	var v int
	if err := json.Unmarshal(b, &v); err != nil {
		return fmt.Errorf("chapter_number: %w", err)
	}
	*n = Number(v)
	return nil
}

// Document is one entry of a chapters file.
type Document struct {
	Number  Number `json:"chapter_number"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Quiz converts the document into the engine's input type.
func (d Document) Quiz() quizgen.ChapterDocument {
	return quizgen.ChapterDocument{
		Number:  int(d.Number),
		Title:   d.Title,
		Content: d.Content,
	}
}

// Load reads a JSON array of chapters from path.
func Load(path string) ([]Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read chapters: %w", err)
	}
	return Parse(data)
}

// Parse decodes a JSON array of chapters.
func Parse(data []byte) ([]Document, error) {
	var docs []Document
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("decode chapters: %w", err)
	}
	return docs, nil
}

// Find returns the chapter with the given number.
func Find(docs []Document, number int) (Document, error) {
	for _, d := range docs {
		if int(d.Number) == number {
			return d, nil
		}
	}
	return Document{}, fmt.Errorf("chapter %d: %w", number, ErrChapterNotFound)
}

// FromText wraps a plain text file as a single chapter. The title is the
// first non-empty line.
func FromText(number int, text string) Document {
	title := ""
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			title = line
			break
		}
	}
	return Document{Number: Number(number), Title: title, Content: text}
}
