package quizgen

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	whitespaceRun  = regexp.MustCompile(`\s+`)
	sectionNumber  = regexp.MustCompile(`\d{1,2}\.\d{1,2}\.\d{1,2}\.?`)
	ellipsisRun    = regexp.MustCompile(`\.{3,}`)
	commaRun       = regexp.MustCompile(`,{2,}`)
	exclamationRun = regexp.MustCompile(`!{2,}`)
	questionRun    = regexp.MustCompile(`\?{2,}`)
)

// ocrJunk lists garbage tokens OCR produces on this corpus. They are only
// removed as whole tokens.
var ocrJunk = map[string]bool{
	"ннина":         true,
	"нина":          true,
	"нини":          true,
	"ниа":           true,
	"ннинанинанана": true,
	"нининининини":  true,
}

// minLetterRun is the run length at which a repeated letter is treated as
// OCR noise and collapsed to a single letter.
const minLetterRun = 4

// Normalize collapses whitespace and strips OCR noise from chapter text:
// repeated-letter runs, three-part section numbers, excessive punctuation
// and known junk tokens.
func Normalize(text string) string {
	text = whitespaceRun.ReplaceAllString(text, " ")
	text = collapseLetterRuns(text)
	text = sectionNumber.ReplaceAllString(text, "")
	text = ellipsisRun.ReplaceAllString(text, ".")
	text = commaRun.ReplaceAllString(text, ",")
	text = exclamationRun.ReplaceAllString(text, "!")
	text = questionRun.ReplaceAllString(text, "?")
	text = dropJunkTokens(text)
	text = whitespaceRun.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// collapseLetterRuns replaces any run of minLetterRun or more identical
// letters (case-insensitive) with the first letter of the run.
func collapseLetterRuns(text string) string {
	runes := []rune(text)
	var b strings.Builder
	b.Grow(len(text))

	for i := 0; i < len(runes); {
		j := i + 1
		if unicode.IsLetter(runes[i]) {
			for j < len(runes) && unicode.ToLower(runes[j]) == unicode.ToLower(runes[i]) {
				j++
			}
		}
		if j-i >= minLetterRun {
			b.WriteRune(runes[i])
		} else {
			b.WriteString(string(runes[i:j]))
		}
		i = j
	}
	return b.String()
}

func dropJunkTokens(text string) string {
	fields := strings.Fields(text)
	kept := fields[:0]
	for _, f := range fields {
		if ocrJunk[strings.ToLower(strings.TrimFunc(f, unicode.IsPunct))] {
			continue
		}
		kept = append(kept, f)
	}
	return strings.Join(kept, " ")
}

// truncateRunes cuts s to at most max runes, appending an ellipsis marker
// when something was cut.
func truncateRunes(s string, max int) string {
	r := []rune(s)
	if max <= 0 || len(r) <= max {
		return s
	}
	return strings.TrimSpace(string(r[:max])) + "..."
}
