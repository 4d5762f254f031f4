package quizgen

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// ReplyFormat names the markers of the plain-text reply contract.
type ReplyFormat struct {
	// QuestionMarker introduces every question block.
	QuestionMarker string

	// AnswerMarker starts the line naming the correct letter.
	AnswerMarker string
}

// DefaultReplyFormat is the Macedonian contract sent to the remote service.
var DefaultReplyFormat = ReplyFormat{
	QuestionMarker: "Прашање",
	AnswerMarker:   "Точен одговор",
}

// resolve fills empty markers from DefaultReplyFormat.
func (f ReplyFormat) resolve() ReplyFormat {
	if f.QuestionMarker == "" {
		f.QuestionMarker = DefaultReplyFormat.QuestionMarker
	}
	if f.AnswerMarker == "" {
		f.AnswerMarker = DefaultReplyFormat.AnswerMarker
	}
	return f
}

// optionLetters are the recognized option labels in contract order.
var optionLetters = []rune{'A', 'B', 'C', 'D'}

// homoglyphs maps Cyrillic letters that render like Latin labels.
var homoglyphs = map[rune]rune{'А': 'A', 'В': 'B', 'С': 'C'}

// minBlockLines is prompt + four options + answer line.
const minBlockLines = 6

// ParseReply turns a free-text reply into questions. Blocks that break the
// contract are dropped; a partial batch is a valid result.
func ParseReply(text string, format ReplyFormat) []Question {
	format = format.resolve()

	blocks := strings.Split(text, format.QuestionMarker)
	var out []Question
	for _, block := range blocks[1:] {
		if q, ok := parseBlock(block, format); ok {
			out = append(out, q)
		}
	}
	return out
}

// parseBlock classifies each line of a block as prompt, option, answer or
// noise. It rejects the whole block on any structural violation.
func parseBlock(block string, format ReplyFormat) (Question, bool) {
	lines := nonEmptyLines(block)
	if len(lines) < minBlockLines {
		return Question{}, false
	}

	prompt := strings.TrimRightFunc(lines[0], isTrailingPunct)
	if prompt == "" {
		return Question{}, false
	}

	var (
		options     []string
		answer      string
		answerFound bool
	)
	for _, line := range lines[1:] {
		if text, ok := optionText(line); ok {
			options = append(options, text)
			continue
		}
		if rest, ok := strings.CutPrefix(line, format.AnswerMarker); ok && !answerFound {
			answer = strings.TrimSpace(strings.TrimLeft(rest, ": "))
			answerFound = answer != ""
		}
	}

	if len(options) != OptionCount || !answerFound || !distinct(options) {
		return Question{}, false
	}

	return Question{
		Prompt:       prompt,
		Options:      options,
		CorrectIndex: letterIndex(answer),
		Provenance:   ProvenanceRemote,
	}, true
}

// optionText recognizes "A) text" lines and returns the text.
func optionText(line string) (string, bool) {
	r, size := utf8.DecodeRuneInString(line)
	if !isOptionLetter(r) || !strings.HasPrefix(line[size:], ")") {
		return "", false
	}
	text := strings.TrimSpace(line[size+1:])
	return text, text != ""
}

// letterIndex maps the last option-letter token of an answer line to a
// zero-based option index, defaulting to 0 when no token is a letter.
// "C", "C)" and "Одговор C" all map to 2.
func letterIndex(answer string) int {
	tokens := strings.Fields(answer)
	for i := len(tokens) - 1; i >= 0; i-- {
		if idx, ok := tokenLetter(tokens[i]); ok {
			return idx
		}
	}
	return 0
}

// tokenLetter recognizes a single option letter with optional punctuation.
func tokenLetter(token string) (int, bool) {
	token = strings.TrimFunc(token, func(r rune) bool {
		return unicode.IsPunct(r) || unicode.IsSymbol(r)
	})
	r, size := utf8.DecodeRuneInString(token)
	if size == 0 || size != len(token) {
		return 0, false
	}
	r = unicode.ToUpper(r)
	if g, ok := homoglyphs[r]; ok {
		r = g
	}
	for i, l := range optionLetters {
		if r == l {
			return i, true
		}
	}
	return 0, false
}

func isOptionLetter(r rune) bool {
	if g, ok := homoglyphs[r]; ok {
		r = g
	}
	for _, l := range optionLetters {
		if r == l {
			return true
		}
	}
	return false
}

func isTrailingPunct(r rune) bool {
	return r == ':' || r == ';' || r == ',' || r == '-' || unicode.IsSpace(r)
}

func nonEmptyLines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

func distinct(opts []string) bool {
	seen := make(map[string]bool, len(opts))
	for _, o := range opts {
		if seen[o] {
			return false
		}
		seen[o] = true
	}
	return true
}
