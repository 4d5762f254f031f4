package quizgen

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Confidence per signal. The ordering definition > technical > frequent >
// generic is what deduplication relies on.
const (
	confidenceDefinition  = 0.9
	confidenceTechnical   = 0.8
	confidenceFrequent    = 0.7
	confidenceVocabulary  = 0.6
	confidencePhrase      = 0.55
	confidenceCapitalized = 0.5
)

const (
	minTermRunes        = 3
	maxTermRunes        = 50
	minCapitalizedRunes = 4
	maxCapitalizedRunes = 16
	minContextRunes     = 10
	minFrequentMentions = 2
)

// Bounds for the number of concepts an Extractor keeps.
const (
	MinConcepts     = 8
	MaxConcepts     = 15
	DefaultConcepts = 10
)

// The leading group stands in for a word boundary; RE2's \b only knows ASCII.
var (
	definitionPattern = regexp.MustCompile(`(?:^|[^\p{L}])(\p{Lu}\p{Ll}{2,20})\s+(?:е|се|is|are)\s+([^.!?]{10,100})`)

	technicalPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?:^|[^\p{L}])(\p{Lu}\p{Ll}+)\s+се\s+(?:дефинира|означува|нарекува|вика)\s+како\s+([^.!?]{10,80})`),
		regexp.MustCompile(`(?:^|[^\p{L}])(\p{Lu}\p{Ll}+)\s+пре[тд]ставува\s+([^.!?]{10,80})`),
		regexp.MustCompile(`(?:^|[^\p{L}])(\p{Lu}\p{Ll}+)\s+(?:is\s+defined\s+as|represents)\s+([^.!?]{10,80})`),
	}

	quotedPhrase = regexp.MustCompile(`["“„«]([^"“”„«»]{3,50})["”“»]`)
	colonPhrase  = regexp.MustCompile(`:\s*(\p{Lu}\p{Ll}+)`)
)

// technicalVerbs open clauses that belong to the technical patterns rather
// than to a plain definition.
var technicalVerbs = []string{"дефинира", "означува", "нарекува", "вика", "defined"}

// Extractor mines candidate concepts from chapter text.
type Extractor struct {
	maxConcepts int
}

// NewExtractor returns an Extractor keeping at most maxConcepts concepts,
// clamped to [MinConcepts, MaxConcepts].
func NewExtractor(maxConcepts int) *Extractor {
	switch {
	case maxConcepts == 0:
		maxConcepts = DefaultConcepts
	case maxConcepts < MinConcepts:
		maxConcepts = MinConcepts
	case maxConcepts > MaxConcepts:
		maxConcepts = MaxConcepts
	}
	return &Extractor{maxConcepts: maxConcepts}
}

// Extract normalizes text and returns its concepts ordered by confidence,
// highest first. An empty result is valid.
func (e *Extractor) Extract(text string) []Concept {
	text = Normalize(text)
	if text == "" {
		return nil
	}

	var c collector
	c.addDefinitions(text)
	c.addTechnical(text)

	words := tokenize(text)
	c.addFrequent(words)
	c.addVocabulary(words)
	c.addPhrases(text)
	c.addCapitalized(words)

	concepts := c.concepts
	sort.SliceStable(concepts, func(i, j int) bool {
		return concepts[i].Confidence > concepts[j].Confidence
	})
	if len(concepts) > e.maxConcepts {
		concepts = concepts[:e.maxConcepts]
	}
	return concepts
}

// collector deduplicates concepts by case-folded term, keeping the record
// with the highest confidence and the position of the first sighting.
type collector struct {
	concepts []Concept
	index    map[string]int
}

func (c *collector) add(con Concept) {
	con.Term = strings.TrimSpace(con.Term)
	n := utf8.RuneCountInString(con.Term)
	if n < minTermRunes || n > maxTermRunes {
		return
	}
	if c.index == nil {
		c.index = make(map[string]int)
	}
	key := strings.ToLower(con.Term)
	if i, ok := c.index[key]; ok {
		if con.Confidence > c.concepts[i].Confidence {
			c.concepts[i] = con
		}
		return
	}
	c.index[key] = len(c.concepts)
	c.concepts = append(c.concepts, con)
}

func (c *collector) addDefinitions(text string) {
	for _, m := range definitionPattern.FindAllStringSubmatch(text, -1) {
		term, clause := m[1], strings.TrimSpace(m[2])
		if utf8.RuneCountInString(term) < minCapitalizedRunes || utf8.RuneCountInString(clause) < minContextRunes {
			continue
		}
		if startsWithAny(clause, technicalVerbs) {
			continue
		}
		c.add(Concept{Term: term, Category: CategoryDefinition, Context: clause, Confidence: confidenceDefinition})
	}
}

func (c *collector) addTechnical(text string) {
	for _, p := range technicalPatterns {
		for _, m := range p.FindAllStringSubmatch(text, -1) {
			term, clause := m[1], strings.TrimSpace(m[2])
			if utf8.RuneCountInString(term) < minCapitalizedRunes || utf8.RuneCountInString(clause) < minContextRunes {
				continue
			}
			c.add(Concept{Term: term, Category: CategoryTechnical, Context: clause, Confidence: confidenceTechnical})
		}
	}
}

func (c *collector) addFrequent(words []string) {
	counts := make(map[string]int)
	var order []string
	for _, w := range words {
		if !isCapitalizedTerm(w) {
			continue
		}
		if counts[w] == 0 {
			order = append(order, w)
		}
		counts[w]++
	}
	for _, w := range order {
		if n := counts[w]; n >= minFrequentMentions {
			c.add(Concept{
				Term:       w,
				Category:   CategoryFrequent,
				Context:    fmt.Sprintf("Се споменува %d пати во текстот", n),
				Confidence: confidenceFrequent,
			})
		}
	}
}

func (c *collector) addVocabulary(words []string) {
	surface := make(map[string]string)
	for _, w := range words {
		lw := strings.ToLower(w)
		if _, ok := surface[lw]; !ok {
			surface[lw] = w
		}
	}
	for _, term := range domainVocabulary {
		if w, ok := surface[term]; ok {
			c.add(Concept{Term: w, Category: CategoryGeneric, Confidence: confidenceVocabulary})
		}
	}
}

func (c *collector) addPhrases(text string) {
	for _, m := range quotedPhrase.FindAllStringSubmatch(text, -1) {
		c.add(Concept{Term: m[1], Category: CategoryGeneric, Confidence: confidencePhrase})
	}
	for _, m := range colonPhrase.FindAllStringSubmatch(text, -1) {
		if utf8.RuneCountInString(m[1]) < minCapitalizedRunes || structuralWords[strings.ToLower(m[1])] {
			continue
		}
		c.add(Concept{Term: m[1], Category: CategoryGeneric, Confidence: confidencePhrase})
	}
}

func (c *collector) addCapitalized(words []string) {
	for _, w := range words {
		if isCapitalizedTerm(w) {
			c.add(Concept{Term: w, Category: CategoryGeneric, Confidence: confidenceCapitalized})
		}
	}
}

// tokenize splits text into letter-only words.
func tokenize(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool { return !unicode.IsLetter(r) })
}

// isCapitalizedTerm reports whether w is an upper-case letter followed by
// lower-case letters only, of a usable length, and not a layout word.
func isCapitalizedTerm(w string) bool {
	n := utf8.RuneCountInString(w)
	if n < minCapitalizedRunes || n > maxCapitalizedRunes {
		return false
	}
	for i, r := range w {
		if i == 0 {
			if !unicode.IsUpper(r) {
				return false
			}
			continue
		}
		if !unicode.IsLower(r) {
			return false
		}
	}
	return !structuralWords[strings.ToLower(w)]
}

func startsWithAny(s string, prefixes []string) bool {
	s = strings.ToLower(s)
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}
