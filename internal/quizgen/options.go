package quizgen

import (
	"fmt"
	"math/rand/v2"
	"strings"
)

// OptionCount is the number of answer options of every question.
const OptionCount = 4

// maxAnswerRunes bounds answer strings taken from concept context.
const maxAnswerRunes = 100

// negationTemplates produce distractors when the pool has too few
// explanatory concepts. %s is the target term.
var negationTemplates = []string{
	"Ова не е точна дефиниција за %s",
	"%s се дефинира поинаку",
	"Ова не одговара на %s",
	"Ова не е точна карактеристика на %s",
	"%s нема врска со оваа тема",
}

// option is an answer string paired with its correctness so the correct
// position survives shuffling without comparing text.
type option struct {
	text    string
	correct bool
}

// AssembleOptions builds four distinct answer strings for target, shuffles
// them and returns the index of the correct one.
func AssembleOptions(rng *rand.Rand, target Concept, pool []Concept, subject Subject) ([OptionCount]string, int) {
	correct := correctAnswer(target, subject)
	seen := map[string]bool{normalizeOption(correct): true}

	opts := make([]option, 0, OptionCount)
	opts = append(opts, option{text: correct, correct: true})

	accept := func(s string) bool {
		key := normalizeOption(s)
		if key == "" || seen[key] {
			return false
		}
		seen[key] = true
		opts = append(opts, option{text: s})
		return true
	}

	for _, c := range pool {
		if len(opts) == OptionCount {
			break
		}
		if strings.EqualFold(c.Term, target.Term) {
			continue
		}
		if s, ok := explanation(c); ok {
			accept(s)
		}
	}

	for i := 0; len(opts) < OptionCount; i++ {
		if i < len(negationTemplates) {
			accept(fmt.Sprintf(negationTemplates[i], target.Term))
			continue
		}
		// Only reachable when the target term makes every template collide.
		accept(fmt.Sprintf("Ова не е точен одговор (%d)", i-len(negationTemplates)+1))
	}

	rng.Shuffle(len(opts), func(i, j int) { opts[i], opts[j] = opts[j], opts[i] })

	var out [OptionCount]string
	idx := 0
	for i, o := range opts {
		out[i] = o.text
		if o.correct {
			idx = i
		}
	}
	return out, idx
}

// correctAnswer prefers a canonical definition, then the concept's own
// explanation, then a generic statement about the subject.
func correctAnswer(c Concept, subject Subject) string {
	if s, ok := explanation(c); ok {
		return s
	}
	return fmt.Sprintf("%s е важен концепт во %s", c.Term, subject.label())
}

// explanation returns the answer-ready explanation of a concept, if any.
func explanation(c Concept) (string, bool) {
	if k, ok := LookupKnowledge(c.Term); ok {
		return k.Definition, true
	}
	if c.Explanatory() {
		return truncateRunes(c.Context, maxAnswerRunes), true
	}
	return "", false
}

func normalizeOption(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
