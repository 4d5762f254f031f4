package quizgen

import "math/rand/v2"

// Local synthesizes up to n questions from content without any network
// access. It returns fewer than n when the text yields fewer concepts and
// an empty slice when it yields none.
func (e *Engine) Local(rng *rand.Rand, content string, n int) []Question {
	concepts := e.extractor.Extract(content)
	if len(concepts) == 0 || n <= 0 {
		return []Question{}
	}

	subject := Classify(content)
	composed := Compose(rng, concepts, subject, n)

	out := make([]Question, 0, len(composed))
	for _, c := range composed {
		opts, idx := AssembleOptions(rng, c.Concept, concepts, subject)
		out = append(out, Question{
			Prompt:       c.Prompt,
			Options:      opts[:],
			CorrectIndex: idx,
			Provenance:   ProvenanceLocal,
		})
	}
	return out
}
