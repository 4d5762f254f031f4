package quizgen

import "math/rand/v2"

// ChapterDocument is one chapter as handed over by the chapter collaborator.
type ChapterDocument struct {
	Number  int
	Title   string
	Content string
}

// Category describes how a concept was found in the text. It decides which
// template family the Composer draws from.
type Category string

const (
	CategoryDefinition Category = "definition"
	CategoryTechnical  Category = "technical"
	CategoryFrequent   Category = "frequent"
	CategoryGeneric    Category = "generic"
)

// Concept is a candidate subject of a quiz question mined from chapter text.
type Concept struct {
	// Term is the surface form of the concept, 3-50 runes.
	Term string

	Category Category

	// Context is the explanatory clause captured with the term. For
	// definition and technical concepts it is the text that follows the
	// copula or verb; for frequent concepts it is a mention counter.
	Context string

	// Confidence ranks concepts; range 0.0-1.0.
	Confidence float64
}

// Explanatory reports whether Context carries an explanation of the term
// that can serve as an answer option.
func (c Concept) Explanatory() bool {
	return c.Context != "" && (c.Category == CategoryDefinition || c.Category == CategoryTechnical)
}

// Provenance tags where a question came from.
type Provenance string

const (
	ProvenanceLocal  Provenance = "local"
	ProvenanceRemote Provenance = "remote"
)

// Question is a single multiple-choice quiz question.
//
// Options always holds exactly 4 pairwise distinct strings and
// Options[CorrectIndex] is the correct answer.
type Question struct {
	Prompt       string     `json:"question"`
	Options      []string   `json:"options"`
	CorrectIndex int        `json:"correct_answer"`
	Provenance   Provenance `json:"-"`
}

// QuizDocument is the result of one generation call for a chapter.
type QuizDocument struct {
	ChapterNumber int        `json:"chapter_number"`
	ChapterTitle  string     `json:"chapter_title"`
	Questions     []Question `json:"questions"`
}

// Mode selects whether the remote service is tried before the local pipeline.
type Mode string

const (
	ModeRemotePreferred Mode = "remote_preferred"
	ModeLocalOnly       Mode = "local_only"
)

// DefaultCount asks the engine for its configured question count.
const DefaultCount = -1

// GenerateOptions carries the per-call parameters of a generation request.
type GenerateOptions struct {
	// Count is an upper bound on the number of questions returned. Zero
	// asks for nothing; a negative Count uses Config.QuestionCount.
	Count int

	// Mode overrides Config.Mode for this call when non-empty.
	Mode Mode

	// Rand drives template choice, concept choice and option shuffling.
	// When nil a randomly seeded source is used.
	Rand *rand.Rand
}
