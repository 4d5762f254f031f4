package quizgen

import (
	"math/rand/v2"
	"strings"
)

// Family is a group of question templates answered the same way.
type Family string

const (
	FamilyDefinition      Family = "definition"
	FamilyFunction        Family = "function"
	FamilyCharacteristics Family = "characteristics"
)

const (
	placeholderConcept = "{concept}"
	placeholderOther   = "{other}"
)

// baseTemplates apply to every subject.
var baseTemplates = map[Family][]string{
	FamilyDefinition: {
		"Што е {concept}?",
		"Како се дефинира {concept}?",
		"Што се подразбира под {concept}?",
		"Која е дефиницијата за {concept}?",
	},
	FamilyFunction: {
		"Како функционира {concept}?",
		"Како работи {concept}?",
		"Што е функцијата на {concept}?",
		"Како се користи {concept}?",
	},
	FamilyCharacteristics: {
		"Кои се карактеристиките на {concept}?",
		"Што се својствата на {concept}?",
		"Какви се особините на {concept}?",
		"Кои се главните карактеристики на {concept}?",
		"Како е поврзано {concept} со {other}?",
		"Што е односот помеѓу {concept} и {other}?",
	},
}

// subjectTemplates extend the base families for a detected subject.
var subjectTemplates = map[Subject]map[Family][]string{
	SubjectPhysics: {
		FamilyDefinition:      {"Што е {concept} во физиката?"},
		FamilyFunction:        {"Каков е принципот на {concept}?", "Како се применува {concept}?"},
		FamilyCharacteristics: {"Кои се единиците за {concept}?", "Што влијае на {concept}?"},
	},
	SubjectBiology: {
		FamilyDefinition:      {"Што е {concept} во биологијата?"},
		FamilyFunction:        {"Како функционира {concept} во организмот?"},
		FamilyCharacteristics: {"Каде се наоѓа {concept}?", "Зошто е важен {concept}?"},
	},
	SubjectChemistry: {
		FamilyDefinition:      {"Што е {concept} во хемијата?"},
		FamilyFunction:        {"Како се формира {concept}?", "Што се случува кога {concept} реагира?"},
		FamilyCharacteristics: {"Кои се својствата на {concept}?"},
	},
	SubjectGeneral: {
		FamilyCharacteristics: {"Зошто е важно {concept}?", "Каков е ефектот на {concept}?"},
	},
}

// FamilyFor maps a concept category to its template family.
func FamilyFor(c Category) Family {
	switch c {
	case CategoryDefinition:
		return FamilyDefinition
	case CategoryTechnical:
		return FamilyFunction
	default:
		return FamilyCharacteristics
	}
}

// Templates returns the active templates of a family for a subject.
func Templates(subject Subject, family Family) []string {
	out := append([]string(nil), baseTemplates[family]...)
	return append(out, subjectTemplates[subject][family]...)
}

// Composed pairs a question prompt with the concept it asks about.
type Composed struct {
	Prompt  string
	Concept Concept
}

// Compose builds at most n prompts, each about a different concept drawn
// at random from the ones not yet used in this batch.
func Compose(rng *rand.Rand, concepts []Concept, subject Subject, n int) []Composed {
	if n > len(concepts) {
		n = len(concepts)
	}
	if n <= 0 {
		return nil
	}

	available := append([]Concept(nil), concepts...)
	out := make([]Composed, 0, n)
	for range n {
		i := rng.IntN(len(available))
		concept := available[i]
		available = append(available[:i], available[i+1:]...)

		out = append(out, Composed{
			Prompt:  fillTemplate(rng, concept, concepts, subject),
			Concept: concept,
		})
	}
	return out
}

// fillTemplate picks a template from the concept's family and fills it.
// Relational templates are only eligible when another concept exists.
func fillTemplate(rng *rand.Rand, concept Concept, pool []Concept, subject Subject) string {
	var others []Concept
	for _, c := range pool {
		if !strings.EqualFold(c.Term, concept.Term) {
			others = append(others, c)
		}
	}

	var eligible []string
	for _, t := range Templates(subject, FamilyFor(concept.Category)) {
		if strings.Contains(t, placeholderOther) && len(others) == 0 {
			continue
		}
		eligible = append(eligible, t)
	}

	tmpl := eligible[rng.IntN(len(eligible))]
	other := ""
	if strings.Contains(tmpl, placeholderOther) {
		other = others[rng.IntN(len(others))].Term
	}
	return strings.NewReplacer(placeholderConcept, concept.Term, placeholderOther, other).Replace(tmpl)
}
