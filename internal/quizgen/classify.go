package quizgen

import "strings"

// Subject is the domain a chapter belongs to.
type Subject string

const (
	SubjectPhysics   Subject = "physics"
	SubjectBiology   Subject = "biology"
	SubjectChemistry Subject = "chemistry"
	SubjectGeneral   Subject = "general"
)

// subjectKeywords are disjoint per subject. General keywords are scored for
// reporting but never decide the outcome; general is the fallback.
var subjectKeywords = map[Subject][]string{
	SubjectPhysics: {
		"физика", "енергија", "сила", "брзина", "забрзување", "маса", "волумен",
		"притисок", "температура", "топлина", "електрична", "магнетна",
		"осцилација", "бранови",
	},
	SubjectBiology: {
		"биологија", "ќелија", "организам", "орган", "тканина", "систем",
		"метаболизам", "днк", "протеин", "ензим",
	},
	SubjectChemistry: {
		"хемија", "атом", "молекула", "соединение", "реакција", "елемент",
		"период", "оксидација", "редукција",
	},
	SubjectGeneral: {
		"концепт", "принцип", "закон", "теорија", "модел", "процес",
	},
}

// Scores returns, per subject, how many of its keywords occur in text as
// case-insensitive substrings.
func Scores(text string) map[Subject]int {
	lower := strings.ToLower(text)
	scores := make(map[Subject]int, len(subjectKeywords))
	for subject, keywords := range subjectKeywords {
		for _, k := range keywords {
			if strings.Contains(lower, k) {
				scores[subject]++
			}
		}
	}
	return scores
}

// Classify picks the subject of text. Physics wins ties with biology and
// chemistry, biology wins ties with chemistry, and a subject needs at least
// one keyword hit to beat the general fallback.
func Classify(text string) Subject {
	return pickSubject(Scores(text))
}

func pickSubject(s map[Subject]int) Subject {
	p, b, c := s[SubjectPhysics], s[SubjectBiology], s[SubjectChemistry]
	switch {
	case p > 0 && p >= b && p >= c:
		return SubjectPhysics
	case b > 0 && b >= c:
		return SubjectBiology
	case c > 0:
		return SubjectChemistry
	default:
		return SubjectGeneral
	}
}

// label is the subject name as used inside generated Macedonian sentences.
func (s Subject) label() string {
	switch s {
	case SubjectPhysics:
		return "физиката"
	case SubjectBiology:
		return "биологијата"
	case SubjectChemistry:
		return "хемијата"
	default:
		return "науката"
	}
}
