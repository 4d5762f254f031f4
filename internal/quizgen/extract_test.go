package quizgen

import (
	"strings"
	"testing"
	"unicode/utf8"
)

const physicsChapter = `1.2.1. Енергија и сила
Енергијата е способност за вршење работа. Силата е физичка величина што опишува интеракција меѓу телата.
Брзината се дефинира како промена на положбата во единица време. Масата претставува мерка за инертноста на телото.
Притисокот е сила што делува нормално на единица површина. Температурата е мерка за средната кинетичка енергија на честичките.
Топлината е енергија што се пренесува меѓу тела со различна температура.`

func findConcept(concepts []Concept, term string) (Concept, bool) {
	for _, c := range concepts {
		if strings.EqualFold(c.Term, term) {
			return c, true
		}
	}
	return Concept{}, false
}

func TestExtract_Definition(t *testing.T) {
	got := NewExtractor(0).Extract("Енергијата е способност за вршење работа.")
	if len(got) != 1 {
		t.Fatalf("expected 1 concept, got %d: %+v", len(got), got)
	}
	c := got[0]
	if c.Term != "Енергијата" || c.Category != CategoryDefinition {
		t.Fatalf("unexpected concept %+v", c)
	}
	if c.Context != "способност за вршење работа" {
		t.Errorf("context = %q", c.Context)
	}
	if c.Confidence != confidenceDefinition {
		t.Errorf("confidence = %v, want %v", c.Confidence, confidenceDefinition)
	}
}

func TestExtract_Technical(t *testing.T) {
	got := NewExtractor(0).Extract("Брзината се дефинира како промена на положбата во времето. Масата претставува мерка за инертноста.")

	b, ok := findConcept(got, "Брзината")
	if !ok {
		t.Fatalf("Брзината not extracted: %+v", got)
	}
	if b.Category != CategoryTechnical || b.Context != "промена на положбата во времето" {
		t.Errorf("unexpected concept %+v", b)
	}

	m, ok := findConcept(got, "Масата")
	if !ok {
		t.Fatalf("Масата not extracted: %+v", got)
	}
	if m.Category != CategoryTechnical {
		t.Errorf("Масата category = %s, want technical", m.Category)
	}
}

func TestExtract_EnglishPatterns(t *testing.T) {
	got := NewExtractor(0).Extract("Velocity is defined as the rate of change of position. Energy is the capacity to do work.")

	v, ok := findConcept(got, "Velocity")
	if !ok || v.Category != CategoryTechnical {
		t.Errorf("Velocity = %+v, ok=%v", v, ok)
	}
	e, ok := findConcept(got, "Energy")
	if !ok || e.Category != CategoryDefinition {
		t.Errorf("Energy = %+v, ok=%v", e, ok)
	}
}

func TestExtract_FrequentAndVocabulary(t *testing.T) {
	got := NewExtractor(0).Extract("Планетата кружи околу Сонцето. Планетата има маса. Сонцето свети.")

	if len(got) < 3 {
		t.Fatalf("expected at least 3 concepts, got %+v", got)
	}
	if got[0].Term != "Планетата" || got[1].Term != "Сонцето" {
		t.Errorf("frequent order = %q, %q", got[0].Term, got[1].Term)
	}
	if got[0].Category != CategoryFrequent || got[0].Context != "Се споменува 2 пати во текстот" {
		t.Errorf("unexpected frequent concept %+v", got[0])
	}
	m, ok := findConcept(got, "маса")
	if !ok || m.Category != CategoryGeneric || m.Confidence != confidenceVocabulary {
		t.Errorf("маса = %+v, ok=%v", m, ok)
	}
}

func TestExtract_QuotedAndColonPhrases(t *testing.T) {
	got := NewExtractor(0).Extract(`Законот за „запазување на енергијата“ важи секаде. Клучен поим: Импулс`)

	if _, ok := findConcept(got, "запазување на енергијата"); !ok {
		t.Errorf("quoted phrase missing: %+v", got)
	}
	if _, ok := findConcept(got, "Импулс"); !ok {
		t.Errorf("colon phrase missing: %+v", got)
	}
}

func TestExtract_DeduplicatesKeepingHighestConfidence(t *testing.T) {
	got := NewExtractor(0).Extract(physicsChapter)

	seen := map[string]bool{}
	for _, c := range got {
		key := strings.ToLower(c.Term)
		if seen[key] {
			t.Fatalf("duplicate concept %q", c.Term)
		}
		seen[key] = true
	}

	e, ok := findConcept(got, "Енергијата")
	if !ok || e.Category != CategoryDefinition {
		t.Errorf("Енергијата = %+v, ok=%v", e, ok)
	}
}

func TestExtract_OrderedAndBounded(t *testing.T) {
	got := NewExtractor(0).Extract(physicsChapter)
	if len(got) == 0 || len(got) > DefaultConcepts {
		t.Fatalf("got %d concepts", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i].Confidence > got[i-1].Confidence {
			t.Errorf("concept %d (%v) ranks above %d (%v)", i, got[i].Confidence, i-1, got[i-1].Confidence)
		}
	}
	for _, c := range got {
		if n := utf8.RuneCountInString(c.Term); n < minTermRunes || n > maxTermRunes {
			t.Errorf("term %q has %d runes", c.Term, n)
		}
	}
}

func TestExtract_Empty(t *testing.T) {
	for _, in := range []string{"", "   ", "123 456 !!!", "а и во"} {
		if got := NewExtractor(0).Extract(in); len(got) != 0 {
			t.Errorf("Extract(%q) = %+v, want empty", in, got)
		}
	}
}

func TestNewExtractor_Clamps(t *testing.T) {
	cities := "Скопје Битола Охрид Струга Тетово Велес Штип Кочани Прилеп Куманово " +
		"Гостивар Кичево Струмица Кавадарци Неготино Радовиш Дебар Крушево Ресен Берово"

	tests := []struct {
		max  int
		want int
	}{
		{0, DefaultConcepts},
		{3, MinConcepts},
		{12, 12},
		{100, MaxConcepts},
	}
	for _, tt := range tests {
		if got := len(NewExtractor(tt.max).Extract(cities)); got != tt.want {
			t.Errorf("NewExtractor(%d) kept %d concepts, want %d", tt.max, got, tt.want)
		}
	}
}

func TestExtract_SkipsStructuralWords(t *testing.T) {
	got := NewExtractor(0).Extract("Слика Табела Пример Страница Поглавје")
	if len(got) != 0 {
		t.Errorf("expected no concepts, got %+v", got)
	}
}
