package quizgen

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertValidOptions(t *testing.T, opts []string, idx int) {
	t.Helper()
	require.Len(t, opts, OptionCount)
	require.GreaterOrEqual(t, idx, 0)
	require.Less(t, idx, OptionCount)

	seen := map[string]bool{}
	for _, o := range opts {
		assert.NotEmpty(t, o)
		assert.False(t, seen[o], "duplicate option %q", o)
		seen[o] = true
	}
}

func TestAssembleOptions_ContextAnswer(t *testing.T) {
	target := Concept{Term: "Енергијата", Category: CategoryDefinition, Context: "способност за вршење работа"}

	for seed := uint64(0); seed < 30; seed++ {
		opts, idx := AssembleOptions(seeded(seed), target, []Concept{target}, SubjectPhysics)
		assertValidOptions(t, opts[:], idx)
		assert.Equal(t, "способност за вршење работа", opts[idx])
	}
}

func TestAssembleOptions_PrefersKnowledgeDefinition(t *testing.T) {
	target := Concept{Term: "енергија", Category: CategoryGeneric}
	opts, idx := AssembleOptions(seeded(7), target, []Concept{target}, SubjectPhysics)

	assertValidOptions(t, opts[:], idx)
	assert.Equal(t, "Способност за вршење работа", opts[idx])
}

func TestAssembleOptions_GenericAnswer(t *testing.T) {
	target := Concept{Term: "Планетата", Category: CategoryFrequent, Context: "Се споменува 2 пати во текстот"}
	opts, idx := AssembleOptions(seeded(3), target, []Concept{target}, SubjectPhysics)

	assertValidOptions(t, opts[:], idx)
	assert.Equal(t, "Планетата е важен концепт во физиката", opts[idx])
}

func TestAssembleOptions_DistractorsFromPool(t *testing.T) {
	pool := []Concept{
		{Term: "Енергијата", Category: CategoryDefinition, Context: "способност за вршење работа"},
		{Term: "Силата", Category: CategoryDefinition, Context: "физичка величина што опишува интеракција"},
		{Term: "Брзината", Category: CategoryTechnical, Context: "промена на положбата во единица време"},
		{Term: "Притисокот", Category: CategoryDefinition, Context: "сила што делува нормално на површина"},
	}

	opts, idx := AssembleOptions(seeded(11), pool[0], pool, SubjectPhysics)
	assertValidOptions(t, opts[:], idx)

	assert.ElementsMatch(t, []string{
		"способност за вршење работа",
		"физичка величина што опишува интеракција",
		"промена на положбата во единица време",
		"сила што делува нормално на површина",
	}, opts[:])
	assert.Equal(t, "способност за вршење работа", opts[idx])
}

func TestAssembleOptions_CollidingDistractorsArePadded(t *testing.T) {
	pool := []Concept{
		{Term: "Енергијата", Category: CategoryDefinition, Context: "способност за вршење работа"},
		{Term: "Работата", Category: CategoryDefinition, Context: "Способност  за вршење работа"},
		{Term: "Моќноста", Category: CategoryDefinition, Context: "способност за вршење работа"},
	}

	for seed := uint64(0); seed < 30; seed++ {
		opts, idx := AssembleOptions(seeded(seed), pool[0], pool, SubjectPhysics)
		assertValidOptions(t, opts[:], idx)
		assert.Equal(t, "способност за вршење работа", opts[idx])

		negations := 0
		for _, o := range opts {
			if strings.Contains(o, "Енергијата") {
				negations++
			}
		}
		assert.Equal(t, 3, negations, "expected three negation distractors, got %v", opts)
	}
}

func TestAssembleOptions_TruncatesLongContext(t *testing.T) {
	long := strings.Repeat("многу долго објаснување ", 10)
	target := Concept{Term: "Поимот", Category: CategoryTechnical, Context: long}

	opts, idx := AssembleOptions(seeded(5), target, []Concept{target}, SubjectGeneral)
	assertValidOptions(t, opts[:], idx)

	answer := opts[idx]
	require.True(t, strings.HasSuffix(answer, "..."), "answer %q", answer)
	assert.LessOrEqual(t, utf8.RuneCountInString(strings.TrimSuffix(answer, "...")), maxAnswerRunes)
}

func TestAssembleOptions_ShuffleCoversPositions(t *testing.T) {
	target := Concept{Term: "Енергијата", Category: CategoryDefinition, Context: "способност за вршење работа"}

	positions := map[int]bool{}
	for seed := uint64(0); seed < 100; seed++ {
		_, idx := AssembleOptions(seeded(seed), target, []Concept{target}, SubjectPhysics)
		positions[idx] = true
	}
	assert.Len(t, positions, OptionCount)
}
