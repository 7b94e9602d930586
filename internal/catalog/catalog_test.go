package catalog

import (
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/scry-study/internal/domain"
	"github.com/phrazzld/scry-study/internal/scheduler"
)

func TestLoadEmbedded(t *testing.T) {
	t.Parallel()

	c, err := Load("")
	require.NoError(t, err)

	assert.Len(t, c.Declension.Items(), 32)
	assert.NotEmpty(t, c.Vocabulary.Items())
	assert.NotEmpty(t, c.Conjugation.Items())

	var custom int
	for _, d := range c.Declension {
		if domain.IsCustom(d) {
			custom++
		}
	}
	assert.Equal(t, 8, custom)
}

func TestLoadOverrideDirectory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	doc := "items:\n  - id: hallo\n    german: hallo\n    english: hello\n    category: greetings\n    level: a1\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "vocabulary.yaml"), []byte(doc), 0o600))

	c, err := Load(dir)
	require.NoError(t, err)

	require.Len(t, c.Vocabulary, 1)
	assert.Equal(t, "hallo", c.Vocabulary[0].ItemID())
	assert.Len(t, c.Declension, 32, "missing files fall back to embedded")
}

func TestLoadRejectsInvalidCatalogs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		doc  string
	}{
		{"malformed", "items: [\n"},
		{"unknown field", "items:\n  - id: a\n    german: a\n    english: a\n    category: x\n    level: a1\n    colour: red\n"},
		{"bad level", "items:\n  - id: a\n    german: a\n    english: a\n    category: x\n    level: z9\n"},
		{"missing id", "items:\n  - german: a\n    english: a\n    category: x\n    level: a1\n"},
		{"duplicate id", "items:\n  - {id: a, german: a, english: a, category: x, level: a1}\n  - {id: a, german: b, english: b, category: x, level: a1}\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			require.NoError(t, os.WriteFile(filepath.Join(dir, "vocabulary.yaml"), []byte(tc.doc), 0o600))

			_, err := Load(dir)
			assert.ErrorIs(t, err, ErrInvalidCatalog)
		})
	}
}

func TestDeclensionFilters(t *testing.T) {
	t.Parallel()

	f, err := ParseDeclensionFilters(url.Values{
		"case":        {"Dative, genitive"},
		"number":      {"plural"},
		"custom_only": {"true"},
	})
	require.NoError(t, err)
	assert.Equal(t, DeclensionFilters{
		Cases:      []string{"dative", "genitive"},
		Numbers:    []string{"plural"},
		CustomOnly: true,
	}, f)

	hund := Declension{ID: 1, Lemma: "Hund", Form: "den Hunden", Case: "dative", Number: "plural", Gender: "masculine", Custom: true}
	assert.True(t, MatchDeclension(hund, f))

	hund.Custom = false
	assert.False(t, MatchDeclension(hund, f))
	assert.True(t, MatchDeclension(hund, DeclensionFilters{}))

	_, err = ParseDeclensionFilters(url.Values{"case": {"ablative"}})
	assert.ErrorIs(t, err, ErrInvalidFilter)
	_, err = ParseDeclensionFilters(url.Values{"tense": {"present"}})
	assert.ErrorIs(t, err, ErrInvalidFilter)
	_, err = ParseDeclensionFilters(url.Values{"custom_only": {"maybe"}})
	assert.ErrorIs(t, err, ErrInvalidFilter)
}

func TestVocabularyFilters(t *testing.T) {
	t.Parallel()

	f, err := ParseVocabularyFilters(url.Values{"category": {"Food"}, "level": {"a1", "a2"}})
	require.NoError(t, err)

	assert.True(t, MatchWord(Word{Category: "food", Level: "a2"}, f))
	assert.False(t, MatchWord(Word{Category: "food", Level: "b1"}, f))
	assert.False(t, MatchWord(Word{Category: "travel", Level: "a1"}, f))

	_, err = ParseVocabularyFilters(url.Values{"level": {"d1"}})
	assert.ErrorIs(t, err, ErrInvalidFilter)
}

func TestConjugationFilters(t *testing.T) {
	t.Parallel()

	f, err := ParseConjugationFilters(url.Values{"tense": {"perfect"}, "person": {"1sg,3pl"}})
	require.NoError(t, err)

	assert.True(t, MatchConjugation(Conjugation{Tense: "perfect", Mood: "indicative", Person: "3pl"}, f))
	assert.False(t, MatchConjugation(Conjugation{Tense: "present", Mood: "indicative", Person: "3pl"}, f))

	_, err = ParseConjugationFilters(url.Values{"mood": {"conditional"}})
	assert.ErrorIs(t, err, ErrInvalidFilter)
}

func TestWordDirections(t *testing.T) {
	t.Parallel()

	w := Word{German: "Zug", English: "train"}
	assert.Equal(t, "Zug", w.Front(DirectionGermanToEnglish))
	assert.Equal(t, "train", w.Back(DirectionGermanToEnglish))
	assert.Equal(t, "train", w.Front(DirectionEnglishToGerman))
	assert.Equal(t, "Zug", w.Back(DirectionEnglishToGerman))
}

func TestCatalogDrivesScheduler(t *testing.T) {
	t.Parallel()

	c, err := Load("")
	require.NoError(t, err)

	e := scheduler.NewEngine[int, Declension, DeclensionFilters](stubModel{}, MatchDeclension, scheduler.WithSeed(1))
	store := domain.NewReviewStore[int]("2024-05-01")
	f := DeclensionFilters{Cases: []string{"dative"}}

	s := e.BuildSession(c.Declension, store, f, domain.Settings{NewItemsPerDay: 3}, testNow)
	require.Len(t, s.NewCards, 3)
	assert.True(t, s.NewCards[0].Item.Custom, "custom nouns come first")
	for _, card := range s.NewCards {
		assert.Equal(t, "dative", card.Item.Case)
	}
}
