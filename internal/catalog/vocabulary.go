package catalog

import (
	"net/url"
	"strings"
)

// Vocabulary directions. Each direction keeps its own review history.
const (
	DirectionGermanToEnglish = "de-en"
	DirectionEnglishToGerman = "en-de"
)

// Levels are the CEFR levels a word can be tagged with.
var Levels = []string{"a1", "a2", "b1", "b2", "c1", "c2"}

// Word is a vocabulary entry.
type Word struct {
	ID       string `yaml:"id" json:"id" validate:"required"`
	German   string `yaml:"german" json:"german" validate:"required"`
	English  string `yaml:"english" json:"english" validate:"required"`
	Category string `yaml:"category" json:"category" validate:"required"`
	Level    string `yaml:"level" json:"level" validate:"oneof=a1 a2 b1 b2 c1 c2"`
	Custom   bool   `yaml:"custom" json:"custom"`
}

func (w Word) ItemID() string { return w.ID }
func (w Word) IsCustom() bool { return w.Custom }

func (w Word) Front(direction string) string {
	if direction == DirectionEnglishToGerman {
		return w.English
	}
	return w.German
}

func (w Word) Back(direction string) string {
	if direction == DirectionEnglishToGerman {
		return w.German
	}
	return w.English
}

// VocabularyFilters narrows a vocabulary session.
type VocabularyFilters struct {
	Categories []string `json:"categories,omitempty"`
	Levels     []string `json:"levels,omitempty"`
	CustomOnly bool     `json:"custom_only,omitempty"`
}

// MatchWord is the vocabulary filter predicate. Categories compare
// case-insensitively.
func MatchWord(w Word, f VocabularyFilters) bool {
	if f.CustomOnly && !w.Custom {
		return false
	}
	return oneOf(f.Categories, strings.ToLower(w.Category)) && oneOf(f.Levels, w.Level)
}

// ParseVocabularyFilters reads vocabulary filters from query values. Any
// category name is accepted; levels must be CEFR levels.
func ParseVocabularyFilters(values url.Values) (VocabularyFilters, error) {
	var f VocabularyFilters
	if err := checkKeys(values, KeyCategory, KeyLevel, KeyCustomOnly); err != nil {
		return f, err
	}

	var err error
	if f.Categories, err = choices(values, KeyCategory, nil); err != nil {
		return f, err
	}
	if f.Levels, err = choices(values, KeyLevel, Levels); err != nil {
		return f, err
	}
	if f.CustomOnly, err = flag(values, KeyCustomOnly); err != nil {
		return f, err
	}
	return f, nil
}
