package catalog

import (
	"fmt"
	"net/url"
)

var (
	Tenses  = []string{"present", "preterite", "perfect", "future"}
	Moods   = []string{"indicative", "subjunctive", "imperative"}
	Persons = []string{"1sg", "2sg", "3sg", "1pl", "2pl", "3pl"}
)

// Conjugation is one finite verb form, e.g. "ich bin gegangen".
type Conjugation struct {
	ID         int    `yaml:"id" json:"id" validate:"gt=0"`
	Infinitive string `yaml:"infinitive" json:"infinitive" validate:"required"`
	Form       string `yaml:"form" json:"form" validate:"required"`
	Tense      string `yaml:"tense" json:"tense" validate:"oneof=present preterite perfect future"`
	Mood       string `yaml:"mood" json:"mood" validate:"oneof=indicative subjunctive imperative"`
	Person     string `yaml:"person" json:"person" validate:"oneof=1sg 2sg 3sg 1pl 2pl 3pl"`
	Custom     bool   `yaml:"custom" json:"custom"`
}

func (c Conjugation) ItemID() int    { return c.ID }
func (c Conjugation) IsCustom() bool { return c.Custom }

func (c Conjugation) Front(string) string {
	return fmt.Sprintf("%s: %s %s %s", c.Infinitive, c.Tense, c.Mood, c.Person)
}

func (c Conjugation) Back(string) string {
	return c.Form
}

// ConjugationFilters narrows a conjugation session.
type ConjugationFilters struct {
	Tenses     []string `json:"tenses,omitempty"`
	Moods      []string `json:"moods,omitempty"`
	Persons    []string `json:"persons,omitempty"`
	CustomOnly bool     `json:"custom_only,omitempty"`
}

// MatchConjugation is the conjugation filter predicate.
func MatchConjugation(c Conjugation, f ConjugationFilters) bool {
	if f.CustomOnly && !c.Custom {
		return false
	}
	return oneOf(f.Tenses, c.Tense) && oneOf(f.Moods, c.Mood) && oneOf(f.Persons, c.Person)
}

// ParseConjugationFilters reads conjugation filters from query values.
func ParseConjugationFilters(values url.Values) (ConjugationFilters, error) {
	var f ConjugationFilters
	if err := checkKeys(values, KeyTense, KeyMood, KeyPerson, KeyCustomOnly); err != nil {
		return f, err
	}

	var err error
	if f.Tenses, err = choices(values, KeyTense, Tenses); err != nil {
		return f, err
	}
	if f.Moods, err = choices(values, KeyMood, Moods); err != nil {
		return f, err
	}
	if f.Persons, err = choices(values, KeyPerson, Persons); err != nil {
		return f, err
	}
	if f.CustomOnly, err = flag(values, KeyCustomOnly); err != nil {
		return f, err
	}
	return f, nil
}
