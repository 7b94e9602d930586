package catalog

import (
	"fmt"
	"net/url"
)

// DirectionProduce asks for the inflected form given lemma and grammatical slot.
const DirectionProduce = "produce"

var (
	Cases   = []string{"nominative", "accusative", "dative", "genitive"}
	Numbers = []string{"singular", "plural"}
	Genders = []string{"masculine", "feminine", "neuter"}
)

// Declension is one inflected noun phrase, e.g. "dem Tisch" for Tisch in the
// dative singular.
type Declension struct {
	ID     int    `yaml:"id" json:"id" validate:"gt=0"`
	Lemma  string `yaml:"lemma" json:"lemma" validate:"required"`
	Form   string `yaml:"form" json:"form" validate:"required"`
	Case   string `yaml:"case" json:"case" validate:"oneof=nominative accusative dative genitive"`
	Number string `yaml:"number" json:"number" validate:"oneof=singular plural"`
	Gender string `yaml:"gender" json:"gender" validate:"oneof=masculine feminine neuter"`
	Custom bool   `yaml:"custom" json:"custom"`
}

func (d Declension) ItemID() int    { return d.ID }
func (d Declension) IsCustom() bool { return d.Custom }

func (d Declension) Front(string) string {
	return fmt.Sprintf("%s (%s): %s %s", d.Lemma, d.Gender, d.Case, d.Number)
}

func (d Declension) Back(string) string {
	return d.Form
}

// DeclensionFilters narrows a declension session.
type DeclensionFilters struct {
	Cases      []string `json:"cases,omitempty"`
	Numbers    []string `json:"numbers,omitempty"`
	Genders    []string `json:"genders,omitempty"`
	CustomOnly bool     `json:"custom_only,omitempty"`
}

// MatchDeclension is the declension filter predicate.
func MatchDeclension(d Declension, f DeclensionFilters) bool {
	if f.CustomOnly && !d.Custom {
		return false
	}
	return oneOf(f.Cases, d.Case) && oneOf(f.Numbers, d.Number) && oneOf(f.Genders, d.Gender)
}

// ParseDeclensionFilters reads declension filters from query values such as
// "case=dative,genitive&number=plural".
func ParseDeclensionFilters(values url.Values) (DeclensionFilters, error) {
	var f DeclensionFilters
	if err := checkKeys(values, KeyCase, KeyNumber, KeyGender, KeyCustomOnly); err != nil {
		return f, err
	}

	var err error
	if f.Cases, err = choices(values, KeyCase, Cases); err != nil {
		return f, err
	}
	if f.Numbers, err = choices(values, KeyNumber, Numbers); err != nil {
		return f, err
	}
	if f.Genders, err = choices(values, KeyGender, Genders); err != nil {
		return f, err
	}
	if f.CustomOnly, err = flag(values, KeyCustomOnly); err != nil {
		return f, err
	}
	return f, nil
}
