package domain

import (
	"fmt"
	"strings"
)

// Grade is the user's recall quality signal for one card.
type Grade int

// Possible grade values. The numbering matches the FSRS rating encoding.
const (
	GradeAgain Grade = iota + 1
	GradeHard
	GradeGood
	GradeEasy
)

// Grades lists every valid grade in ascending order.
var Grades = []Grade{GradeAgain, GradeHard, GradeGood, GradeEasy}

var gradeNames = map[Grade]string{
	GradeAgain: "again",
	GradeHard:  "hard",
	GradeGood:  "good",
	GradeEasy:  "easy",
}

// Valid reports whether g is one of the four grades.
func (g Grade) Valid() bool {
	_, ok := gradeNames[g]
	return ok
}

// String returns the lower-case grade name.
func (g Grade) String() string {
	if name, ok := gradeNames[g]; ok {
		return name
	}
	return fmt.Sprintf("grade(%d)", int(g))
}

// ParseGrade converts "again", "hard", "good" or "easy" (any case) to a Grade.
func ParseGrade(s string) (Grade, error) {
	want := strings.ToLower(strings.TrimSpace(s))
	for g, name := range gradeNames {
		if name == want {
			return g, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidGrade, s)
}

// MarshalText implements encoding.TextMarshaler.
func (g Grade) MarshalText() ([]byte, error) {
	if !g.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidGrade, int(g))
	}
	return []byte(g.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (g *Grade) UnmarshalText(text []byte) error {
	parsed, err := ParseGrade(string(text))
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}
