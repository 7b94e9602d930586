package study

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/phrazzld/scry-study/internal/domain"
)

// Kind selects how a session's queue is built.
type Kind string

const (
	// KindRegular is due reviews followed by new items within the daily quota.
	KindRegular Kind = "regular"
	// KindPracticeAhead reviews started items before they are due.
	KindPracticeAhead Kind = "practice_ahead"
	// KindExtraNew introduces new items beyond the daily quota.
	KindExtraNew Kind = "extra_new"
)

// ParseKind maps a request value to a Kind. An empty value means KindRegular.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case "":
		return KindRegular, nil
	case KindRegular, KindPracticeAhead, KindExtraNew:
		return k, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidKind, s)
	}
}

// StartRequest describes the session a user asks for.
type StartRequest struct {
	Deck      string
	Direction string
	Kind      Kind
	// Count caps practice-ahead and extra-new sessions. Zero or anything above
	// the configured limit means the limit.
	Count int
	// Filters are deck-specific, e.g. "case" or "level".
	Filters map[string][]string
}

// DeckInfo lists a deck and its directions.
type DeckInfo struct {
	Name       string   `json:"name"`
	Directions []string `json:"directions"`
	Items      int      `json:"items"`
}

// CardView is the presentable state of one card.
type CardView struct {
	ItemID  string `json:"item_id"`
	Front   string `json:"front"`
	Back    string `json:"back"`
	Stage   string `json:"stage"`
	IsNew   bool   `json:"is_new"`
	Custom  bool   `json:"custom"`
	Relearn bool   `json:"relearn"`
}

// SessionView is a snapshot of a session's progress.
type SessionView struct {
	ID        uuid.UUID `json:"id"`
	Deck      string    `json:"deck"`
	Direction string    `json:"direction"`
	Kind      Kind      `json:"kind"`
	Current   *CardView `json:"current,omitempty"`
	Total     int       `json:"total"`
	Position  int       `json:"position"`
	Relearn   int       `json:"relearn"`
	Remaining int       `json:"remaining"`
	Finished  bool      `json:"finished"`
}

// AnswerResult reports the effect of one answer.
type AnswerResult struct {
	ItemID   string       `json:"item_id"`
	Grade    domain.Grade `json:"grade"`
	Stage    string       `json:"stage"`
	NextDue  time.Time    `json:"next_due"`
	Interval string       `json:"interval"`
	Session  SessionView  `json:"session"`
}

// Intervals previews the next interval per grade for the current card.
type Intervals struct {
	ItemID string            `json:"item_id"`
	Labels map[string]string `json:"labels"`
}
