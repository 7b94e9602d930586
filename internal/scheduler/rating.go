package scheduler

import (
	"fmt"
	"math"
	"time"

	"github.com/phrazzld/scry-study/internal/domain"
)

// Rating is the result of answering one card.
type Rating[ID domain.ItemID] struct {
	Record domain.ReviewRecord[ID]
	Store  domain.ReviewStore[ID]
}

// Rate applies grade to record through the memory model and returns the
// updated record. It does not touch any store.
func (e *Engine[ID, I, F]) Rate(
	record domain.ReviewRecord[ID],
	grade domain.Grade,
	now time.Time,
) (domain.ReviewRecord[ID], error) {
	if !grade.Valid() {
		return record, fmt.Errorf("%w: %d", domain.ErrInvalidGrade, int(grade))
	}

	outcome, ok := e.model.Repeat(record.Memory, now)[grade]
	if !ok {
		return record, fmt.Errorf("memory model returned no outcome for %s", grade)
	}

	log := outcome.Log
	record.Memory = outcome.State
	record.Log = &log
	return record, nil
}

// Commit merges a rated record into store and applies the day's bookkeeping.
// Again leaves the item incomplete; any other grade marks it reviewed today
// and, if it was new before the rating, counts it against the new quota.
func Commit[ID domain.ItemID](
	store domain.ReviewStore[ID],
	rated domain.ReviewRecord[ID],
	grade domain.Grade,
	wasNew bool,
) domain.ReviewStore[ID] {
	next := store.WithRecord(settle(rated, grade, wasNew))
	if grade == domain.GradeAgain {
		return next
	}

	next = next.WithReviewed(rated.ItemID)
	if wasNew {
		next = next.WithNewToday(rated.ItemID)
	}
	return next
}

// Answer rates the item's current record in store and commits the result.
// Items without a record (including ones no longer in the catalog) get a
// fresh one.
func (e *Engine[ID, I, F]) Answer(
	store domain.ReviewStore[ID],
	id ID,
	grade domain.Grade,
	now time.Time,
) (Rating[ID], error) {
	before := GetOrCreate(id, store, now)

	rated, err := e.Rate(before, grade, now)
	if err != nil {
		return Rating[ID]{}, err
	}

	rated = settle(rated, grade, before.IsNew())
	return Rating[ID]{
		Record: rated,
		Store:  Commit(store, rated, grade, before.IsNew()),
	}, nil
}

// AnswerCard rates a session card. A card that entered the session as new
// counts against the new quota when it is finally passed, even if earlier
// Again ratings already moved it out of stage New.
func (e *Engine[ID, I, F]) AnswerCard(
	store domain.ReviewStore[ID],
	card SessionCard[ID, I],
	grade domain.Grade,
	now time.Time,
) (Rating[ID], error) {
	rated, err := e.Rate(card.Record, grade, now)
	if err != nil {
		return Rating[ID]{}, err
	}

	wasNew := card.IsNew || card.Record.IsNew()
	rated = settle(rated, grade, wasNew)
	return Rating[ID]{
		Record: rated,
		Store:  Commit(store, rated, grade, wasNew),
	}, nil
}

// settle keeps a new item marked as introducing until it is passed, so a
// later session still counts it against the new quota.
func settle[ID domain.ItemID](rated domain.ReviewRecord[ID], grade domain.Grade, wasNew bool) domain.ReviewRecord[ID] {
	rated.Introducing = wasNew && grade == domain.GradeAgain
	return rated
}

// NextIntervals previews, per grade, how long until the item would be due
// again. Read-only.
func (e *Engine[ID, I, F]) NextIntervals(state domain.MemoryState, now time.Time) map[domain.Grade]string {
	outcomes := e.model.Repeat(state, now)

	labels := make(map[domain.Grade]string, len(outcomes))
	for g, o := range outcomes {
		labels[g] = FormatInterval(o.State.Due.Sub(now))
	}
	return labels
}

// FormatInterval renders a duration as a compact label: "<1m", "10m", "3h",
// "4d", "2mo", "1.5y". The duration is rounded in a unit before that unit is
// accepted, so 59m45s is "1h" rather than "60m".
func FormatInterval(d time.Duration) string {
	const day = 24 * time.Hour

	if d < time.Minute {
		return "<1m"
	}
	if m := d.Round(time.Minute); m < time.Hour {
		return fmt.Sprintf("%dm", int(m/time.Minute))
	}
	if h := d.Round(time.Hour); h < day {
		return fmt.Sprintf("%dh", int(h/time.Hour))
	}

	days := math.Round(d.Hours() / 24)
	if days < 30 {
		return fmt.Sprintf("%dd", int(days))
	}
	if months := math.Round(days / 30); months < 12 {
		return fmt.Sprintf("%dmo", int(months))
	}

	years := math.Round(days/365*10) / 10
	if years < 10 && years != math.Trunc(years) {
		return fmt.Sprintf("%.1fy", years)
	}
	return fmt.Sprintf("%dy", int(math.Round(years)))
}
