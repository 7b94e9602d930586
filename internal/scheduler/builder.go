package scheduler

import (
	"slices"
	"time"

	"github.com/phrazzld/scry-study/internal/domain"
)

// SessionCard pairs a catalog item with its review record for one session.
type SessionCard[ID domain.ItemID, I domain.Item[ID]] struct {
	Item   I
	Record domain.ReviewRecord[ID]
	IsNew  bool
}

// Session is the output of a build: due reviews and new items, kept apart so
// callers can show counts per bucket.
type Session[ID domain.ItemID, I domain.Item[ID]] struct {
	ReviewCards []SessionCard[ID, I]
	NewCards    []SessionCard[ID, I]
}

// Queue returns the presentation order: reviews first, then new items.
func (s Session[ID, I]) Queue() []SessionCard[ID, I] {
	queue := make([]SessionCard[ID, I], 0, len(s.ReviewCards)+len(s.NewCards))
	queue = append(queue, s.ReviewCards...)
	return append(queue, s.NewCards...)
}

// Len returns the total number of cards.
func (s Session[ID, I]) Len() int {
	return len(s.ReviewCards) + len(s.NewCards)
}

// BuildSession classifies the catalog into due reviews and new items.
//
// Review candidates are items in Learning or Relearning (regardless of due
// date) and Review items due at or before now, excluding anything already
// reviewed today. A learning item failed on its introduction and never passed
// is still marked new. They are ordered by due date with catalog order breaking
// ties. New candidates are items still in stage New that were not introduced
// today; they are shuffled, custom items ahead of built-in ones, and cut to the
// remaining daily quota. Filters apply to both buckets.
func (e *Engine[ID, I, F]) BuildSession(
	catalog []I,
	store domain.ReviewStore[ID],
	filters F,
	settings domain.Settings,
	now time.Time,
) Session[ID, I] {
	quota := RemainingNewQuota(store, settings)

	var reviews, customNew, systemNew []SessionCard[ID, I]
	for _, item := range catalog {
		if !e.matches(item, filters) {
			continue
		}

		id := item.ItemID()
		rec := GetOrCreate(id, store, now)

		switch stage := rec.Memory.Stage; {
		case stage == domain.StageNew:
			if store.NewItemsToday.Has(id) {
				continue
			}
			card := SessionCard[ID, I]{Item: item, Record: rec, IsNew: true}
			if domain.IsCustom(item) {
				customNew = append(customNew, card)
			} else {
				systemNew = append(systemNew, card)
			}

		case stage.InLearning():
			if !store.ReviewedToday.Has(id) {
				reviews = append(reviews, SessionCard[ID, I]{Item: item, Record: rec, IsNew: rec.IsNew()})
			}

		default:
			if !rec.Memory.Due.After(now) && !store.ReviewedToday.Has(id) {
				reviews = append(reviews, SessionCard[ID, I]{Item: item, Record: rec})
			}
		}
	}

	sortByDue(reviews)

	return Session[ID, I]{
		ReviewCards: reviews,
		NewCards:    e.pickNew(store, customNew, systemNew, quota),
	}
}

// pickNew shuffles both groups, puts custom items first and truncates to limit.
func (e *Engine[ID, I, F]) pickNew(
	store domain.ReviewStore[ID],
	custom, system []SessionCard[ID, I],
	limit int,
) []SessionCard[ID, I] {
	if limit <= 0 || len(custom)+len(system) == 0 {
		return nil
	}

	s := e.shufflerFor(store)
	shuffle(s, custom)
	shuffle(s, system)

	picked := append(custom, system...)
	if len(picked) > limit {
		picked = picked[:limit]
	}
	return picked
}

func sortByDue[ID domain.ItemID, I domain.Item[ID]](cards []SessionCard[ID, I]) {
	slices.SortStableFunc(cards, func(a, b SessionCard[ID, I]) int {
		return a.Record.Memory.Due.Compare(b.Record.Memory.Due)
	})
}
