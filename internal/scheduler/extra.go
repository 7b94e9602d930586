package scheduler

import (
	"time"

	"github.com/phrazzld/scry-study/internal/domain"
)

// PracticeAhead selects already-started items that a normal session leaves
// out: those not yet due and those already reviewed today. They come back
// earliest-due first, at most count of them. Neither the daily quota nor the
// reviewed-today exclusion applies.
func (e *Engine[ID, I, F]) PracticeAhead(
	catalog []I,
	store domain.ReviewStore[ID],
	filters F,
	count int,
	now time.Time,
) []SessionCard[ID, I] {
	if count <= 0 {
		return nil
	}

	var cards []SessionCard[ID, I]
	for _, item := range catalog {
		rec, ok := store.Record(item.ItemID())
		if !ok || rec.Memory.Stage == domain.StageNew {
			continue
		}
		if !e.matches(item, filters) {
			continue
		}
		if rec.Memory.Due.After(now) || store.ReviewedToday.Has(rec.ItemID) {
			cards = append(cards, SessionCard[ID, I]{Item: item, Record: rec})
		}
	}

	sortByDue(cards)
	if len(cards) > count {
		cards = cards[:count]
	}
	return cards
}

// ExtraNew selects up to count new items beyond today's quota. It is an
// explicit opt-in override, so the remaining quota is not consulted; items
// already introduced today are still excluded.
func (e *Engine[ID, I, F]) ExtraNew(
	catalog []I,
	store domain.ReviewStore[ID],
	filters F,
	count int,
	now time.Time,
) []SessionCard[ID, I] {
	var custom, system []SessionCard[ID, I]
	for _, item := range catalog {
		id := item.ItemID()
		rec := GetOrCreate(id, store, now)
		if rec.Memory.Stage != domain.StageNew || store.NewItemsToday.Has(id) {
			continue
		}
		if !e.matches(item, filters) {
			continue
		}

		card := SessionCard[ID, I]{Item: item, Record: rec, IsNew: true}
		if domain.IsCustom(item) {
			custom = append(custom, card)
		} else {
			system = append(system, card)
		}
	}

	return e.pickNew(store, custom, system, count)
}
