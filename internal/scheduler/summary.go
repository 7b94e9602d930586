package scheduler

import (
	"time"

	"github.com/phrazzld/scry-study/internal/domain"
)

// Summary counts what a deck holds for the user right now.
type Summary struct {
	DueReviews        int `json:"due_reviews"`
	Learning          int `json:"learning"`
	UpcomingReviews   int `json:"upcoming_reviews"`
	NewAvailable      int `json:"new_available"`
	RemainingNewQuota int `json:"remaining_new_quota"`
	ReviewedToday     int `json:"reviewed_today"`
	NewToday          int `json:"new_today"`
}

// Summarize counts the catalog's items by bucket under filters. DueReviews and
// Learning match what BuildSession would put in the review bucket.
func (e *Engine[ID, I, F]) Summarize(
	catalog []I,
	store domain.ReviewStore[ID],
	filters F,
	settings domain.Settings,
	now time.Time,
) Summary {
	sum := Summary{
		RemainingNewQuota: RemainingNewQuota(store, settings),
		ReviewedToday:     store.ReviewedToday.Len(),
		NewToday:          store.NewItemsToday.Len(),
	}

	for _, item := range catalog {
		if !e.matches(item, filters) {
			continue
		}
		id := item.ItemID()
		rec := GetOrCreate(id, store, now)
		done := store.ReviewedToday.Has(id)

		switch stage := rec.Memory.Stage; {
		case stage == domain.StageNew:
			if !store.NewItemsToday.Has(id) {
				sum.NewAvailable++
			}
		case done:
			sum.UpcomingReviews++
		case stage.InLearning():
			sum.Learning++
		case !rec.Memory.Due.After(now):
			sum.DueReviews++
		default:
			sum.UpcomingReviews++
		}
	}

	return sum
}
