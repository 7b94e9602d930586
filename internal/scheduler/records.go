package scheduler

import (
	"time"

	"github.com/phrazzld/scry-study/internal/domain"
)

// GetOrCreate returns the stored record for id or a fresh New record due at
// now. The store is not modified; callers merge a fresh record when they
// persist a rating for it.
func GetOrCreate[ID domain.ItemID](id ID, store domain.ReviewStore[ID], now time.Time) domain.ReviewRecord[ID] {
	if rec, ok := store.Record(id); ok {
		return rec
	}
	return domain.NewReviewRecord(id, now)
}

// Rollover starts a new study day. If today differs from the store's rollover
// date both today-sets are cleared; otherwise store is returned as is.
// It must run once per load, before any session is built.
func Rollover[ID domain.ItemID](store domain.ReviewStore[ID], today string) domain.ReviewStore[ID] {
	if store.LastRolloverDate == today {
		return store
	}
	return store.WithDay(today)
}

// RemainingNewQuota is how many new items may still be introduced today.
func RemainingNewQuota[ID domain.ItemID](store domain.ReviewStore[ID], settings domain.Settings) int {
	return max(0, settings.NewItemsPerDay-store.NewItemsToday.Len())
}
