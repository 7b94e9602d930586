package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/phrazzld/scry-study/internal/domain"
)

func TestGetOrCreate(t *testing.T) {
	t.Parallel()

	store := withStage(domain.NewReviewStore[int](testDay), 1, domain.StageReview, testNow.Add(time.Hour))

	existing := GetOrCreate(1, store, testNow)
	assert.Equal(t, domain.StageReview, existing.Memory.Stage)

	fresh := GetOrCreate(2, store, testNow)
	assert.Equal(t, 2, fresh.ItemID)
	assert.Equal(t, domain.StageNew, fresh.Memory.Stage)
	assert.Equal(t, testNow, fresh.Memory.Due)

	_, stored := store.Record(2)
	assert.False(t, stored, "GetOrCreate must not write to the store")
}

func TestRollover(t *testing.T) {
	t.Parallel()

	store := domain.NewReviewStore[int](testDay).
		WithReviewed(1).WithReviewed(2).WithNewToday(2)
	store = withStage(store, 1, domain.StageReview, testNow)

	same := Rollover(store, testDay)
	assert.Equal(t, store, same, "same day is a no-op")

	next := Rollover(store, "2024-05-02")
	assert.Equal(t, "2024-05-02", next.LastRolloverDate)
	assert.Zero(t, next.ReviewedToday.Len())
	assert.Zero(t, next.NewItemsToday.Len())
	assert.Equal(t, store.Records, next.Records)

	assert.Equal(t, 2, store.ReviewedToday.Len(), "input snapshot unchanged")
}

func TestRolloverAnyContents(t *testing.T) {
	t.Parallel()

	for n := 0; n < 10; n++ {
		store := domain.NewReviewStore[int]("2024-04-30")
		for id := 0; id < n; id++ {
			store = store.WithReviewed(id)
			if id%2 == 0 {
				store = store.WithNewToday(id)
			}
		}

		assert.Equal(t, store, Rollover(store, "2024-04-30"))
		cleared := Rollover(store, testDay)
		assert.Zero(t, cleared.ReviewedToday.Len())
		assert.Zero(t, cleared.NewItemsToday.Len())
	}
}

func TestRemainingNewQuota(t *testing.T) {
	t.Parallel()

	store := domain.NewReviewStore[int](testDay).WithNewToday(1).WithNewToday(2).WithNewToday(3)

	assert.Equal(t, 7, RemainingNewQuota(store, domain.Settings{NewItemsPerDay: 10}))
	assert.Equal(t, 0, RemainingNewQuota(store, domain.Settings{NewItemsPerDay: 3}))
	assert.Equal(t, 0, RemainingNewQuota(store, domain.Settings{NewItemsPerDay: 1}))
}
